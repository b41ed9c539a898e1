package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/seek/internal/engine"
	"github.com/roach88/seek/internal/inventory"
	"github.com/roach88/seek/internal/item"
	"github.com/roach88/seek/internal/parser"
	"github.com/roach88/seek/internal/store"
	"github.com/roach88/seek/internal/testutil"
)

// Harness runs scenario queries against an in-memory engine and a SQLite
// store holding the same inventory.
type Harness struct {
	engine *engine.Engine
	store  *store.Store
	inv    *inventory.Inventory
	logger *slog.Logger
}

// Run executes a scenario with logging discarded.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, nil)
}

// RunContext executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database and a fresh engine, so
// caches and sessions never leak between scenarios. Queries that do not
// parse match nothing.
//
// Execution flow:
// 1. Load the inventory (file or inline data)
// 2. Import it into an in-memory SQLite store
// 3. Run every query through an engine session and through SQL
// 4. Record results and check expectations
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	inv, err := loadInventory(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	if err := st.Import(ctx, inv.Items, inv.Containers); err != nil {
		return nil, fmt.Errorf("failed to import inventory: %w", err)
	}

	h := &Harness{
		engine: engine.New(
			engine.WithLogger(logger),
			engine.WithMissingPolicy(engine.MissingMatchNone),
			engine.WithIDGenerator(testutil.NewSequenceIDGenerator("scenario")),
		),
		store:  st,
		inv:    inv,
		logger: logger.With("scenario", scenario.Name),
	}

	result := NewResult()
	for i, step := range scenario.Queries {
		qr, err := h.runQuery(ctx, step)
		if err != nil {
			return nil, fmt.Errorf("queries[%d] %q: %w", i, step.Query, err)
		}
		result.Queries = append(result.Queries, qr)

		for _, msg := range CheckQuery(i, step, qr) {
			result.AddError(msg)
		}
	}

	h.logger.Debug("scenario finished", "queries", len(result.Queries), "pass", result.Pass)
	return result, nil
}

func (h *Harness) runQuery(ctx context.Context, step QueryStep) (QueryResult, error) {
	mode, err := parser.ParseMode(step.Mode)
	if err != nil {
		return QueryResult{}, err
	}

	session := h.engine.OpenSession(mode)
	defer h.engine.CloseSession(session.ID())

	qr := QueryResult{
		Query: step.Query,
		Mode:  mode.String(),
		Valid: session.SetQuery(step.Query),
	}

	memItems := testutil.Names(session.Filter(h.inv.AllItems()))
	memContainers := labels(session.FilterContainers(h.inv.ContainerList()))
	qr.Items, qr.Containers = memItems, memContainers

	e, ok := session.Expression()
	if !ok {
		return qr, nil
	}
	qr.Tree = e.String()

	sqlItems, err := h.store.SearchItems(ctx, e)
	if err != nil {
		return QueryResult{}, err
	}
	sqlChests, err := h.store.SearchContainers(ctx, e)
	if err != nil {
		return QueryResult{}, err
	}

	if got := testutil.Names(sqlItems); !slices.Equal(memItems, got) {
		return QueryResult{}, fmt.Errorf("in-memory and SQL item results differ: %v vs %v", memItems, got)
	}
	if got := labels(sqlChests); !slices.Equal(memContainers, got) {
		return QueryResult{}, fmt.Errorf("in-memory and SQL container results differ: %v vs %v", memContainers, got)
	}

	h.logger.Debug("query checked", "query", step.Query, "mode", qr.Mode, "items", len(memItems))
	return qr, nil
}

func loadInventory(s *Scenario) (*inventory.Inventory, error) {
	if s.Inventory != "" {
		return inventory.Load(s.Inventory)
	}

	data, err := yaml.Marshal(&s.Data)
	if err != nil {
		return nil, fmt.Errorf("encode inline data: %w", err)
	}
	return inventory.ParseYAML(data)
}

func labels[T item.Container](containers []T) []string {
	out := make([]string, len(containers))
	for i, c := range containers {
		out[i] = c.Label()
	}
	return out
}
