package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/seek/internal/engine"
	"github.com/roach88/seek/internal/inventory"
	"github.com/roach88/seek/internal/item"
	"github.com/roach88/seek/internal/store"
)

// SourceOptions selects where searched items come from: an inventory file
// evaluated in memory, or a SQLite store written by "seek import".
type SourceOptions struct {
	Inventory string
	Database  string
}

func (o *SourceOptions) bindFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Inventory, "inventory", "", "path to a CUE or YAML inventory (file or CUE package directory)")
	cmd.Flags().StringVar(&o.Database, "db", "", "path to a SQLite store written by seek import")
	cmd.MarkFlagsMutuallyExclusive("inventory", "db")
	cmd.MarkFlagsOneRequired("inventory", "db")
}

// ItemHit is one matching item in command output.
type ItemHit struct {
	Name      string   `json:"name"`
	Category  string   `json:"category,omitempty"`
	Quantity  int      `json:"quantity"`
	Quality   string   `json:"quality"`
	Tags      []string `json:"tags,omitempty"`
	Container string   `json:"container,omitempty"`
}

// ChestHit is one matching container in command output.
type ChestHit struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label"`
	Items int    `json:"items"`
}

func newItemHit(it item.Item, container string) ItemHit {
	return ItemHit{
		Name:      it.Name(),
		Category:  it.Category(),
		Quantity:  it.Quantity(),
		Quality:   it.Quality().String(),
		Tags:      it.Tags(),
		Container: container,
	}
}

func newChestHit(c *item.Chest) ChestHit {
	return ChestHit{ID: c.ID, Label: c.ChestName, Items: len(c.Contents)}
}

// inventoryItems evaluates the session against an inventory in memory.
// Each hit carries the label of the container holding it.
func inventoryItems(inv *inventory.Inventory, session *engine.Session) []ItemHit {
	holder := make(map[*item.Record]string)
	for _, c := range inv.Containers {
		for _, r := range c.Contents {
			holder[r] = c.ChestName
		}
	}

	matched := session.Filter(inv.AllItems())
	hits := make([]ItemHit, 0, len(matched))
	for _, it := range matched {
		r, _ := it.(*item.Record)
		hits = append(hits, newItemHit(it, holder[r]))
	}
	return hits
}

func inventoryChests(inv *inventory.Inventory, session *engine.Session) []ChestHit {
	hits := []ChestHit{}
	for _, c := range inv.Containers {
		if session.MatchesContainer(c) {
			hits = append(hits, newChestHit(c))
		}
	}
	return hits
}

// storeItems runs the session's expression as SQL. A session without an
// expression (blank text) lists everything.
func storeItems(ctx context.Context, st *store.Store, session *engine.Session) ([]ItemHit, error) {
	chests, err := st.ListContainers(ctx)
	if err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(chests))
	for _, c := range chests {
		labels[c.ID] = c.ChestName
	}

	var stored []store.StoredItem
	if e, ok := session.Expression(); ok {
		stored, err = st.SearchItems(ctx, e)
	} else {
		stored, err = st.ListItems(ctx)
	}
	if err != nil {
		return nil, err
	}

	hits := make([]ItemHit, 0, len(stored))
	for _, it := range stored {
		hits = append(hits, newItemHit(it, labels[it.ContainerID]))
	}
	return hits, nil
}

func storeChests(ctx context.Context, st *store.Store, session *engine.Session) ([]ChestHit, error) {
	var (
		chests []*item.Chest
		err    error
	)
	if e, ok := session.Expression(); ok {
		chests, err = st.SearchContainers(ctx, e)
	} else {
		chests, err = st.ListContainers(ctx)
	}
	if err != nil {
		return nil, err
	}

	hits := make([]ChestHit, 0, len(chests))
	for _, c := range chests {
		hits = append(hits, newChestHit(c))
	}
	return hits, nil
}

// openSource loads the inventory or opens the store named by the flags.
// Exactly one of the returned values is non-nil on success.
func openSource(opts SourceOptions, formatter *OutputFormatter) (*inventory.Inventory, *store.Store, error) {
	if opts.Database != "" {
		if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
			return nil, nil, outputError(formatter, ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.Database), nil)
		}
		st, err := store.Open(opts.Database)
		if err != nil {
			return nil, nil, outputError(formatter, ErrCodeStore, fmt.Sprintf("opening store: %v", err), nil)
		}
		return nil, st, nil
	}

	inv, err := inventory.Load(opts.Inventory)
	if err != nil {
		return nil, nil, outputLoadErrors(formatter, err)
	}
	return inv, nil, nil
}
