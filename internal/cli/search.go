package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/seek/internal/engine"
)

// SearchOptions holds flags for the search and chests commands.
type SearchOptions struct {
	*RootOptions
	SourceOptions
	Exact     bool
	CacheSize int
}

// SearchResult is the search command's output.
type SearchResult struct {
	Query string    `json:"query"`
	Mode  string    `json:"mode"`
	Tree  string    `json:"tree,omitempty"`
	Items []ItemHit `json:"items"`
}

// ChestsResult is the chests command's output.
type ChestsResult struct {
	Query      string     `json:"query"`
	Mode       string     `json:"mode"`
	Tree       string     `json:"tree,omitempty"`
	Containers []ChestHit `json:"containers"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "List items matching search text",
		Long: `List the items of an inventory that match search text, most relevant
first. Items the query does not rank keep inventory order.

Items come from a CUE/YAML inventory (--inventory) or from a SQLite
store written by "seek import" (--db). Blank text lists every item.

Exit codes:
  0 - Search ran (possibly with no matches)
  2 - Command error (text does not parse, bad inventory, etc.)

Examples:
  seek search wood --inventory farm.yaml
  seek search "[stone wood]" --db farm.db
  seek search "{tags}~fish" --inventory ./inventory --format json
  seek search "{name}~wood" --exact --db farm.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), opts, args[0], cmd)
		},
	}

	opts.bindFlags(cmd)

	return cmd
}

// NewChestsCommand creates the chests command.
func NewChestsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "chests <query>",
		Short: "List containers matching search text",
		Long: `List the containers that match search text, in inventory order.

A container matches when its label matches or when any item inside it
does. Blank text lists every container.

Examples:
  seek chests fish --inventory farm.yaml
  seek chests "{quality}~gold" --db farm.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChests(cmd.Context(), opts, args[0], cmd)
		},
	}

	opts.bindFlags(cmd)

	return cmd
}

func (o *SearchOptions) bindFlags(cmd *cobra.Command) {
	o.SourceOptions.bindFlags(cmd)
	cmd.Flags().BoolVar(&o.Exact, "exact", false, "compare leaves by equality instead of substring")
	cmd.Flags().IntVar(&o.CacheSize, "cache-size", 0, "parsed-expression cache size (0 selects the default)")
}

// openSession parses text in a fresh engine. It returns an error already
// written to the formatter when the text does not parse.
func (o *SearchOptions) openSession(query string, cmd *cobra.Command, formatter *OutputFormatter) (*engine.Engine, *engine.Session, error) {
	eng := engine.New(
		engine.WithCacheSize(o.CacheSize),
		engine.WithLogger(o.newLogger(cmd.ErrOrStderr())),
	)

	mode := modeFromFlag(o.Exact)
	session := eng.OpenSession(mode)
	if !session.SetQuery(query) {
		return nil, nil, outputParseError(formatter, eng.Cache(mode).Entry(query).Err, ExitCommandError)
	}
	return eng, session, nil
}

func runSearch(ctx context.Context, opts *SearchOptions, query string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.newFormatter(cmd)

	eng, session, err := opts.openSession(query, cmd, formatter)
	if err != nil {
		return err
	}
	defer eng.CloseSession(session.ID())

	inv, st, err := openSource(opts.SourceOptions, formatter)
	if err != nil {
		return err
	}

	result := SearchResult{Query: query, Mode: session.Mode().String()}
	if e, ok := session.Expression(); ok {
		result.Tree = e.String()
	}

	if st != nil {
		defer st.Close()
		result.Items, err = storeItems(ctx, st, session)
		if err != nil {
			return outputError(formatter, ErrCodeStore, fmt.Sprintf("searching store: %v", err), nil)
		}
	} else {
		result.Items = inventoryItems(inv, session)
	}

	formatter.VerboseLog("parsed %q as %s", query, result.Tree)

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if len(result.Items) == 0 {
		fmt.Fprintf(formatter.Writer, "No items match %q\n", query)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "%d item(s) match %q\n\n", len(result.Items), query)
	for _, hit := range result.Items {
		fmt.Fprintf(formatter.Writer, "  %s\n", formatItemHit(hit))
	}
	return nil
}

func runChests(ctx context.Context, opts *SearchOptions, query string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.newFormatter(cmd)

	eng, session, err := opts.openSession(query, cmd, formatter)
	if err != nil {
		return err
	}
	defer eng.CloseSession(session.ID())

	inv, st, err := openSource(opts.SourceOptions, formatter)
	if err != nil {
		return err
	}

	result := ChestsResult{Query: query, Mode: session.Mode().String()}
	if e, ok := session.Expression(); ok {
		result.Tree = e.String()
	}

	if st != nil {
		defer st.Close()
		result.Containers, err = storeChests(ctx, st, session)
		if err != nil {
			return outputError(formatter, ErrCodeStore, fmt.Sprintf("searching store: %v", err), nil)
		}
	} else {
		result.Containers = inventoryChests(inv, session)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if len(result.Containers) == 0 {
		fmt.Fprintf(formatter.Writer, "No containers match %q\n", query)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "%d container(s) match %q\n\n", len(result.Containers), query)
	for _, hit := range result.Containers {
		fmt.Fprintf(formatter.Writer, "  %s (%d item(s))\n", hit.Label, hit.Items)
	}
	return nil
}

// formatItemHit renders "Name x5 [category, quality] #tag #tag (in Label)".
func formatItemHit(hit ItemHit) string {
	var sb strings.Builder
	sb.WriteString(hit.Name)
	if hit.Quantity != 1 {
		fmt.Fprintf(&sb, " x%d", hit.Quantity)
	}

	attrs := []string{}
	if hit.Category != "" {
		attrs = append(attrs, hit.Category)
	}
	attrs = append(attrs, hit.Quality)
	fmt.Fprintf(&sb, " [%s]", strings.Join(attrs, ", "))

	for _, tag := range hit.Tags {
		sb.WriteString(" #" + tag)
	}
	if hit.Container != "" {
		fmt.Fprintf(&sb, " (in %s)", hit.Container)
	}
	return sb.String()
}
