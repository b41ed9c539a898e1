package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/seek/internal/inventory"
	"github.com/roach88/seek/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string
}

// ImportResult is the import command's output.
type ImportResult struct {
	Database   string `json:"database"`
	Containers int    `json:"containers"`
	Items      int    `json:"items"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <inventory>",
		Short: "Write an inventory into a SQLite store",
		Long: `Load a CUE or YAML inventory and write it into a SQLite store,
replacing whatever the store held. The database is created if it does
not exist. Searches against the store (--db) give the same results as
searches against the inventory file.

Example:
  seek import farm.yaml --db farm.db
  seek import ./inventory --db /tmp/inv.db --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runImport(ctx context.Context, opts *ImportOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.newFormatter(cmd)
	logger := opts.newLogger(cmd.ErrOrStderr())

	logger.Debug("loading inventory", "path", path)
	inv, err := inventory.Load(path)
	if err != nil {
		return outputLoadErrors(formatter, err)
	}

	logger.Debug("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return outputError(formatter, ErrCodeStore, fmt.Sprintf("opening store: %v", err), nil)
	}
	defer st.Close()

	if err := st.Import(ctx, inv.Items, inv.Containers); err != nil {
		return outputError(formatter, ErrCodeWriteFailed, fmt.Sprintf("importing inventory: %v", err), nil)
	}

	containers, items, err := st.Counts(ctx)
	if err != nil {
		return outputError(formatter, ErrCodeStore, fmt.Sprintf("counting rows: %v", err), nil)
	}
	logger.Debug("inventory imported", "containers", containers, "items", items)

	result := ImportResult{Database: opts.Database, Containers: containers, Items: items}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Imported %d item(s) and %d container(s) into %s\n",
		result.Items, result.Containers, result.Database)
	return nil
}
