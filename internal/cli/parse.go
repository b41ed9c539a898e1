package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/seek/internal/expr"
	"github.com/roach88/seek/internal/parser"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	Exact bool
}

// ParseResult is the parse command's output.
type ParseResult struct {
	Query    string         `json:"query"`
	Repaired string         `json:"repaired"`
	Mode     string         `json:"mode"`
	Tree     string         `json:"tree"`
	AST      map[string]any `json:"ast"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <query>",
		Short: "Parse search text and print its expression tree",
		Long: `Parse search text and print the canonical form of its expression tree.

The text is repaired first (unclosed groups are closed at the end). When the result still does not parse, the failing position is
marked with a caret.

Exit codes:
  0 - Text parses
  1 - Text does not parse

Examples:
  seek parse "(wood !stone)"
  seek parse "{quality}~gold" --format json
  seek parse "{name}~wood" --exact`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Exact, "exact", false, "compare leaves by equality instead of substring")

	return cmd
}

func runParse(opts *ParseOptions, query string, cmd *cobra.Command) error {
	formatter := opts.newFormatter(cmd)
	mode := modeFromFlag(opts.Exact)

	e, err := parser.New(mode).Parse(query)
	if err != nil {
		return outputParseError(formatter, err, ExitFailure)
	}

	result := ParseResult{
		Query:    query,
		Repaired: parser.Repair(query),
		Mode:     mode.String(),
		Tree:     e.String(),
		AST:      expr.Describe(e),
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if result.Repaired != query {
		fmt.Fprintf(formatter.Writer, "repaired: %s\n", result.Repaired)
	}
	fmt.Fprintln(formatter.Writer, result.Tree)
	return nil
}

// RepairResult is the repair command's output.
type RepairResult struct {
	Query    string `json:"query"`
	Repaired string `json:"repaired"`
	Changed  bool   `json:"changed"`
}

// NewRepairCommand creates the repair command.
func NewRepairCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair <query>",
		Short: "Print search text after bracket repair",
		Long: `Print search text as the parser sees it after repair.

Unclosed ( and [ are closed at the end in reverse order of opening.
Stray closers are left for the parser to reject.

Examples:
  seek repair "(wood [stone"
  seek repair "[(wood"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.newFormatter(cmd)
			repaired := parser.Repair(args[0])
			if formatter.Format == "json" {
				return formatter.Success(RepairResult{
					Query:    args[0],
					Repaired: repaired,
					Changed:  repaired != args[0],
				})
			}
			fmt.Fprintln(formatter.Writer, repaired)
			return nil
		},
	}

	return cmd
}

func modeFromFlag(exact bool) parser.Mode {
	if exact {
		return parser.ModeExact
	}
	return parser.ModePartial
}
