package cli

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/roach88/seek/internal/inventory"
	"github.com/roach88/seek/internal/parser"
)

// Error codes reported in CLI responses. Loader codes (E004-E006, E2xx) come
// from the inventory package unchanged.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = inventory.ErrCodeNotFound
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeParse       = "E301" // Search text does not parse
	ErrCodeStore       = "E401" // SQLite store unusable
	ErrCodeTestFailed  = "E_TEST_FAILED"
)

// outputError outputs a single command error.
func outputError(formatter *OutputFormatter, code, message string, details any) error {
	_ = formatter.Error(code, message, details)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// outputLoadErrors reports every error found while loading an inventory.
func outputLoadErrors(formatter *OutputFormatter, err error) error {
	errs := []error{err}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		errs = merr.Errors
	}

	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, e := range errs {
			code, message := loadErrorCode(e)
			cliErrors[i] = CLIError{Code: code, Message: message}
		}

		if err := formatter.Encode(CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors,
		}); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("inventory has %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Inventory failed to load")
	fmt.Fprintln(formatter.Writer)

	for _, e := range errs {
		code, message := loadErrorCode(e)
		var loadErr *inventory.LoadError
		if errors.As(e, &loadErr) && loadErr.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n",
				loadErr.Pos.Filename(),
				loadErr.Pos.Line(),
				loadErr.Pos.Column())
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", code, message)
	}

	return NewExitError(ExitCommandError, fmt.Sprintf("inventory has %d error(s)", len(errs)))
}

func loadErrorCode(err error) (string, string) {
	var loadErr *inventory.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	return ErrCodeGeneric, err.Error()
}

// outputParseError reports search text that does not parse. Text output
// shows the query with a caret under the failing position.
func outputParseError(formatter *OutputFormatter, err error, exitCode int) error {
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		_ = formatter.Error(ErrCodeParse, err.Error(), nil)
		return WrapExitError(exitCode, "search text does not parse", err)
	}

	if formatter.Format == "json" {
		if err := formatter.Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    ErrCodeParse,
				Message: perr.Message,
				Details: map[string]any{
					"kind":     perr.Code.String(),
					"query":    perr.Query,
					"position": perr.Position,
				},
			},
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprint(formatter.Writer, parser.FormatDiagnostic(perr))
	}

	return WrapExitError(exitCode, "search text does not parse", perr)
}
