package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormatDiagnostic renders a parse error with the query and a caret under
// the offending position:
//
//	search parse error: missing operand
//	     {quality}~
//	               ^ expected value after '~'
func FormatDiagnostic(err *ParseError) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "search parse error: %s\n", err.Code)
	fmt.Fprintf(&sb, "     %s\n", err.Query)

	// Caret column counts runes, not bytes.
	pos := err.Position
	if pos > len(err.Query) {
		pos = len(err.Query)
	}
	column := utf8.RuneCountInString(err.Query[:pos])
	fmt.Fprintf(&sb, "     %s^ %s\n", strings.Repeat(" ", column), err.Message)

	return sb.String()
}
