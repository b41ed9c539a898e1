package parser

import "strings"

// Repair appends the closers needed to balance unclosed ( and [ in s.
//
// The input itself is never modified: the result is s followed by a suffix.
// Closers without a matching opener are left in place, and interior
// mismatches such as ")(" are not fixed; the parser rejects those.
func Repair(s string) string {
	parens, brackets := 0, 0
	for _, r := range s {
		switch r {
		case '(':
			parens++
		case ')':
			parens--
		case '[':
			brackets++
		case ']':
			brackets--
		}
	}
	if parens <= 0 && brackets <= 0 {
		return s
	}

	var stack []rune
	for _, r := range s {
		switch r {
		case '(':
			stack = append(stack, ')')
		case '[':
			stack = append(stack, ']')
		case ')', ']':
			if n := len(stack); n > 0 && stack[n-1] == r {
				stack = stack[:n-1]
			}
		}
	}
	if len(stack) == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + len(stack))
	sb.WriteString(s)
	for i := len(stack) - 1; i >= 0; i-- {
		sb.WriteRune(stack[i])
	}
	return sb.String()
}
