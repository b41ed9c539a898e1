package parser

import "fmt"

// ErrorCode categorizes parse errors.
type ErrorCode int

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodeUnexpectedToken
	ErrorCodeUnexpectedEOF
	ErrorCodeMissingClosingParen
	ErrorCodeMissingClosingBracket
	ErrorCodeMissingClosingBrace
	ErrorCodeEmptyAttribute
	ErrorCodeUnknownAttribute
	ErrorCodeMissingOperand
	ErrorCodeTrailingInput
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCodeUnknown:               "unknown",
	ErrorCodeUnexpectedToken:       "unexpected token",
	ErrorCodeUnexpectedEOF:         "unexpected end of input",
	ErrorCodeMissingClosingParen:   "missing closing parenthesis",
	ErrorCodeMissingClosingBracket: "missing closing bracket",
	ErrorCodeMissingClosingBrace:   "missing closing brace",
	ErrorCodeEmptyAttribute:        "empty attribute",
	ErrorCodeUnknownAttribute:      "unknown attribute",
	ErrorCodeMissingOperand:        "missing operand",
	ErrorCodeTrailingInput:         "trailing input",
}

func (c ErrorCode) String() string {
	if n, ok := errorCodeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// ParseError describes why a search expression could not be parsed.
//
// Position is a byte offset into Query, which is the repaired input the
// parser actually saw.
type ParseError struct {
	Message  string
	Query    string
	Position int
	Code     ErrorCode
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Position, e.Message)
}
