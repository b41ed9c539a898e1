package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/roach88/seek/internal/expr"
)

// Mode selects how the leaves of a parsed tree compare strings.
type Mode int

const (
	// ModePartial leaves use case-insensitive substring containment.
	ModePartial Mode = iota
	// ModeExact leaves use case-insensitive equality.
	ModeExact
)

func (m Mode) String() string {
	if m == ModeExact {
		return "exact"
	}
	return "partial"
}

// ParseMode parses "exact" or "partial".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "partial":
		return ModePartial, nil
	case "exact":
		return ModeExact, nil
	default:
		return ModePartial, fmt.Errorf("invalid mode %q: must be exact or partial", s)
	}
}

// Parser turns search text into an expression tree. Both modes share one
// grammar; only the leaves differ.
//
// A Parser is stateless and safe for concurrent use.
type Parser struct {
	mode Mode
}

// New creates a parser for the given mode.
func New(mode Mode) *Parser {
	return &Parser{mode: mode}
}

// Mode returns the parser's leaf mode.
func (p *Parser) Mode() Mode {
	return p.mode
}

// Parse repairs input, wraps it in an implicit [ ... ] group and parses it.
//
// The whole input must be consumed; otherwise a *ParseError is returned and
// no partial tree is produced. When the implicit group holds exactly one
// child, that child is returned on its own.
func (p *Parser) Parse(input string) (expr.Expression, error) {
	repaired := Repair(input)
	s := &state{
		src:   "[" + repaired + "]",
		query: repaired,
		exact: p.mode == ModeExact,
	}

	root, err := s.parseExpression()
	if err != nil {
		return nil, err
	}

	// Input left over means a stray ']' closed the implicit group early.
	// Point at that closer rather than at the wrapper's own.
	closer := s.pos - 1
	s.skipSpace()
	if !s.eof() {
		return nil, s.errorAt(closer, ErrorCodeTrailingInput,
			fmt.Sprintf("unexpected %q without matching opener", s.src[closer]))
	}

	if group, ok := root.(expr.Any); ok && len(group.Children) == 1 {
		return group.Children[0], nil
	}
	return root, nil
}

// Parse is a convenience wrapper for New(mode).Parse(input).
func Parse(mode Mode, input string) (expr.Expression, error) {
	return New(mode).Parse(input)
}

// state is the cursor of a single parse.
type state struct {
	src   string // wrapped input: "[" + query + "]"
	query string // repaired input, used for error positions
	pos   int
	exact bool
}

func (s *state) eof() bool {
	return s.pos >= len(s.src)
}

func (s *state) peekRune() rune {
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return r
}

func (s *state) skipSpace() {
	for !s.eof() {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		s.pos += size
	}
}

// parseExpression dispatches on the next character. Groups and negation
// recurse back into it.
func (s *state) parseExpression() (expr.Expression, error) {
	if s.eof() {
		return nil, s.errorf(ErrorCodeUnexpectedEOF, "expected expression")
	}

	switch c := s.src[s.pos]; c {
	case '(':
		return s.parseGroup(')')
	case '[':
		return s.parseGroup(']')
	case '!':
		return s.parseNot()
	case '{':
		return s.parseDynamic()
	case ')', ']', '}', '~':
		return nil, s.errorf(ErrorCodeUnexpectedToken, "unexpected %q", c)
	default:
		return s.parseStatic()
	}
}

// parseGroup parses ( ... ) or [ ... ]; the opener is at s.pos.
func (s *state) parseGroup(closer byte) (expr.Expression, error) {
	start := s.pos
	s.pos++

	var children []expr.Expression
	for {
		s.skipSpace()
		if s.eof() {
			return nil, s.unclosed(start, closer)
		}
		if s.src[s.pos] == closer {
			s.pos++
			break
		}
		child, err := s.parseExpression()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	if closer == ')' {
		return expr.All{Children: children}, nil
	}
	return expr.Any{Children: children}, nil
}

func (s *state) parseNot() (expr.Expression, error) {
	s.pos++
	s.skipSpace()
	if s.eof() || isCloser(s.src[s.pos]) {
		return nil, s.errorf(ErrorCodeMissingOperand, "expected expression after '!'")
	}

	inner, err := s.parseExpression()
	if err != nil {
		return nil, err
	}
	return expr.Not{Inner: inner}, nil
}

// parseDynamic parses {attr} and, when a '~' follows, the comparable
// {attr}~value. The comparable is tried first so the longer form wins.
func (s *state) parseDynamic() (expr.Expression, error) {
	start := s.pos
	s.pos++

	nameStart := s.pos
	for !s.eof() {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !unicode.IsLetter(r) {
			break
		}
		s.pos += size
	}
	name := s.src[nameStart:s.pos]

	if s.eof() || s.src[s.pos] != '}' {
		if s.eof() || s.src[s.pos] == ']' {
			return nil, s.errorAt(start, ErrorCodeMissingClosingBrace, "missing closing '}'")
		}
		return nil, s.errorf(ErrorCodeUnexpectedToken, "unexpected %q in attribute name", s.peekRune())
	}
	if name == "" {
		return nil, s.errorAt(start, ErrorCodeEmptyAttribute, "empty attribute name")
	}
	attr, err := expr.ParseAttribute(name)
	if err != nil {
		return nil, s.errorAt(nameStart, ErrorCodeUnknownAttribute, err.Error())
	}
	s.pos++

	dynamic := expr.DynamicTerm{Attribute: attr}

	save := s.pos
	s.skipSpace()
	if s.eof() || s.src[s.pos] != '~' {
		s.pos = save
		return dynamic, nil
	}
	s.pos++
	s.skipSpace()

	if s.eof() || isReserved(s.peekRune()) {
		return nil, s.errorf(ErrorCodeMissingOperand, "expected value after '~'")
	}
	right, err := s.parseStatic()
	if err != nil {
		return nil, err
	}

	return expr.Comparable{
		Left:  dynamic,
		Right: right.(expr.StaticTerm),
		Exact: s.exact,
	}, nil
}

func (s *state) parseStatic() (expr.Expression, error) {
	start := s.pos
	for !s.eof() {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if isReserved(r) || unicode.IsSpace(r) {
			break
		}
		s.pos += size
	}
	if s.pos == start {
		return nil, s.errorf(ErrorCodeUnexpectedToken, "expected term")
	}
	return expr.NewStaticTerm(s.src[start:s.pos], s.exact), nil
}

func (s *state) unclosed(start int, closer byte) *ParseError {
	if closer == ')' {
		return s.errorAt(start, ErrorCodeMissingClosingParen, "missing closing ')'")
	}
	return s.errorAt(start, ErrorCodeMissingClosingBracket, "missing closing ']'")
}

func (s *state) errorf(code ErrorCode, format string, args ...any) *ParseError {
	return s.errorAt(s.pos, code, fmt.Sprintf(format, args...))
}

// errorAt converts an offset in the wrapped source to one in the repaired
// query.
func (s *state) errorAt(pos int, code ErrorCode, message string) *ParseError {
	pos--
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.query) {
		pos = len(s.query)
	}
	return &ParseError{
		Message:  message,
		Query:    s.query,
		Position: pos,
		Code:     code,
	}
}

func isReserved(r rune) bool {
	return strings.ContainsRune(expr.Reserved, r)
}

func isCloser(c byte) bool {
	return c == ')' || c == ']' || c == '}'
}
