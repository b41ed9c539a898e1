// Package querysql compiles search expressions to parameterized SQLite.
//
// The store keeps a folded copy of every string column (name_fold,
// category_fold, tag_fold) written with expr.Fold, so case-insensitive
// equality and containment reduce to plain = and LIKE on folded text and
// the SQL result equals what the in-memory matcher returns.
package querysql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/seek/internal/expr"
	"github.com/roach88/seek/internal/item"
)

const (
	sqlTrue  = "1 = 1"
	sqlFalse = "0 = 1"

	likeEscapeClause = `ESCAPE '\'`
)

// Compiler compiles expressions against the items table.
//
// CRITICAL: All values are parameterized, never interpolated.
type Compiler struct {
	// Alias is the items table alias used in generated SQL. Default "i".
	Alias string
}

// NewCompiler creates a Compiler with the default alias.
func NewCompiler() *Compiler {
	return &Compiler{Alias: "i"}
}

// Compile returns a SELECT over items whose WHERE clause is e.
//
// MANDATORY: Every query includes ORDER BY with a deterministic tiebreaker.
// Relevance ordering is applied by the caller after the rows are read.
func (c *Compiler) Compile(e expr.Expression) (string, []any, error) {
	where, params, err := c.Where(e)
	if err != nil {
		return "", nil, err
	}

	a := c.alias()
	sql := fmt.Sprintf(
		"SELECT %[1]s.id, %[1]s.container_id, %[1]s.name, %[1]s.category, %[1]s.quantity, %[1]s.quality FROM items %[1]s WHERE %[2]s ORDER BY %[1]s.seq ASC, %[1]s.id ASC COLLATE BINARY",
		a, where)
	return sql, params, nil
}

// Where compiles e to a WHERE clause fragment.
func (c *Compiler) Where(e expr.Expression) (string, []any, error) {
	if e == nil {
		return "", nil, fmt.Errorf("cannot compile nil expression")
	}

	switch n := e.(type) {
	case expr.All:
		return c.compileGroup(n.Children, " AND ", sqlTrue)
	case expr.Any:
		return c.compileGroup(n.Children, " OR ", sqlFalse)
	case expr.Not:
		inner, params, err := c.Where(n.Inner)
		if err != nil {
			return "", nil, err
		}
		return "NOT (" + inner + ")", params, nil
	case expr.DynamicTerm:
		return sqlTrue, nil, nil
	case expr.StaticTerm:
		return c.compileStatic(n)
	case expr.Comparable:
		return c.compileComparable(n)
	default:
		return "", nil, fmt.Errorf("unsupported expression type: %T", e)
	}
}

// compileGroup joins children with op. An empty group compiles to empty,
// the vacuous result of the group.
func (c *Compiler) compileGroup(children []expr.Expression, op, empty string) (string, []any, error) {
	if len(children) == 0 {
		return empty, nil, nil
	}

	parts := make([]string, 0, len(children))
	var params []any
	for _, child := range children {
		sql, childParams, err := c.Where(child)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "("+sql+")")
		params = append(params, childParams...)
	}
	return strings.Join(parts, op), params, nil
}

// compileStatic matches the item name or any tag.
func (c *Compiler) compileStatic(s expr.StaticTerm) (string, []any, error) {
	a := c.alias()
	nameSQL, nameParams := textMatch(a+".name_fold", s.Text, s.Exact)
	tagSQL, tagParams := c.tagExists(s.Text, s.Exact)

	sql := fmt.Sprintf("(%s <> '' AND %s) OR %s", a+".name_fold", nameSQL, tagSQL)
	return sql, append(nameParams, tagParams...), nil
}

func (c *Compiler) compileComparable(cmp expr.Comparable) (string, []any, error) {
	a := c.alias()
	text := cmp.Right.Text

	switch cmp.Left.Attribute {
	case expr.AttributeName, expr.AttributeCategory:
		col := a + ".name_fold"
		if cmp.Left.Attribute == expr.AttributeCategory {
			col = a + ".category_fold"
		}
		sql, params := textMatch(col, text, cmp.Exact)
		return fmt.Sprintf("%s <> '' AND %s", col, sql), params, nil
	case expr.AttributeQuantity:
		n, ok := parseQuantity(text)
		if !ok {
			return sqlFalse, nil, nil
		}
		return a + ".quantity = ?", []any{int64(n)}, nil
	case expr.AttributeQuality:
		q, err := item.ParseQuality(text)
		if err != nil {
			return sqlFalse, nil, nil
		}
		return a + ".quality = ?", []any{int64(q)}, nil
	case expr.AttributeTags:
		sql, params := c.tagExists(text, cmp.Exact)
		return sql, params, nil
	default:
		return "", nil, fmt.Errorf("unsupported attribute: %s", cmp.Left.Attribute)
	}
}

func (c *Compiler) tagExists(text string, exact bool) (string, []any) {
	sql, params := textMatch("t.tag_fold", text, exact)
	return fmt.Sprintf("EXISTS (SELECT 1 FROM item_tags t WHERE t.item_id = %s.id AND %s)", c.alias(), sql), params
}

func (c *Compiler) alias() string {
	if c.Alias == "" {
		return "i"
	}
	return c.Alias
}

// textMatch compares a folded column against text: equality in exact mode,
// containment otherwise.
func textMatch(col, text string, exact bool) (string, []any) {
	folded := expr.Fold(text)
	if exact {
		return col + " = ?", []any{folded}
	}
	return fmt.Sprintf("%s LIKE ? %s", col, likeEscapeClause), []any{"%" + escapeLikePattern(folded) + "%"}
}

func escapeLikePattern(value string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		"%", `\%`,
		"_", `\_`,
	)
	return replacer.Replace(value)
}

func parseQuantity(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	return n, err == nil
}
