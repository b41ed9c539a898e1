// Package item defines the accessor contract the search engine evaluates
// expressions against, plus plain in-memory implementations used by the
// store, the inventory loader and tests.
package item

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Item is the read-only view of a single item stack.
type Item interface {
	Name() string
	Category() string
	Quantity() int
	Quality() Quality
	Tags() []string
}

// Container is anything holding items: a chest, a fridge, a player backpack.
type Container interface {
	Label() string
	Items() []Item
}

// Quality is the enum-backed quality tier of an item.
type Quality int

const (
	QualityNormal  Quality = 0
	QualitySilver  Quality = 1
	QualityGold    Quality = 2
	QualityIridium Quality = 4
)

var qualityNames = []struct {
	q    Quality
	name string
}{
	{QualityNormal, "normal"},
	{QualitySilver, "silver"},
	{QualityGold, "gold"},
	{QualityIridium, "iridium"},
}

// ParseQuality parses a quality name (case-insensitive) or its integer value.
// Integers that are not a defined tier are rejected.
func ParseQuality(s string) (Quality, error) {
	s = strings.TrimSpace(s)
	for _, qn := range qualityNames {
		if strings.EqualFold(qn.name, s) {
			return qn.q, nil
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid quality %q", s)
	}
	q := Quality(n)
	if !q.Valid() {
		return 0, fmt.Errorf("invalid quality %d", n)
	}
	return q, nil
}

// Valid reports whether q is a defined tier.
func (q Quality) Valid() bool {
	for _, qn := range qualityNames {
		if qn.q == q {
			return true
		}
	}
	return false
}

func (q Quality) String() string {
	for _, qn := range qualityNames {
		if qn.q == q {
			return qn.name
		}
	}
	return strconv.Itoa(int(q))
}

// UnmarshalYAML accepts either a tier name or its integer value.
func (q *Quality) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: quality must be a scalar", value.Line)
	}
	parsed, err := ParseQuality(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*q = parsed
	return nil
}

// Record is a plain Item value.
type Record struct {
	ID           string   `json:"id,omitempty" yaml:"id,omitempty"`
	ItemName     string   `json:"name" yaml:"name"`
	ItemCategory string   `json:"category,omitempty" yaml:"category,omitempty"`
	ItemQuantity int      `json:"quantity" yaml:"quantity"`
	ItemQuality  Quality  `json:"quality" yaml:"quality"`
	ItemTags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

func (r *Record) Name() string     { return r.ItemName }
func (r *Record) Category() string { return r.ItemCategory }
func (r *Record) Quantity() int    { return r.ItemQuantity }
func (r *Record) Quality() Quality { return r.ItemQuality }
func (r *Record) Tags() []string   { return r.ItemTags }

func (r *Record) String() string {
	if r.ItemQuantity > 1 {
		return fmt.Sprintf("%s x%d", r.ItemName, r.ItemQuantity)
	}
	return r.ItemName
}

// Chest is a plain Container value.
type Chest struct {
	ID        string    `json:"id,omitempty" yaml:"id,omitempty"`
	ChestName string    `json:"label" yaml:"label"`
	Contents  []*Record `json:"items" yaml:"items"`
}

func (c *Chest) Label() string { return c.ChestName }

func (c *Chest) Items() []Item {
	items := make([]Item, len(c.Contents))
	for i, r := range c.Contents {
		items[i] = r
	}
	return items
}

func (c *Chest) String() string {
	return c.ChestName
}

// Items converts records to the Item interface.
func Items(records []*Record) []Item {
	items := make([]Item, len(records))
	for i, r := range records {
		items[i] = r
	}
	return items
}
