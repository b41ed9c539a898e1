package expr

import (
	"fmt"
	"strings"
)

// Attribute names an item property addressable with {attr} syntax.
type Attribute int

const (
	AttributeCategory Attribute = iota + 1
	AttributeName
	AttributeQuantity
	AttributeQuality
	AttributeTags
)

// Kind is the value type an attribute resolves to.
type Kind int

const (
	KindString Kind = iota + 1
	KindInt
	KindStrings
)

var attributeNames = map[Attribute]string{
	AttributeCategory: "category",
	AttributeName:     "name",
	AttributeQuantity: "quantity",
	AttributeQuality:  "quality",
	AttributeTags:     "tags",
}

// Attributes lists every attribute in declaration order.
func Attributes() []Attribute {
	return []Attribute{
		AttributeCategory,
		AttributeName,
		AttributeQuantity,
		AttributeQuality,
		AttributeTags,
	}
}

// ParseAttribute resolves an identifier to an Attribute, ignoring case.
func ParseAttribute(name string) (Attribute, error) {
	for attr, n := range attributeNames {
		if strings.EqualFold(n, name) {
			return attr, nil
		}
	}
	return 0, fmt.Errorf("unknown attribute %q", name)
}

// String returns the lowercase attribute name used in the literal syntax.
func (a Attribute) String() string {
	if n, ok := attributeNames[a]; ok {
		return n
	}
	return fmt.Sprintf("attribute(%d)", int(a))
}

// Valid reports whether a is one of the declared attributes.
func (a Attribute) Valid() bool {
	_, ok := attributeNames[a]
	return ok
}

// Kind returns the value type the attribute resolves to.
func (a Attribute) Kind() Kind {
	switch a {
	case AttributeQuantity, AttributeQuality:
		return KindInt
	case AttributeTags:
		return KindStrings
	default:
		return KindString
	}
}
