package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/seek/internal/item"
)

type yamlItem struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Category string       `yaml:"category"`
	Quantity *int         `yaml:"quantity"`
	Quality  item.Quality `yaml:"quality"`
	Tags     []string     `yaml:"tags"`
}

type yamlContainer struct {
	ID    string     `yaml:"id"`
	Label string     `yaml:"label"`
	Items []yamlItem `yaml:"items"`
}

type yamlInventory struct {
	Items      []yamlItem      `yaml:"items"`
	Containers []yamlContainer `yaml:"containers"`
}

// LoadYAMLFile reads a YAML inventory.
func LoadYAMLFile(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}
	inv, err := ParseYAML(data)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Code == ErrCodeLoadFailed {
			loadErr.Message = path + ": " + loadErr.Message
		}
		return nil, err
	}
	return inv, nil
}

// ParseYAML decodes and validates a YAML inventory. Unknown fields are
// rejected. Items without a quantity default to 1.
func ParseYAML(data []byte) (*Inventory, error) {
	var raw yamlInventory

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
	}

	inv := &Inventory{Items: convertItems(raw.Items)}
	for _, c := range raw.Containers {
		inv.Containers = append(inv.Containers, &item.Chest{
			ID:        c.ID,
			ChestName: c.Label,
			Contents:  convertItems(c.Items),
		})
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

func convertItems(raw []yamlItem) []*item.Record {
	var out []*item.Record
	for _, y := range raw {
		qty := 1
		if y.Quantity != nil {
			qty = *y.Quantity
		}
		out = append(out, &item.Record{
			ID:           y.ID,
			ItemName:     y.Name,
			ItemCategory: y.Category,
			ItemQuantity: qty,
			ItemQuality:  y.Quality,
			ItemTags:     y.Tags,
		})
	}
	return out
}
