// Package inventory loads item snapshots from CUE and YAML files.
//
// Both formats describe the same shape: loose items (the player's backpack)
// and containers holding items. Quality may be written as a tier name
// ("gold") or its integer value (2).
//
// CUE:
//
//	items: [{name: "Wood", category: "Resource", quantity: 50, tags: ["wood"]}]
//	containers: shed: {
//		label: "Shed Chest"
//		items: [{name: "Stone", quantity: 400}]
//	}
//
// YAML:
//
//	items:
//	  - {name: Wood, category: Resource, quantity: 50, tags: [wood]}
//	containers:
//	  - id: shed
//	    label: Shed Chest
//	    items:
//	      - {name: Stone, quantity: 400}
package inventory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/roach88/seek/internal/item"
)

// Inventory is a snapshot of loose items and containers.
type Inventory struct {
	Items      []*item.Record `json:"items" yaml:"items"`
	Containers []*item.Chest  `json:"containers" yaml:"containers"`
}

// AllItems returns loose items followed by the contents of every container,
// in file order.
func (inv *Inventory) AllItems() []item.Item {
	out := item.Items(inv.Items)
	for _, c := range inv.Containers {
		out = append(out, c.Items()...)
	}
	return out
}

// ContainerList returns the containers as item.Container values.
func (inv *Inventory) ContainerList() []item.Container {
	out := make([]item.Container, len(inv.Containers))
	for i, c := range inv.Containers {
		out[i] = c
	}
	return out
}

// Load reads an inventory from a .cue file, a directory of .cue files, or a
// .yaml/.yml file.
func Load(path string) (*Inventory, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("inventory not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing inventory: %v", err)}
	}

	if info.IsDir() {
		return LoadCUEDir(path)
	}

	switch filepath.Ext(path) {
	case ".cue":
		return LoadCUEFile(path)
	case ".yaml", ".yml":
		return LoadYAMLFile(path)
	default:
		return nil, &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported inventory format %q (want .cue, .yaml or .yml)", filepath.Ext(path)),
		}
	}
}

// Validate checks quantities, qualities and container ids. All problems are
// reported together.
func (inv *Inventory) Validate() error {
	var errs *multierror.Error

	check := func(where string, r *item.Record) {
		if r == nil {
			errs = multierror.Append(errs, &LoadError{Code: ErrCodeInvalidItem, Message: where + ": empty item"})
			return
		}
		if r.ItemQuantity < 0 {
			errs = multierror.Append(errs, &LoadError{
				Code:    ErrCodeInvalidItem,
				Message: fmt.Sprintf("%s: quantity must not be negative, got %d", where, r.ItemQuantity),
			})
		}
		if !r.ItemQuality.Valid() {
			errs = multierror.Append(errs, &LoadError{
				Code:    ErrCodeInvalidItem,
				Message: fmt.Sprintf("%s: invalid quality %d", where, int(r.ItemQuality)),
			})
		}
	}

	for i, r := range inv.Items {
		check(fmt.Sprintf("items[%d]", i), r)
	}

	seen := make(map[string]bool)
	for i, c := range inv.Containers {
		if c == nil {
			errs = multierror.Append(errs, &LoadError{Code: ErrCodeInvalidItem, Message: fmt.Sprintf("containers[%d]: empty container", i)})
			continue
		}
		if c.ID != "" {
			if seen[c.ID] {
				errs = multierror.Append(errs, &LoadError{
					Code:    ErrCodeDuplicateID,
					Message: fmt.Sprintf("containers[%d]: duplicate id %q", i, c.ID),
				})
			}
			seen[c.ID] = true
		}
		for j, r := range c.Contents {
			check(fmt.Sprintf("containers[%d].items[%d]", i, j), r)
		}
	}

	return errs.ErrorOrNil()
}
