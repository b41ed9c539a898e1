package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/seek/internal/parser"
)

// Scenario is a query regression test: an inventory plus queries with the
// items each query must return.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Inventory is a path to a CUE or YAML inventory, relative to the
	// scenario file. Mutually exclusive with Data.
	Inventory string `yaml:"inventory,omitempty"`

	// Data is an inline YAML inventory with items and containers.
	Data yaml.Node `yaml:"data,omitempty"`

	// Queries run in order against the inventory.
	Queries []QueryStep `yaml:"queries"`
}

// QueryStep is one query and its expectations.
type QueryStep struct {
	// Query is the search text as typed.
	Query string `yaml:"query"`

	// Mode is "partial" (default) or "exact".
	Mode string `yaml:"mode,omitempty"`

	// Invalid asserts the query does not parse.
	Invalid bool `yaml:"invalid,omitempty"`

	// Expect lists matching item names, most relevant first. Nil skips the
	// check; an empty list asserts nothing matches.
	Expect []string `yaml:"expect,omitempty"`

	// Containers lists matching container labels in inventory order.
	Containers []string `yaml:"containers,omitempty"`
}

// HasInlineData reports whether the scenario carries an inline inventory.
func (s *Scenario) HasInlineData() bool {
	return s.Data.Kind != 0
}

// LoadScenario reads and parses a scenario YAML file. The inventory path is
// resolved relative to the scenario file.
//
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Inventory != "" && !filepath.IsAbs(scenario.Inventory) {
		scenario.Inventory = filepath.Join(filepath.Dir(path), scenario.Inventory)
	}
	if scenario.Inventory != "" {
		if _, err := os.Stat(scenario.Inventory); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: inventory not found: %s", scenario.Inventory)
		}
	}

	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Inventory == "" && !s.HasInlineData() {
		return fmt.Errorf("inventory or data is required")
	}
	if s.Inventory != "" && s.HasInlineData() {
		return fmt.Errorf("inventory and data are mutually exclusive")
	}

	if len(s.Queries) == 0 {
		return fmt.Errorf("queries list is required and must be non-empty")
	}

	for i, q := range s.Queries {
		if _, err := parser.ParseMode(q.Mode); err != nil {
			return fmt.Errorf("queries[%d]: %w", i, err)
		}
		if q.Invalid && (q.Expect != nil || q.Containers != nil) {
			return fmt.Errorf("queries[%d]: invalid queries cannot expect results", i)
		}
	}

	return nil
}
