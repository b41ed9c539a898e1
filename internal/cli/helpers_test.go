package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const farmYAML = `items:
  - {name: Wood, category: Resource, quantity: 50, tags: [wood, building]}
  - {name: Driftwood, category: Trash, tags: [wood, beach]}
  - {name: Stone, category: Resource, quantity: 30, tags: [building]}
  - {name: Parsnip, category: Vegetable, quantity: 7, quality: gold, tags: [crop]}
  - {name: Sardine, category: Fish, quantity: 2, quality: iridium, tags: [fish]}
containers:
  - id: shed
    label: Shed Chest
    items:
      - {name: Hardwood, category: Resource, quantity: 12, quality: silver, tags: [wood]}
      - {name: Stone, category: Resource, quantity: 400}
  - id: fridge
    label: Fridge
    items:
      - {name: Largemouth Bass, category: Fish, quality: gold, tags: [fish]}
`

// writeFarm writes the farm inventory to a temp dir and returns its path.
func writeFarm(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "farm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(farmYAML), 0644))
	return path
}

// importFarm writes the farm inventory into a fresh SQLite store.
func importFarm(t *testing.T) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "farm.db")
	_, _, err := execute(t, "import", writeFarm(t), "--db", db)
	require.NoError(t, err)
	return db
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}
