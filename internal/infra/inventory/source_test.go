//go:build unit

package inventory_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/resource"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra/inventory"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileSource_Load(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		path := writeFile(t, "resources.toml", `
[[resources]]
id = 1
type = "simulator"

[[resources]]
id = 2
type = "mcu"
model = "atmega2560"
path = "/dev/ttyUSB0"
`)

		entries, err := inventory.NewFileSource(path).Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []resource.InventoryEntry{
			{ID: 1, Type: "simulator"},
			{ID: 2, Type: "mcu", Model: "atmega2560", Path: "/dev/ttyUSB0"},
		}, entries)
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "resources.yml", `
resources:
  - id: 3
    type: simulator
    name: sim-three
`)

		entries, err := inventory.NewFileSource(path).Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []resource.InventoryEntry{{ID: 3, Type: "simulator", Name: "sim-three"}}, entries)
	})

	t.Run("empty yaml is an empty inventory", func(t *testing.T) {
		path := writeFile(t, "resources.yaml", "")

		entries, err := inventory.NewFileSource(path).Load(context.Background())

		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestFileSource_LoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		path     func(t *testing.T) string
		wantKind errs.Kind
	}{
		{
			name:     "missing file",
			path:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.toml") },
			wantKind: errs.KindConfigUnreadable,
		},
		{
			name:     "unknown extension",
			path:     func(t *testing.T) string { return writeFile(t, "resources.ini", "[resource1]\ntype = simulator\n") },
			wantKind: errs.KindConfigUnreadable,
		},
		{
			name:     "malformed toml",
			path:     func(t *testing.T) string { return writeFile(t, "resources.toml", "[[resources]\nid = ") },
			wantKind: errs.KindConfigUnreadable,
		},
		{
			name:     "unknown yaml field",
			path:     func(t *testing.T) string { return writeFile(t, "resources.yaml", "resources:\n  - id: 1\n    kind: simulator\n") },
			wantKind: errs.KindConfigUnreadable,
		},
		{
			name: "mcu without path",
			path: func(t *testing.T) string {
				return writeFile(t, "resources.toml", "[[resources]]\nid = 7\ntype = \"mcu\"\nmodel = \"atmega328p\"\n")
			},
			wantKind: errs.KindInvalidInventoryEntry,
		},
		{
			name:     "non-positive id",
			path:     func(t *testing.T) string { return writeFile(t, "resources.toml", "[[resources]]\nid = 0\ntype = \"simulator\"\n") },
			wantKind: errs.KindInvalidInventoryEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := inventory.NewFileSource(tt.path(t)).Load(context.Background())

			require.Error(t, err)
			kind, ok := errs.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestFileSource_InvalidEntryCarriesID(t *testing.T) {
	path := writeFile(t, "resources.toml", "[[resources]]\nid = 1\ntype = \"simulator\"\n\n[[resources]]\nid = 9\ntype = \"mcu\"\npath = \"/dev/ttyACM0\"\n")

	_, err := inventory.NewFileSource(path).Load(context.Background())

	details := errs.Details(err)
	require.Len(t, details, 1)
	assert.Equal(t, int64(9), details[0].Detail["id"])
	assert.Equal(t, "Model", details[0].Detail["field"])
}
