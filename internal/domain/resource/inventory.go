package resource

import (
	"fmt"
	"strings"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"
)

const (
	TypeSimulator = "simulator"
	TypeMCU       = "mcu"
)

// InventoryEntry is one resource as described by the inventory file.
type InventoryEntry struct {
	ID    int64  `toml:"id" yaml:"id" validate:"gt=0"`
	Type  string `toml:"type" yaml:"type" validate:"required"`
	Name  string `toml:"name,omitempty" yaml:"name,omitempty" validate:"max=255"`
	Path  string `toml:"path,omitempty" yaml:"path,omitempty" validate:"required_if=Type mcu"`
	Model string `toml:"model,omitempty" yaml:"model,omitempty" validate:"required_if=Type mcu"`
}

// NormalizedType is the lower-cased, trimmed type name.
func (e InventoryEntry) NormalizedType() string {
	return strings.ToLower(strings.TrimSpace(e.Type))
}

// DisplayName prefers an explicit name, then "<model>-<id>", then "<type>-<id>".
// Derived names carry the id so identical boards never collide.
func (e InventoryEntry) DisplayName() string {
	if name := strings.TrimSpace(e.Name); name != "" {
		return name
	}
	if model := strings.TrimSpace(e.Model); model != "" {
		return fmt.Sprintf("%s-%d", model, e.ID)
	}
	return fmt.Sprintf("%s-%d", e.NormalizedType(), e.ID)
}

// Check applies the type rules to a single entry.
func (e InventoryEntry) Check() error {
	switch e.NormalizedType() {
	case TypeSimulator:
		return nil
	case TypeMCU:
		var missing []string
		if strings.TrimSpace(e.Path) == "" {
			missing = append(missing, "path")
		}
		if strings.TrimSpace(e.Model) == "" {
			missing = append(missing, "model")
		}
		if len(missing) > 0 {
			return errs.Newf(errs.KindInvalidInventoryEntry,
				"Resource %d of type %s requires %s", e.ID, TypeMCU, strings.Join(missing, " and ")).
				With("id", e.ID).
				With("missing", missing)
		}
		return nil
	default:
		return errs.Newf(errs.KindUnsupportedResourceType,
			"Resource %d has unsupported type %q", e.ID, e.Type).
			With("id", e.ID).
			With("type", e.Type)
	}
}

// CheckInventory validates every entry and rejects duplicate ids and names.
// Only explicit names can collide; derived names embed the id.
// The first failure aborts the whole inventory.
func CheckInventory(entries []InventoryEntry) error {
	ids := make(map[int64]struct{}, len(entries))
	names := make(map[string]int64, len(entries))
	for _, e := range entries {
		if e.ID <= 0 {
			return errs.Newf(errs.KindInvalidInventoryEntry, "Resource id must be positive, got %d", e.ID).
				With("id", e.ID)
		}
		if err := e.Check(); err != nil {
			return err
		}
		if _, dup := ids[e.ID]; dup {
			return errs.Newf(errs.KindInvalidInventoryEntry, "Resource id %d is listed twice", e.ID).
				With("id", e.ID)
		}
		ids[e.ID] = struct{}{}

		name := e.DisplayName()
		if len(name) > MaxResourceNameLength {
			return errs.Newf(errs.KindInvalidInventoryEntry, "Resource %d name is too long", e.ID).
				With("id", e.ID)
		}
		if other, dup := names[name]; dup {
			return errs.Newf(errs.KindInvalidInventoryEntry,
				"Resources %d and %d share the name %q", other, e.ID, name).
				With("id", e.ID).
				With("name", name)
		}
		names[name] = e.ID
	}
	return nil
}
