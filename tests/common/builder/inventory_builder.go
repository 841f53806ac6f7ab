//go:build unit || e2e

package builder

import (
	"fmt"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/resource"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"
)

// InventoryBuilder assembles inventory entries for reconciliation tests.
type InventoryBuilder struct {
	entries []resource.InventoryEntry
}

func NewInventoryBuilder() *InventoryBuilder {
	return &InventoryBuilder{}
}

func (b *InventoryBuilder) Simulator(id int64) *InventoryBuilder {
	b.entries = append(b.entries, resource.InventoryEntry{ID: id, Type: resource.TypeSimulator})
	return b
}

func (b *InventoryBuilder) MCU(id int64, model string) *InventoryBuilder {
	b.entries = append(b.entries, resource.InventoryEntry{
		ID:    id,
		Type:  resource.TypeMCU,
		Path:  fmt.Sprintf("/dev/ttyUSB%d", id),
		Model: model,
	})
	return b
}

func (b *InventoryBuilder) Entry(e resource.InventoryEntry) *InventoryBuilder {
	b.entries = append(b.entries, e)
	return b
}

func (b *InventoryBuilder) Build() []resource.InventoryEntry {
	out := make([]resource.InventoryEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

func NewResourceView(id int64, name, typ string, available bool) *queries.ResourceView {
	return &queries.ResourceView{ID: id, Name: name, Type: typ, Available: available}
}
