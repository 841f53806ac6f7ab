package resource

import (
	"strings"
	"time"
)

const MaxResourceNameLength = 255

type Resource struct {
	id        int64
	name      string
	model     *string
	path      *string
	typeID    int64
	available bool
	createdAt time.Time
	updatedAt time.Time
}

// FromEntry builds the resource an inventory entry describes. Resources built
// this way are always available; availability only flips through reconciliation.
func FromEntry(entry InventoryEntry, typeID int64) *Resource {
	return &Resource{
		id:        entry.ID,
		name:      entry.DisplayName(),
		model:     nonEmpty(entry.Model),
		path:      nonEmpty(entry.Path),
		typeID:    typeID,
		available: true,
	}
}

func ReconstructResource(
	id int64,
	name string,
	model, path *string,
	typeID int64,
	available bool,
	createdAt, updatedAt time.Time,
) *Resource {
	return &Resource{
		id:        id,
		name:      name,
		model:     model,
		path:      path,
		typeID:    typeID,
		available: available,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// SameAs reports whether other describes the same stored state.
func (r *Resource) SameAs(other *Resource) bool {
	return r.id == other.id &&
		r.name == other.name &&
		equalPtr(r.model, other.model) &&
		equalPtr(r.path, other.path) &&
		r.typeID == other.typeID &&
		r.available == other.available
}

func (r *Resource) ID() int64            { return r.id }
func (r *Resource) Name() string         { return r.name }
func (r *Resource) Model() *string       { return r.model }
func (r *Resource) Path() *string        { return r.path }
func (r *Resource) TypeID() int64        { return r.typeID }
func (r *Resource) Available() bool      { return r.available }
func (r *Resource) CreatedAt() time.Time { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time { return r.updatedAt }

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
