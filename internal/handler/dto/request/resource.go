package request

import (
	"strings"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/resource"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ListResourcesQuery struct {
	Type      string `form:"type"`
	Name      string `form:"name"`
	Available *bool  `form:"available"`
}

func (q ListResourcesQuery) ToFilter() queries.ResourceFilter {
	return queries.ResourceFilter{
		Type:      strings.ToLower(strings.TrimSpace(q.Type)),
		Name:      strings.TrimSpace(q.Name),
		Available: q.Available,
	}
}

type InventoryEntryRequest struct {
	ID    int64  `json:"id" binding:"required,gt=0"`
	Type  string `json:"type" binding:"required"`
	Name  string `json:"name" binding:"omitempty,max=255"`
	Path  string `json:"path"`
	Model string `json:"model"`
}

// ReconcileRequest carries an inline inventory. Without a body the configured
// inventory file is used instead.
type ReconcileRequest struct {
	Resources []InventoryEntryRequest `json:"resources" binding:"dive"`
}

func (r ReconcileRequest) ToEntries() ([]resource.InventoryEntry, error) {
	entries := make([]resource.InventoryEntry, 0, len(r.Resources))
	if err := copier.Copy(&entries, &r.Resources); err != nil {
		return nil, err
	}
	return entries, nil
}
