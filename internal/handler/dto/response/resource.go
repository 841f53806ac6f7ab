package response

import (
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ResourceResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Model     *string   `json:"model,omitempty"`
	Path      *string   `json:"path,omitempty"`
	Type      string    `json:"type"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReconcileResponse struct {
	Created           int   `json:"created"`
	Updated           int   `json:"updated"`
	Unchanged         int   `json:"unchanged"`
	MarkedUnavailable int64 `json:"marked_unavailable"`
}

func FromResourceViews(views []*queries.ResourceView) []*ResourceResponse {
	out := make([]*ResourceResponse, len(views))
	for i, v := range views {
		out[i] = &ResourceResponse{}
		_ = copier.Copy(out[i], v)
	}
	return out
}

func FromReconcileResult(r *commands.ReconcileResult) *ReconcileResponse {
	var out ReconcileResponse
	_ = copier.Copy(&out, r)
	return &out
}
