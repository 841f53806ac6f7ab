package response

import (
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID         int64     `json:"id"`
	Email      *string   `json:"email,omitempty"`
	ExternalID *int64    `json:"external_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	var out UserResponse
	_ = copier.Copy(&out, v)
	return &out
}

func FromUserViews(views []*queries.UserView) []*UserResponse {
	out := make([]*UserResponse, len(views))
	for i, v := range views {
		out[i] = FromUserView(v)
	}
	return out
}
