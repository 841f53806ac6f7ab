package response

import (
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID             int64     `json:"id"`
	ResourceID     int64     `json:"resource_id"`
	ResourceName   string    `json:"resource_name"`
	UserID         int64     `json:"user_id"`
	UserEmail      *string   `json:"user_email,omitempty"`
	UserExternalID *int64    `json:"user_external_id,omitempty"`
	StartAt        time.Time `json:"start"`
	EndAt          time.Time `json:"end"`
	Token          string    `json:"token"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ReservationTokenResponse is what a successful create or update returns.
type ReservationTokenResponse struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
}

type OverlapResponse struct {
	ResourceID int64 `json:"resource_id"`
	Overlaps   bool  `json:"overlaps"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	var out ReservationResponse
	_ = copier.Copy(&out, v)
	return &out
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, len(views))
	for i, v := range views {
		out[i] = FromReservationView(v)
	}
	return out
}

func FromReservationResult(r *commands.ReservationResult) *ReservationTokenResponse {
	return &ReservationTokenResponse{ID: r.ID, Token: r.Token}
}
