package queries

import (
	"time"
)

// ReservationView is the read model of a reservation joined with its resource and user.
type ReservationView struct {
	ID             int64     `json:"id"`
	ResourceID     int64     `json:"resource_id"`
	ResourceName   string    `json:"resource_name"`
	UserID         int64     `json:"user_id"`
	UserEmail      *string   `json:"user_email,omitempty"`
	UserExternalID *int64    `json:"user_external_id,omitempty"`
	StartAt        time.Time `json:"start_at"`
	EndAt          time.Time `json:"end_at"`
	Token          string    `json:"token"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ReservationFilter fields are ANDed; zero values match everything.
type ReservationFilter struct {
	ID           *int64
	Email        string
	ExternalID   *int64
	ResourceName string
}

type ResourceView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Model     *string   `json:"model,omitempty"`
	Path      *string   `json:"path,omitempty"`
	Type      string    `json:"type"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ResourceFilter struct {
	ID        *int64
	Type      string
	Name      string
	Available *bool
}

type UserView struct {
	ID         int64     `json:"id"`
	Email      *string   `json:"email,omitempty"`
	ExternalID *int64    `json:"external_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type UserFilter struct {
	ID         *int64
	Email      string
	ExternalID *int64
}
