package sqlc

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Reservations struct {
	ID         int64              `json:"id"`
	ResourceID int64              `json:"resource_id"`
	UserID     int64              `json:"user_id"`
	StartAt    pgtype.Timestamptz `json:"start_at"`
	EndAt      pgtype.Timestamptz `json:"end_at"`
	Token      string             `json:"token"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
	UpdatedAt  pgtype.Timestamptz `json:"updated_at"`
}

type ResourceTypes struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Resources struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Model     pgtype.Text        `json:"model"`
	Path      pgtype.Text        `json:"path"`
	TypeID    int64              `json:"type_id"`
	Available bool               `json:"available"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type Users struct {
	ID         int64              `json:"id"`
	Email      pgtype.Text        `json:"email"`
	ExternalID pgtype.Int8        `json:"external_id"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}
