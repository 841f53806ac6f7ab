//go:build unit || e2e

package builder

import (
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/reservation"
	reqdto "github.com/ilya-afanasev/avr-lab-reservation/internal/handler/dto/request"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationBuilder struct {
	ID           int64
	ResourceID   int64
	ResourceName string
	UserID       int64
	Email        *string
	ExternalID   *int64
	Start        time.Time
	End          time.Time
	Token        string
	CreatedAt    time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	start := time.Date(2030, 1, 15, 10, 0, 0, 0, time.UTC)
	email := "dev@example.com"
	return &ReservationBuilder{
		ID:           1,
		ResourceID:   1,
		ResourceName: "atmega2560",
		UserID:       1,
		Email:        &email,
		Start:        start,
		End:          start.Add(time.Hour),
		Token:        "token-1",
		CreatedAt:    start.Add(-24 * time.Hour),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	return reservation.ReconstructReservation(
		b.ID, b.ResourceID, b.UserID,
		reservation.ReconstructTimeSlot(b.Start, b.End),
		b.Token, b.CreatedAt, b.CreatedAt,
	)
}

func (b *ReservationBuilder) BuildInfra() sqlc.Reservations {
	return sqlc.Reservations{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		UserID:     b.UserID,
		StartAt:    ts(b.Start),
		EndAt:      ts(b.End),
		Token:      b.Token,
		CreatedAt:  ts(b.CreatedAt),
		UpdatedAt:  ts(b.CreatedAt),
	}
}

func (b *ReservationBuilder) BuildViewRow() sqlc.ListReservationViewsRow {
	row := sqlc.ListReservationViewsRow{
		ID:           b.ID,
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		UserID:       b.UserID,
		StartAt:      ts(b.Start),
		EndAt:        ts(b.End),
		Token:        b.Token,
		CreatedAt:    ts(b.CreatedAt),
		UpdatedAt:    ts(b.CreatedAt),
	}
	if b.Email != nil {
		row.UserEmail = pgtype.Text{String: *b.Email, Valid: true}
	}
	if b.ExternalID != nil {
		row.UserExternalID = pgtype.Int8{Int64: *b.ExternalID, Valid: true}
	}
	return row
}

func (b *ReservationBuilder) BuildReadModel() *queries.ReservationView {
	return &queries.ReservationView{
		ID:             b.ID,
		ResourceID:     b.ResourceID,
		ResourceName:   b.ResourceName,
		UserID:         b.UserID,
		UserEmail:      b.Email,
		UserExternalID: b.ExternalID,
		StartAt:        b.Start,
		EndAt:          b.End,
		Token:          b.Token,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ResourceID: b.ResourceID,
		Start:      b.Start,
		End:        b.End,
		Email:      b.Email,
		ExternalID: b.ExternalID,
	}
}

// Fluent builder methods
func (b *ReservationBuilder) WithID(id int64) *ReservationBuilder {
	b.ID = id
	return b
}

func (b *ReservationBuilder) WithResource(id int64, name string) *ReservationBuilder {
	b.ResourceID = id
	b.ResourceName = name
	return b
}

func (b *ReservationBuilder) WithWindow(start, end time.Time) *ReservationBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *ReservationBuilder) WithToken(token string) *ReservationBuilder {
	b.Token = token
	return b
}

func (b *ReservationBuilder) WithExternalID(id int64) *ReservationBuilder {
	b.ExternalID = &id
	return b
}

func (b *ReservationBuilder) WithoutEmail() *ReservationBuilder {
	b.Email = nil
	return b
}

func ts(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
