package request

import (
	"strings"
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"
)

// CreateReservationRequest names the user by email, external id or both.
type CreateReservationRequest struct {
	ResourceID int64     `json:"resource_id" binding:"required,gt=0"`
	Start      time.Time `json:"start" binding:"required"`
	End        time.Time `json:"end" binding:"required"`
	Email      *string   `json:"email" binding:"omitempty,email"`
	ExternalID *int64    `json:"external_id" binding:"omitempty,gt=0"`
}

func (r CreateReservationRequest) ToInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		ResourceID: r.ResourceID,
		Start:      r.Start.UTC(),
		End:        r.End.UTC(),
		Email:      trimmed(r.Email),
		ExternalID: r.ExternalID,
	}
}

type UpdateReservationRequest struct {
	ResourceID *int64     `json:"resource_id" binding:"omitempty,gt=0"`
	Start      *time.Time `json:"start"`
	End        *time.Time `json:"end"`
}

func (r UpdateReservationRequest) ToInput() commands.UpdateReservationInput {
	return commands.UpdateReservationInput{
		ResourceID: r.ResourceID,
		Start:      utc(r.Start),
		End:        utc(r.End),
	}
}

type ListReservationsQuery struct {
	Email      string `form:"email"`
	ExternalID *int64 `form:"external_id" binding:"omitempty,gt=0"`
	Resource   string `form:"resource"`
}

func (q ListReservationsQuery) ToFilter() queries.ReservationFilter {
	return queries.ReservationFilter{
		Email:        strings.ToLower(strings.TrimSpace(q.Email)),
		ExternalID:   q.ExternalID,
		ResourceName: strings.TrimSpace(q.Resource),
	}
}

type OverlapQuery struct {
	Start   time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End     time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Exclude int64     `form:"exclude" binding:"omitempty,gt=0"`
}

func (q OverlapQuery) ToQuery(resourceID int64) commands.OverlapQuery {
	return commands.OverlapQuery{
		ResourceID: resourceID,
		Start:      q.Start.UTC(),
		End:        q.End.UTC(),
		ExcludeID:  q.Exclude,
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
