package reservation

import (
	"fmt"
	"time"
)

type Reservation struct {
	id         int64
	resourceID int64
	userID     int64
	timeSlot   TimeSlot
	token      string
	createdAt  time.Time
	updatedAt  time.Time
}

func NewReservation(resourceID, userID int64, slot TimeSlot) *Reservation {
	return &Reservation{
		resourceID: resourceID,
		userID:     userID,
		timeSlot:   slot,
	}
}

func ReconstructReservation(
	id, resourceID, userID int64,
	timeSlot TimeSlot,
	token string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		resourceID: resourceID,
		userID:     userID,
		timeSlot:   timeSlot,
		token:      token,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Descriptor is the stable string a token is derived from.
func (r *Reservation) Descriptor() string {
	return fmt.Sprintf("resource=%d;user=%d;start=%s;end=%s",
		r.resourceID, r.userID,
		r.timeSlot.Start().Format(time.RFC3339Nano),
		r.timeSlot.End().Format(time.RFC3339Nano))
}

// Reschedule moves the reservation and drops its token; a new one must be issued.
func (r *Reservation) Reschedule(resourceID int64, slot TimeSlot) {
	r.resourceID = resourceID
	r.timeSlot = slot
	r.token = ""
}

// AssignToken sets the token once; an assigned token is never overwritten.
func (r *Reservation) AssignToken(token string) error {
	if r.token != "" {
		return ErrTokenAlreadyAssigned
	}
	r.token = token
	return nil
}

func (r *Reservation) ID() int64            { return r.id }
func (r *Reservation) ResourceID() int64    { return r.resourceID }
func (r *Reservation) UserID() int64        { return r.userID }
func (r *Reservation) TimeSlot() TimeSlot   { return r.timeSlot }
func (r *Reservation) Token() string        { return r.token }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
