package commands

import (
	"context"
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/reservation"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/clock"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/config"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/shared"
)

type Validator struct {
	policy reservation.Policy
	clock  clock.Clock
}

func NewValidator(cfg config.ReservationConfig, clk clock.Clock) *Validator {
	return &Validator{
		policy: reservation.Policy{
			MaxDuration:      cfg.MaxDuration,
			MaxActivePerUser: cfg.MaxActivePerUser,
		},
		clock: clk,
	}
}

// Window checks rules 1-3 and reports every violation.
func (v *Validator) Window(start, end time.Time, resourceName string) error {
	return v.policy.CheckWindow(v.clock.Now(), start, end, resourceName).Err()
}

// Quota checks the per-user ceiling. Callers hold the user's lock.
func (v *Validator) Quota(ctx context.Context, repo shared.ReservationRepository, userID int64) error {
	active, err := repo.CountActiveByUser(ctx, userID, v.clock.Now())
	if err != nil {
		return err
	}
	return v.policy.CheckQuota(active)
}

// Mutable rejects changes to a reservation whose stored window contains now.
func (v *Validator) Mutable(current *reservation.Reservation, resourceName string) error {
	return reservation.CheckMutable(v.clock.Now(), current.TimeSlot(), resourceName)
}
