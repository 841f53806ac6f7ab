package reservation

import (
	"fmt"
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"
)

// Policy holds the ceilings a reservation request is validated against.
type Policy struct {
	MaxDuration      time.Duration
	MaxActivePerUser int
}

type ValidationResult struct {
	Violations []error
}

func (r *ValidationResult) add(err error) {
	r.Violations = append(r.Violations, err)
}

// Err joins every violation; nil when the request passed.
func (r ValidationResult) Err() error {
	return errs.Join(r.Violations...)
}

// CheckWindow applies the temporal rules to a proposed window. Each rule is
// checked on its own so a caller sees every problem at once.
func (p Policy) CheckWindow(now, start, end time.Time, resourceName string) ValidationResult {
	var res ValidationResult

	if !start.Before(end) {
		res.add(errs.Newf(errs.KindInvertedInterval,
			"Start time should be less than end. Please, check your dates.").
			With("resource", resourceName))
	}

	if !start.After(now) {
		res.add(errs.Newf(errs.KindStartNotInFuture,
			"Reservation of %s must start in the future", resourceName).
			With("resource", resourceName).
			With("start", start.UTC().Format(time.RFC3339)))
	}

	if p.MaxDuration > 0 && end.Sub(start) >= p.MaxDuration {
		res.add(errs.Newf(errs.KindDurationExceeded,
			"Reservation of %s must be shorter than %s", resourceName, formatHours(p.MaxDuration)).
			With("resource", resourceName).
			With("limit_hours", p.MaxDuration.Hours()))
	}

	return res
}

// CheckQuota enforces the per-user ceiling of reservations that have not ended yet.
func (p Policy) CheckQuota(activeCount int64) error {
	if p.MaxActivePerUser <= 0 || activeCount < int64(p.MaxActivePerUser) {
		return nil
	}
	return errs.Newf(errs.KindUserQuotaExceeded,
		"User already holds %d active reservations (limit %d)", activeCount, p.MaxActivePerUser).
		With("limit", p.MaxActivePerUser).
		With("active", activeCount)
}

// CheckMutable rejects changes to a reservation that is in progress. Deletion
// does not go through this check.
func CheckMutable(now time.Time, current TimeSlot, resourceName string) error {
	if !current.ContainsInstant(now) {
		return nil
	}
	return errs.Newf(errs.KindReservationActive,
		"Reservation of %s is in progress and can only be deleted", resourceName).
		With("resource", resourceName).
		With("end", current.End().Format(time.RFC3339))
}

func formatHours(d time.Duration) string {
	h := d.Hours()
	if h == float64(int64(h)) {
		return fmt.Sprintf("%d hours", int64(h))
	}
	return d.String()
}
