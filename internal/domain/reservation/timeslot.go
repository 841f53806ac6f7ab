package reservation

import (
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"
)

// TimeSlot is the half-open interval [start, end) a reservation holds.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, errs.Newf(errs.KindInvertedInterval,
			"start time %s should be less than end time %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeSlot{start: start.UTC(), end: end.UTC()}, nil
}

// ReconstructTimeSlot rebuilds a stored slot without re-validating it.
func ReconstructTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: start.UTC(), end: end.UTC()}
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps uses inclusive boundaries: a slot ending exactly when another begins
// conflicts with it. The store query and the exclusion constraint use the same rule.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return !ts.start.After(other.end) && !ts.end.Before(other.start)
}

// ContainsInstant reports start <= t < end.
func (ts TimeSlot) ContainsInstant(t time.Time) bool {
	return !t.Before(ts.start) && t.Before(ts.end)
}

func (ts TimeSlot) String() string {
	return ts.start.Format(time.RFC3339) + "/" + ts.end.Format(time.RFC3339)
}
