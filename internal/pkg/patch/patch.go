package patch

import "time"

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Window merges an optional new [start, end) over the stored one.
func Window(start, end *time.Time, currentStart, currentEnd time.Time) (time.Time, time.Time) {
	return Coalesce(start, currentStart), Coalesce(end, currentEnd)
}
