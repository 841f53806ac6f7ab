package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Kind string

const (
	KindConfigUnreadable        Kind = "CONFIG_UNREADABLE"
	KindUnsupportedResourceType Kind = "UNSUPPORTED_RESOURCE_TYPE"
	KindInvalidInventoryEntry   Kind = "INVALID_INVENTORY_ENTRY"
	KindInvalidIdentity         Kind = "INVALID_IDENTITY"
	KindInvertedInterval        Kind = "INVERTED_INTERVAL"
	KindStartNotInFuture        Kind = "START_NOT_IN_FUTURE"
	KindDurationExceeded        Kind = "DURATION_EXCEEDED"
	KindUserQuotaExceeded       Kind = "USER_QUOTA_EXCEEDED"
	KindReservationActive       Kind = "RESERVATION_ACTIVE"
	KindAlreadyReserved         Kind = "ALREADY_RESERVED"
	KindTokenCollision          Kind = "TOKEN_COLLISION"
	KindInvalidToken            Kind = "INVALID_TOKEN"
	KindNotFound                Kind = "NOT_FOUND"
	KindPersistenceConflict     Kind = "PERSISTENCE_CONFLICT"
)

// Error is a caller-facing failure of the reservation core. Detail carries the
// context a caller needs to build a message (resource name, limit, ...).
type Error struct {
	Kind    Kind
	Message string
	Detail  map[string]any
}

func (e *Error) Error() string {
	if e.Message == "" {
		return strings.ToLower(strings.ReplaceAll(string(e.Kind), "_", " "))
	}
	return e.Message
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func (e *Error) With(key string, value any) *Error {
	detail := make(map[string]any, len(e.Detail)+1)
	for k, v := range e.Detail {
		detail[k] = v
	}
	detail[key] = value
	return &Error{Kind: e.Kind, Message: e.Message, Detail: detail}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrConfigUnreadable        = &Error{Kind: KindConfigUnreadable}
	ErrUnsupportedResourceType = &Error{Kind: KindUnsupportedResourceType}
	ErrInvalidInventoryEntry   = &Error{Kind: KindInvalidInventoryEntry}
	ErrInvalidIdentity         = &Error{Kind: KindInvalidIdentity}
	ErrInvertedInterval        = &Error{Kind: KindInvertedInterval}
	ErrStartNotInFuture        = &Error{Kind: KindStartNotInFuture}
	ErrDurationExceeded        = &Error{Kind: KindDurationExceeded}
	ErrUserQuotaExceeded       = &Error{Kind: KindUserQuotaExceeded}
	ErrReservationActive       = &Error{Kind: KindReservationActive}
	ErrAlreadyReserved         = &Error{Kind: KindAlreadyReserved}
	ErrTokenCollision          = &Error{Kind: KindTokenCollision}
	ErrInvalidToken            = &Error{Kind: KindInvalidToken}
	ErrNotFound                = &Error{Kind: KindNotFound}
	ErrPersistenceConflict     = &Error{Kind: KindPersistenceConflict}
)

// KindOf returns the kind of the first *Error found in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Details collects every *Error reachable from err, including joined ones.
func Details(err error) []*Error {
	var out []*Error
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if e, ok := err.(*Error); ok {
			out = append(out, e)
			return
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}

// Join keeps every violation reachable through errors.Is and Details.
func Join(violations ...error) error {
	switch len(violations) {
	case 0:
		return nil
	case 1:
		return violations[0]
	}
	return errors.Join(violations...)
}

func SortedKinds(err error) []Kind {
	details := Details(err)
	kinds := make([]Kind, 0, len(details))
	for _, d := range details {
		kinds = append(kinds, d.Kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
