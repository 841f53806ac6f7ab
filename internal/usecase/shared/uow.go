package shared

import (
	"context"
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/reservation"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/resource"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/user"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Locks() Locker
	ResourceTypes() ResourceTypeRepository
	Resources() ResourceRepository
	Users() UserRepository
	Reservations() ReservationRepository
}

// Locker takes a lock held until the surrounding transaction ends.
type Locker interface {
	Lock(ctx context.Context, key string) error
}

type ResourceTypeRepository interface {
	// Upsert returns the id of the named type, creating it when missing.
	Upsert(ctx context.Context, name string) (int64, error)
}

type ResourceRepository interface {
	FindByID(ctx context.Context, id int64) (*resource.Resource, error)
	Create(ctx context.Context, r *resource.Resource) error
	Update(ctx context.Context, r *resource.Resource) error
	// MarkUnavailableExcept flips every available resource outside keep and
	// reports how many changed.
	MarkUnavailableExcept(ctx context.Context, keep []int64) (int64, error)
}

type UserRepository interface {
	// Upsert resolves identity to a user id, creating the user on first sight.
	Upsert(ctx context.Context, identity user.Identity) (int64, error)
	FindByID(ctx context.Context, id int64) (*user.User, error)
	Create(ctx context.Context, identity user.Identity) (int64, error)
	Update(ctx context.Context, id int64, identity user.Identity) error
	// Delete removes the user together with its reservations.
	Delete(ctx context.Context, id int64) error
}

type ReservationRepository interface {
	FindByID(ctx context.Context, id int64) (*reservation.Reservation, error)
	// CountOverlapping counts reservations on resourceID overlapping slot
	// under the inclusive predicate, ignoring excludeID (0 excludes nothing).
	CountOverlapping(ctx context.Context, resourceID int64, slot reservation.TimeSlot, excludeID int64) (int64, error)
	CountActiveByUser(ctx context.Context, userID int64, now time.Time) (int64, error)
	TokenExists(ctx context.Context, token string) (bool, error)
	Create(ctx context.Context, r *reservation.Reservation) (int64, error)
	Update(ctx context.Context, r *reservation.Reservation) error
	Delete(ctx context.Context, id int64) error
}
