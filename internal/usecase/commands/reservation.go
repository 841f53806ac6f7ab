package commands

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/reservation"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/resource"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/user"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/patch"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/shared"
)

type CreateReservationInput struct {
	ResourceID int64
	Start      time.Time
	End        time.Time
	Email      *string
	ExternalID *int64
}

// UpdateReservationInput leaves a field unchanged when it is nil.
type UpdateReservationInput struct {
	ResourceID *int64
	Start      *time.Time
	End        *time.Time
}

type OverlapQuery struct {
	ResourceID int64
	Start      time.Time
	End        time.Time
	ExcludeID  int64
}

type ReservationResult struct {
	ID    int64
	Token string
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput) (*ReservationResult, error)
	Update(ctx context.Context, id int64, in UpdateReservationInput) (*ReservationResult, error)
	Delete(ctx context.Context, id int64) error
	CheckOverlap(ctx context.Context, q OverlapQuery) (bool, error)
}

type reservationUseCaseImpl struct {
	uow       shared.UnitOfWork
	validator *Validator
	tokens    *TokenIssuer
}

func NewReservationUseCase(uow shared.UnitOfWork, validator *Validator, tokens *TokenIssuer) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:       uow,
		validator: validator,
		tokens:    tokens,
	}
}

func (uc *reservationUseCaseImpl) Create(ctx context.Context, in CreateReservationInput) (*ReservationResult, error) {
	identity, err := user.NewIdentity(in.Email, in.ExternalID)
	if err != nil {
		return nil, err
	}

	var (
		result       ReservationResult
		resourceName string
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findResource(ctx, tx, in.ResourceID)
		if err != nil {
			return err
		}
		resourceName = res.Name()

		if err := uc.validator.Window(in.Start, in.End, resourceName); err != nil {
			return err
		}
		slot, err := reservation.NewTimeSlot(in.Start, in.End)
		if err != nil {
			return err
		}

		if err := tx.Locks().Lock(ctx, identity.LockKey()); err != nil {
			return err
		}
		userID, err := tx.Users().Upsert(ctx, identity)
		if err != nil {
			return err
		}
		if err := tx.Locks().Lock(ctx, shared.UserLockKey(userID)); err != nil {
			return err
		}
		if err := uc.validator.Quota(ctx, tx.Reservations(), userID); err != nil {
			return err
		}

		if err := tx.Locks().Lock(ctx, shared.ResourceLockKey(res.ID())); err != nil {
			return err
		}
		conflict, err := overlaps(ctx, tx.Reservations(), res.ID(), slot, 0)
		if err != nil {
			return err
		}
		if conflict {
			return alreadyReserved(resourceName, slot)
		}

		r := reservation.NewReservation(res.ID(), userID, slot)
		if err := uc.assignToken(ctx, tx, r); err != nil {
			return err
		}

		id, err := tx.Reservations().Create(ctx, r)
		if err != nil {
			return err
		}
		result = ReservationResult{ID: id, Token: r.Token()}
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, resourceName)
	}

	slog.Info("reservation created",
		"reservation_id", result.ID,
		"resource_id", in.ResourceID)
	return &result, nil
}

func (uc *reservationUseCaseImpl) Update(ctx context.Context, id int64, in UpdateReservationInput) (*ReservationResult, error) {
	var (
		result       ReservationResult
		resourceName string
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Locks().Lock(ctx, shared.ReservationLockKey(id)); err != nil {
			return err
		}
		current, err := findReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		currentRes, err := findResource(ctx, tx, current.ResourceID())
		if err != nil {
			return err
		}
		resourceName = currentRes.Name()

		if err := uc.validator.Mutable(current, resourceName); err != nil {
			return err
		}

		target := currentRes
		if in.ResourceID != nil && *in.ResourceID != current.ResourceID() {
			if target, err = findResource(ctx, tx, *in.ResourceID); err != nil {
				return err
			}
			resourceName = target.Name()
		}

		start, end := patch.Window(in.Start, in.End, current.TimeSlot().Start(), current.TimeSlot().End())
		if err := uc.validator.Window(start, end, resourceName); err != nil {
			return err
		}
		slot, err := reservation.NewTimeSlot(start, end)
		if err != nil {
			return err
		}

		for _, rid := range lockOrder(current.ResourceID(), target.ID()) {
			if err := tx.Locks().Lock(ctx, shared.ResourceLockKey(rid)); err != nil {
				return err
			}
		}
		conflict, err := overlaps(ctx, tx.Reservations(), target.ID(), slot, id)
		if err != nil {
			return err
		}
		if conflict {
			return alreadyReserved(resourceName, slot)
		}

		current.Reschedule(target.ID(), slot)
		if err := uc.assignToken(ctx, tx, current); err != nil {
			return err
		}
		if err := tx.Reservations().Update(ctx, current); err != nil {
			return err
		}
		result = ReservationResult{ID: id, Token: current.Token()}
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err, resourceName)
	}

	slog.Info("reservation updated", "reservation_id", id)
	return &result, nil
}

// Delete removes the reservation even while it is in progress.
func (uc *reservationUseCaseImpl) Delete(ctx context.Context, id int64) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := findReservation(ctx, tx, id); err != nil {
			return err
		}
		return notFound(tx.Reservations().Delete(ctx, id), "Reservation", id)
	})
	if err != nil {
		return translateStoreErr(err, "")
	}

	slog.Info("reservation deleted", "reservation_id", id)
	return nil
}

func (uc *reservationUseCaseImpl) CheckOverlap(ctx context.Context, q OverlapQuery) (bool, error) {
	slot, err := reservation.NewTimeSlot(q.Start, q.End)
	if err != nil {
		return false, err
	}

	var conflict bool
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := findResource(ctx, tx, q.ResourceID); err != nil {
			return err
		}
		conflict, err = overlaps(ctx, tx.Reservations(), q.ResourceID, slot, q.ExcludeID)
		return err
	})
	return conflict, err
}

func (uc *reservationUseCaseImpl) assignToken(ctx context.Context, tx shared.Tx, r *reservation.Reservation) error {
	token, err := uc.tokens.Issue(ctx, tx.Reservations().TokenExists, r.Descriptor())
	if err != nil {
		return err
	}
	return r.AssignToken(token)
}

func findResource(ctx context.Context, tx shared.Tx, id int64) (*resource.Resource, error) {
	res, err := tx.Resources().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Resource", id)
	}
	return res, nil
}

func findReservation(ctx context.Context, tx shared.Tx, id int64) (*reservation.Reservation, error) {
	r, err := tx.Reservations().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Reservation", id)
	}
	return r, nil
}

func notFound(err error, entity string, id int64) error {
	if err != nil && infra.IsKind(err, infra.KindNotFound) {
		return errs.Newf(errs.KindNotFound, "%s %d not found", entity, id).
			With("entity", entity).
			With("id", id)
	}
	return err
}

// translateStoreErr maps constraint violations that slipped past the
// in-transaction checks, including those raised at commit.
func translateStoreErr(err error, resourceName string) error {
	if _, ok := errs.KindOf(err); ok {
		return err
	}

	switch infra.KindOf(err) {
	case infra.KindExclusionViolation:
		return errs.Newf(errs.KindAlreadyReserved,
			"Resource %s is already reserved. Please, check your dates.", resourceName).
			With("resource", resourceName)
	case infra.KindUniqueViolation, infra.KindForeignKeyViolated, infra.KindCheckViolation:
		return errs.Newf(errs.KindPersistenceConflict, "Change conflicts with stored data").
			With("constraint", infra.ConstraintName(err))
	}
	return err
}

func lockOrder(ids ...int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
