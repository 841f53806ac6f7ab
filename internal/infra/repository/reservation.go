package repository

import (
	"context"
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/reservation"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra/repository/converter"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/pgconv"
)

type ReservationWriteQueries interface {
	GetReservationByID(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Reservations, error)
	CountOverlappingReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.CountOverlappingReservationsParams) (int64, error)
	CountActiveReservationsByUser(ctx context.Context, db sqlc.DBTX, arg sqlc.CountActiveReservationsByUserParams) (int64, error)
	ReservationTokenExists(ctx context.Context, db sqlc.DBTX, token string) (bool, error)
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) (int64, error)
	UpdateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationParams) (int64, error)
	DeleteReservation(ctx context.Context, db sqlc.DBTX, id int64) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      sqlc.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db sqlc.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationRepository) FindByID(ctx context.Context, id int64) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return converter.ReservationFromRow(row), nil
}

func (r *ReservationRepository) CountOverlapping(ctx context.Context, resourceID int64, slot reservation.TimeSlot, excludeID int64) (int64, error) {
	n, err := r.queries.CountOverlappingReservations(ctx, r.db, sqlc.CountOverlappingReservationsParams{
		ResourceID: resourceID,
		EndAt:      pgconv.TimeToPgtype(slot.End()),
		StartAt:    pgconv.TimeToPgtype(slot.Start()),
		ExcludeID:  excludeID,
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping reservations", err)
	}
	return n, nil
}

func (r *ReservationRepository) CountActiveByUser(ctx context.Context, userID int64, now time.Time) (int64, error) {
	n, err := r.queries.CountActiveReservationsByUser(ctx, r.db, sqlc.CountActiveReservationsByUserParams{
		UserID: userID,
		Now:    pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active reservations", err)
	}
	return n, nil
}

func (r *ReservationRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	exists, err := r.queries.ReservationTokenExists(ctx, r.db, token)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check reservation token", err)
	}
	return exists, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (int64, error) {
	id, err := r.queries.CreateReservation(ctx, r.db, converter.ReservationToCreateParams(res))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	n, err := r.queries.UpdateReservation(ctx, r.db, converter.ReservationToUpdateParams(res))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteReservation(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}
