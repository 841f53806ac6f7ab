package readstore

import (
	"context"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/pgconv"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"
)

type ReservationReadQueries interface {
	GetReservationViewByID(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.GetReservationViewByIDRow, error)
	GetReservationViewByToken(ctx context.Context, db sqlc.DBTX, token string) (sqlc.GetReservationViewByTokenRow, error)
	ListReservationViews(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationViewsParams) ([]sqlc.ListReservationViewsRow, error)
}

type ReservationReadStore struct {
	queries ReservationReadQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationReadQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id int64) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationViewByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return toReservationView(sqlc.ListReservationViewsRow(row)), nil
}

func (r *ReservationReadStore) FindByToken(ctx context.Context, token string) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationViewByToken(ctx, r.db, token)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by token", err)
	}
	return toReservationView(sqlc.ListReservationViewsRow(row)), nil
}

func (r *ReservationReadStore) List(ctx context.Context, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListReservationViews(ctx, r.db, sqlc.ListReservationViewsParams{
		ID:           pgconv.Int64PtrToPgtype(filter.ID),
		Email:        pgconv.OptionalText(filter.Email),
		ExternalID:   pgconv.Int64PtrToPgtype(filter.ExternalID),
		ResourceName: pgconv.OptionalText(filter.ResourceName),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	result := make([]*queries.ReservationView, len(rows))
	for i, row := range rows {
		result[i] = toReservationView(row)
	}
	return result, nil
}

func toReservationView(row sqlc.ListReservationViewsRow) *queries.ReservationView {
	return &queries.ReservationView{
		ID:             row.ID,
		ResourceID:     row.ResourceID,
		ResourceName:   row.ResourceName,
		UserID:         row.UserID,
		UserEmail:      pgconv.StringPtrFromPgtype(row.UserEmail),
		UserExternalID: pgconv.Int64PtrFromPgtype(row.UserExternalID),
		StartAt:        pgconv.TimeFromPgtype(row.StartAt),
		EndAt:          pgconv.TimeFromPgtype(row.EndAt),
		Token:          row.Token,
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:      pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
