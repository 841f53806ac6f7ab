package readstore

import (
	"context"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/pgconv"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"
)

type UserReadQueries interface {
	GetUserByID(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Users, error)
	ListUsers(ctx context.Context, db sqlc.DBTX, arg sqlc.ListUsersParams) ([]sqlc.Users, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      sqlc.DBTX
}

func NewUserReadStore(queries UserReadQueries, db sqlc.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id int64) (*queries.UserView, error) {
	row, err := r.queries.GetUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return toUserView(row), nil
}

func (r *UserReadStore) List(ctx context.Context, filter queries.UserFilter) ([]*queries.UserView, error) {
	rows, err := r.queries.ListUsers(ctx, r.db, sqlc.ListUsersParams{
		ID:         pgconv.Int64PtrToPgtype(filter.ID),
		Email:      pgconv.OptionalText(filter.Email),
		ExternalID: pgconv.Int64PtrToPgtype(filter.ExternalID),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}

	result := make([]*queries.UserView, len(rows))
	for i, row := range rows {
		result[i] = toUserView(row)
	}
	return result, nil
}

func toUserView(row sqlc.Users) *queries.UserView {
	return &queries.UserView{
		ID:         row.ID,
		Email:      pgconv.StringPtrFromPgtype(row.Email),
		ExternalID: pgconv.Int64PtrFromPgtype(row.ExternalID),
		CreatedAt:  pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
