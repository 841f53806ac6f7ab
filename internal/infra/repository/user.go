package repository

import (
	"context"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/user"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type UserWriteQueries interface {
	UpsertUserByEmail(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertUserByEmailParams) (sqlc.UpsertUserByEmailRow, error)
	UpsertUserByExternalID(ctx context.Context, db sqlc.DBTX, externalID pgtype.Int8) (int64, error)
	GetUserByID(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Users, error)
	CreateUser(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateUserParams) (int64, error)
	UpdateUser(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateUserParams) (int64, error)
	DeleteUser(ctx context.Context, db sqlc.DBTX, id int64) (int64, error)
}

type UserRepository struct {
	queries UserWriteQueries
	db      sqlc.DBTX
}

func NewUserRepository(queries UserWriteQueries, db sqlc.DBTX) *UserRepository {
	return &UserRepository{
		queries: queries,
		db:      db,
	}
}

// Upsert resolves identity to a user id, creating the user on first sight.
// Email is the primary key when present; a missing external id is filled in,
// a different one is rejected.
func (r *UserRepository) Upsert(ctx context.Context, identity user.Identity) (int64, error) {
	if identity.Email() == nil {
		id, err := r.queries.UpsertUserByExternalID(ctx, r.db, pgconv.Int64PtrToPgtype(identity.ExternalID()))
		if err != nil {
			return 0, infra.WrapRepoErr("failed to upsert user", err)
		}
		return id, nil
	}

	row, err := r.queries.UpsertUserByEmail(ctx, r.db, sqlc.UpsertUserByEmailParams{
		Email:      pgconv.StringPtrToPgtype(identity.Email()),
		ExternalID: pgconv.Int64PtrToPgtype(identity.ExternalID()),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to upsert user", err)
	}
	if err := identity.MatchStored(pgconv.Int64PtrFromPgtype(row.ExternalID)); err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	row, err := r.queries.GetUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return user.ReconstructUser(row.ID, pgconv.StringPtrFromPgtype(row.Email), pgconv.Int64PtrFromPgtype(row.ExternalID)), nil
}

func (r *UserRepository) Create(ctx context.Context, identity user.Identity) (int64, error) {
	id, err := r.queries.CreateUser(ctx, r.db, sqlc.CreateUserParams{
		Email:      pgconv.StringPtrToPgtype(identity.Email()),
		ExternalID: pgconv.Int64PtrToPgtype(identity.ExternalID()),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, identity user.Identity) error {
	n, err := r.queries.UpdateUser(ctx, r.db, sqlc.UpdateUserParams{
		ID:         id,
		Email:      pgconv.StringPtrToPgtype(identity.Email()),
		ExternalID: pgconv.Int64PtrToPgtype(identity.ExternalID()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update user", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteUser(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete user", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
