//go:build unit

package repository

import (
	"context"
	"testing"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/user"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryUpsert(t *testing.T) {
	email := "dev@example.com"
	externalID := int64(77)

	t.Run("by email carries external id", func(t *testing.T) {
		identity, err := user.NewIdentity(&email, &externalID)
		require.NoError(t, err)

		q := new(MockWriteQueries)
		q.On("UpsertUserByEmail", mock.Anything, mock.Anything, sqlc.UpsertUserByEmailParams{
			Email:      pgtype.Text{String: email, Valid: true},
			ExternalID: pgtype.Int8{Int64: externalID, Valid: true},
		}).Return(sqlc.UpsertUserByEmailRow{ID: 4, ExternalID: pgtype.Int8{Int64: externalID, Valid: true}}, nil)

		id, err := NewUserRepository(q, nil).Upsert(context.Background(), identity)
		require.NoError(t, err)
		assert.Equal(t, int64(4), id)
		q.AssertExpectations(t)
	})

	t.Run("email already bound to another external id", func(t *testing.T) {
		identity, err := user.NewIdentity(&email, &externalID)
		require.NoError(t, err)

		q := new(MockWriteQueries)
		q.On("UpsertUserByEmail", mock.Anything, mock.Anything, mock.Anything).
			Return(sqlc.UpsertUserByEmailRow{ID: 4, ExternalID: pgtype.Int8{Int64: 12, Valid: true}}, nil)

		_, err = NewUserRepository(q, nil).Upsert(context.Background(), identity)
		require.ErrorIs(t, err, errs.ErrInvalidIdentity)
	})

	t.Run("email only keeps the stored external id", func(t *testing.T) {
		identity, err := user.NewIdentity(&email, nil)
		require.NoError(t, err)

		q := new(MockWriteQueries)
		q.On("UpsertUserByEmail", mock.Anything, mock.Anything, mock.Anything).
			Return(sqlc.UpsertUserByEmailRow{ID: 4, ExternalID: pgtype.Int8{Int64: 12, Valid: true}}, nil)

		id, err := NewUserRepository(q, nil).Upsert(context.Background(), identity)
		require.NoError(t, err)
		assert.Equal(t, int64(4), id)
	})

	t.Run("by external id only", func(t *testing.T) {
		identity, err := user.NewIdentity(nil, &externalID)
		require.NoError(t, err)

		q := new(MockWriteQueries)
		q.On("UpsertUserByExternalID", mock.Anything, mock.Anything, pgtype.Int8{Int64: externalID, Valid: true}).
			Return(int64(5), nil)

		id, err := NewUserRepository(q, nil).Upsert(context.Background(), identity)
		require.NoError(t, err)
		assert.Equal(t, int64(5), id)
		q.AssertNotCalled(t, "UpsertUserByEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("external id owned by another user", func(t *testing.T) {
		identity, err := user.NewIdentity(&email, &externalID)
		require.NoError(t, err)

		q := new(MockWriteQueries)
		q.On("UpsertUserByEmail", mock.Anything, mock.Anything, mock.Anything).
			Return(sqlc.UpsertUserByEmailRow{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_external_id_key"})

		_, err = NewUserRepository(q, nil).Upsert(context.Background(), identity)
		assert.True(t, infra.IsKind(err, infra.KindUniqueViolation))
	})
}

func TestUserRepositoryWrites(t *testing.T) {
	email := "dev@example.com"
	identity, err := user.NewIdentity(&email, nil)
	require.NoError(t, err)

	t.Run("find by id", func(t *testing.T) {
		q := new(MockWriteQueries)
		q.On("GetUserByID", mock.Anything, mock.Anything, int64(3)).
			Return(sqlc.Users{ID: 3, Email: pgtype.Text{String: email, Valid: true}}, nil)

		u, err := NewUserRepository(q, nil).FindByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), u.ID())
		assert.Equal(t, email, *u.Email())
		assert.Nil(t, u.ExternalID())
	})

	t.Run("find missing user", func(t *testing.T) {
		q := new(MockWriteQueries)
		q.On("GetUserByID", mock.Anything, mock.Anything, int64(3)).Return(sqlc.Users{}, pgx.ErrNoRows)

		_, err := NewUserRepository(q, nil).FindByID(context.Background(), 3)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("create with taken email", func(t *testing.T) {
		q := new(MockWriteQueries)
		q.On("CreateUser", mock.Anything, mock.Anything, sqlc.CreateUserParams{
			Email: pgtype.Text{String: email, Valid: true},
		}).Return(int64(0), &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		_, err := NewUserRepository(q, nil).Create(context.Background(), identity)
		assert.True(t, infra.IsKind(err, infra.KindUniqueViolation))
	})

	t.Run("update missing user", func(t *testing.T) {
		q := new(MockWriteQueries)
		q.On("UpdateUser", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)

		err := NewUserRepository(q, nil).Update(context.Background(), 9, identity)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("delete", func(t *testing.T) {
		q := new(MockWriteQueries)
		q.On("DeleteUser", mock.Anything, mock.Anything, int64(9)).Return(int64(1), nil)

		require.NoError(t, NewUserRepository(q, nil).Delete(context.Background(), 9))
		q.AssertExpectations(t)
	})
}
