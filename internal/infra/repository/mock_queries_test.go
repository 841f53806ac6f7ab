//go:build unit

package repository

import (
	"context"

	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/mock"
)

type MockWriteQueries struct {
	mock.Mock
}

func (m *MockWriteQueries) AcquireXactLock(ctx context.Context, db sqlc.DBTX, lockKey string) error {
	args := m.Called(ctx, db, lockKey)
	return args.Error(0)
}

func (m *MockWriteQueries) UpsertResourceType(ctx context.Context, db sqlc.DBTX, name string) (int64, error) {
	args := m.Called(ctx, db, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) GetResourceByID(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Resources, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Resources), args.Error(1)
}

func (m *MockWriteQueries) CreateResource(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateResourceParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockWriteQueries) UpdateResource(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateResourceParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) MarkResourcesUnavailableExcept(ctx context.Context, db sqlc.DBTX, keepIds []int64) (int64, error) {
	args := m.Called(ctx, db, keepIds)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) UpsertUserByEmail(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertUserByEmailParams) (sqlc.UpsertUserByEmailRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.UpsertUserByEmailRow), args.Error(1)
}

func (m *MockWriteQueries) GetUserByID(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Users, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Users), args.Error(1)
}

func (m *MockWriteQueries) CreateUser(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateUserParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) UpdateUser(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateUserParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) DeleteUser(ctx context.Context, db sqlc.DBTX, id int64) (int64, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) UpsertUserByExternalID(ctx context.Context, db sqlc.DBTX, externalID pgtype.Int8) (int64, error) {
	args := m.Called(ctx, db, externalID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) GetReservationByID(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Reservations, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Reservations), args.Error(1)
}

func (m *MockWriteQueries) CountOverlappingReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.CountOverlappingReservationsParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) CountActiveReservationsByUser(ctx context.Context, db sqlc.DBTX, arg sqlc.CountActiveReservationsByUserParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) ReservationTokenExists(ctx context.Context, db sqlc.DBTX, token string) (bool, error) {
	args := m.Called(ctx, db, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockWriteQueries) CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) UpdateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) DeleteReservation(ctx context.Context, db sqlc.DBTX, id int64) (int64, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(int64), args.Error(1)
}
