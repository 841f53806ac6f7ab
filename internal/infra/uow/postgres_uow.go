package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra/repository"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/shared"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
	q    *sqlc.Queries
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) shared.UnitOfWork {
	return &PostgresUoW{
		pool: pool,
		q:    q,
	}
}

// Within runs fn in a READ COMMITTED transaction. Writers serialize through
// advisory locks taken by fn; serialization failures and deadlocks are retried.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3

	err := retry.Do(
		func() error {
			return u.runOnce(ctx, options, fn)
		},
		retry.Context(ctx),
		retry.Attempts(maxRetries+1),
		retry.Delay(100*time.Millisecond),
		retry.MaxJitter(20*time.Millisecond),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.RetryIf(isRetryableError),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("retrying transaction due to retryable error",
				"attempt", n+1,
				"error", err.Error())
		}),
	)
	if err != nil && isRetryableError(err) {
		slog.Error("transaction failed after max retries",
			"attempts", maxRetries+1,
			"error", err.Error())
		return errs.Mark(err, errMaxRetriesExceeded)
	}
	return err
}

// runOnce owns a single transaction attempt so its rollback never outlives it.
func (u *PostgresUoW) runOnce(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "error", rollbackErr.Error())
		}
	}()

	tx := &pgTx{
		dbtx: pgxTx,
		q:    u.q,
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	q    *sqlc.Queries

	// Lazy-initialized repositories
	locker          shared.Locker
	resourceTypes   shared.ResourceTypeRepository
	resources       shared.ResourceRepository
	users           shared.UserRepository
	reservationRepo shared.ReservationRepository
}

func (t *pgTx) Locks() shared.Locker {
	if t.locker == nil {
		t.locker = repository.NewAdvisoryLocker(t.q, t.dbtx)
	}
	return t.locker
}

func (t *pgTx) ResourceTypes() shared.ResourceTypeRepository {
	if t.resourceTypes == nil {
		t.resourceTypes = repository.NewResourceTypeRepository(t.q, t.dbtx)
	}
	return t.resourceTypes
}

func (t *pgTx) Resources() shared.ResourceRepository {
	if t.resources == nil {
		t.resources = repository.NewResourceRepository(t.q, t.dbtx)
	}
	return t.resources
}

func (t *pgTx) Users() shared.UserRepository {
	if t.users == nil {
		t.users = repository.NewUserRepository(t.q, t.dbtx)
	}
	return t.users
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.q, t.dbtx)
	}
	return t.reservationRepo
}
