package repository

import (
	"context"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
)

type LockQueries interface {
	AcquireXactLock(ctx context.Context, db sqlc.DBTX, lockKey string) error
}

// AdvisoryLocker takes transaction-scoped advisory locks; PostgreSQL releases
// them at commit or rollback.
type AdvisoryLocker struct {
	queries LockQueries
	db      sqlc.DBTX
}

func NewAdvisoryLocker(queries LockQueries, db sqlc.DBTX) *AdvisoryLocker {
	return &AdvisoryLocker{queries: queries, db: db}
}

func (l *AdvisoryLocker) Lock(ctx context.Context, key string) error {
	if err := l.queries.AcquireXactLock(ctx, l.db, key); err != nil {
		return infra.WrapRepoErr("failed to acquire lock "+key, err)
	}
	return nil
}
