package repository

import (
	"context"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
)

type ResourceTypeWriteQueries interface {
	UpsertResourceType(ctx context.Context, db sqlc.DBTX, name string) (int64, error)
}

type ResourceTypeRepository struct {
	queries ResourceTypeWriteQueries
	db      sqlc.DBTX
}

func NewResourceTypeRepository(queries ResourceTypeWriteQueries, db sqlc.DBTX) *ResourceTypeRepository {
	return &ResourceTypeRepository{queries: queries, db: db}
}

func (r *ResourceTypeRepository) Upsert(ctx context.Context, name string) (int64, error) {
	id, err := r.queries.UpsertResourceType(ctx, r.db, name)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to upsert resource type", err)
	}
	return id, nil
}
