package repository

import (
	"context"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/resource"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra/repository/converter"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/pgconv"
)

type ResourceWriteQueries interface {
	GetResourceByID(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Resources, error)
	CreateResource(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateResourceParams) error
	UpdateResource(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateResourceParams) (int64, error)
	MarkResourcesUnavailableExcept(ctx context.Context, db sqlc.DBTX, keepIds []int64) (int64, error)
}

type ResourceRepository struct {
	queries ResourceWriteQueries
	db      sqlc.DBTX
}

func NewResourceRepository(queries ResourceWriteQueries, db sqlc.DBTX) *ResourceRepository {
	return &ResourceRepository{queries: queries, db: db}
}

func (r *ResourceRepository) FindByID(ctx context.Context, id int64) (*resource.Resource, error) {
	row, err := r.queries.GetResourceByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}
	return converter.ResourceFromRow(row), nil
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	if err := r.queries.CreateResource(ctx, r.db, converter.ResourceToCreateParams(res)); err != nil {
		return infra.WrapRepoErr("failed to create resource", err)
	}
	return nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *resource.Resource) error {
	n, err := r.queries.UpdateResource(ctx, r.db, converter.ResourceToUpdateParams(res))
	if err != nil {
		return infra.WrapRepoErr("failed to update resource", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ResourceRepository) MarkUnavailableExcept(ctx context.Context, keep []int64) (int64, error) {
	if keep == nil {
		keep = []int64{}
	}
	n, err := r.queries.MarkResourcesUnavailableExcept(ctx, r.db, keep)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark resources unavailable", err)
	}
	return n, nil
}
