package readstore

import (
	"context"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/pgconv"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"
)

type ResourceReadQueries interface {
	ListResourceViews(ctx context.Context, db sqlc.DBTX, arg sqlc.ListResourceViewsParams) ([]sqlc.ListResourceViewsRow, error)
}

type ResourceReadStore struct {
	queries ResourceReadQueries
	db      sqlc.DBTX
}

func NewResourceReadStore(queries ResourceReadQueries, db sqlc.DBTX) *ResourceReadStore {
	return &ResourceReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ResourceReadStore) List(ctx context.Context, filter queries.ResourceFilter) ([]*queries.ResourceView, error) {
	rows, err := r.queries.ListResourceViews(ctx, r.db, sqlc.ListResourceViewsParams{
		ID:        pgconv.Int64PtrToPgtype(filter.ID),
		TypeName:  pgconv.OptionalText(filter.Type),
		Name:      pgconv.OptionalText(filter.Name),
		Available: pgconv.BoolPtrToPgtype(filter.Available),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}

	result := make([]*queries.ResourceView, len(rows))
	for i, row := range rows {
		result[i] = &queries.ResourceView{
			ID:        row.ID,
			Name:      row.Name,
			Model:     pgconv.StringPtrFromPgtype(row.Model),
			Path:      pgconv.StringPtrFromPgtype(row.Path),
			Type:      row.TypeName,
			Available: row.Available,
			CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
			UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
		}
	}
	return result, nil
}
