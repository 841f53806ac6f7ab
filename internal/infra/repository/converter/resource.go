package converter

import (
	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/resource"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/pgconv"
)

func ResourceToCreateParams(r *resource.Resource) sqlc.CreateResourceParams {
	return sqlc.CreateResourceParams{
		ID:        r.ID(),
		Name:      r.Name(),
		Model:     pgconv.StringPtrToPgtype(r.Model()),
		Path:      pgconv.StringPtrToPgtype(r.Path()),
		TypeID:    r.TypeID(),
		Available: r.Available(),
	}
}

func ResourceToUpdateParams(r *resource.Resource) sqlc.UpdateResourceParams {
	return sqlc.UpdateResourceParams(ResourceToCreateParams(r))
}

func ResourceFromRow(row sqlc.Resources) *resource.Resource {
	return resource.ReconstructResource(
		row.ID,
		row.Name,
		pgconv.StringPtrFromPgtype(row.Model),
		pgconv.StringPtrFromPgtype(row.Path),
		row.TypeID,
		row.Available,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
