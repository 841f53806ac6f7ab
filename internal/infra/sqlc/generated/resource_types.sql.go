// source: resource_types.sql

package sqlc

import (
	"context"
)

const upsertResourceType = `-- name: UpsertResourceType :one
INSERT INTO resource_types (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`

func (q *Queries) UpsertResourceType(ctx context.Context, db DBTX, name string) (int64, error) {
	row := db.QueryRow(ctx, upsertResourceType, name)
	var id int64
	err := row.Scan(&id)
	return id, err
}
