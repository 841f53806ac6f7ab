// source: resources.sql

package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createResource = `-- name: CreateResource :exec
INSERT INTO resources (id, name, model, path, type_id, available)
VALUES ($1, $2, $3, $4, $5, $6)
`

type CreateResourceParams struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Model     pgtype.Text `json:"model"`
	Path      pgtype.Text `json:"path"`
	TypeID    int64       `json:"type_id"`
	Available bool        `json:"available"`
}

func (q *Queries) CreateResource(ctx context.Context, db DBTX, arg CreateResourceParams) error {
	_, err := db.Exec(ctx, createResource,
		arg.ID,
		arg.Name,
		arg.Model,
		arg.Path,
		arg.TypeID,
		arg.Available,
	)
	return err
}

const getResourceByID = `-- name: GetResourceByID :one
SELECT id, name, model, path, type_id, available, created_at, updated_at
FROM resources
WHERE id = $1
`

func (q *Queries) GetResourceByID(ctx context.Context, db DBTX, id int64) (Resources, error) {
	row := db.QueryRow(ctx, getResourceByID, id)
	var i Resources
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Model,
		&i.Path,
		&i.TypeID,
		&i.Available,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listResourceViews = `-- name: ListResourceViews :many
SELECT r.id, r.name, r.model, r.path, t.name AS type_name, r.available, r.created_at, r.updated_at
FROM resources r
JOIN resource_types t ON t.id = r.type_id
WHERE ($1::bigint IS NULL OR r.id = $1)
  AND ($2::text IS NULL OR t.name = lower($2))
  AND ($3::text IS NULL OR r.name = $3)
  AND ($4::boolean IS NULL OR r.available = $4)
ORDER BY r.id
`

type ListResourceViewsParams struct {
	ID        pgtype.Int8 `json:"id"`
	TypeName  pgtype.Text `json:"type_name"`
	Name      pgtype.Text `json:"name"`
	Available pgtype.Bool `json:"available"`
}

type ListResourceViewsRow struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Model     pgtype.Text        `json:"model"`
	Path      pgtype.Text        `json:"path"`
	TypeName  string             `json:"type_name"`
	Available bool               `json:"available"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) ListResourceViews(ctx context.Context, db DBTX, arg ListResourceViewsParams) ([]ListResourceViewsRow, error) {
	rows, err := db.Query(ctx, listResourceViews,
		arg.ID,
		arg.TypeName,
		arg.Name,
		arg.Available,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListResourceViewsRow{}
	for rows.Next() {
		var i ListResourceViewsRow
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Model,
			&i.Path,
			&i.TypeName,
			&i.Available,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markResourcesUnavailableExcept = `-- name: MarkResourcesUnavailableExcept :execrows
UPDATE resources
SET available = FALSE, updated_at = now()
WHERE available AND NOT (id = ANY($1::bigint[]))
`

func (q *Queries) MarkResourcesUnavailableExcept(ctx context.Context, db DBTX, keepIds []int64) (int64, error) {
	result, err := db.Exec(ctx, markResourcesUnavailableExcept, keepIds)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateResource = `-- name: UpdateResource :execrows
UPDATE resources
SET name = $2, model = $3, path = $4, type_id = $5, available = $6, updated_at = now()
WHERE id = $1
`

type UpdateResourceParams struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Model     pgtype.Text `json:"model"`
	Path      pgtype.Text `json:"path"`
	TypeID    int64       `json:"type_id"`
	Available bool        `json:"available"`
}

func (q *Queries) UpdateResource(ctx context.Context, db DBTX, arg UpdateResourceParams) (int64, error) {
	result, err := db.Exec(ctx, updateResource,
		arg.ID,
		arg.Name,
		arg.Model,
		arg.Path,
		arg.TypeID,
		arg.Available,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
