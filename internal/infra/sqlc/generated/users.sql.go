// source: users.sql

package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `-- name: CreateUser :one
INSERT INTO users (email, external_id)
VALUES ($1, $2)
RETURNING id
`

type CreateUserParams struct {
	Email      pgtype.Text `json:"email"`
	ExternalID pgtype.Int8 `json:"external_id"`
}

func (q *Queries) CreateUser(ctx context.Context, db DBTX, arg CreateUserParams) (int64, error) {
	row := db.QueryRow(ctx, createUser, arg.Email, arg.ExternalID)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const deleteUser = `-- name: DeleteUser :execrows
DELETE FROM users
WHERE id = $1
`

func (q *Queries) DeleteUser(ctx context.Context, db DBTX, id int64) (int64, error) {
	result, err := db.Exec(ctx, deleteUser, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, email, external_id, created_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, db DBTX, id int64) (Users, error) {
	row := db.QueryRow(ctx, getUserByID, id)
	var i Users
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.ExternalID,
		&i.CreatedAt,
	)
	return i, err
}

const listUsers = `-- name: ListUsers :many
SELECT id, email, external_id, created_at
FROM users
WHERE ($1::bigint IS NULL OR id = $1)
  AND ($2::text IS NULL OR email = lower($2))
  AND ($3::bigint IS NULL OR external_id = $3)
ORDER BY id
`

type ListUsersParams struct {
	ID         pgtype.Int8 `json:"id"`
	Email      pgtype.Text `json:"email"`
	ExternalID pgtype.Int8 `json:"external_id"`
}

func (q *Queries) ListUsers(ctx context.Context, db DBTX, arg ListUsersParams) ([]Users, error) {
	rows, err := db.Query(ctx, listUsers, arg.ID, arg.Email, arg.ExternalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Users
	for rows.Next() {
		var i Users
		if err := rows.Scan(
			&i.ID,
			&i.Email,
			&i.ExternalID,
			&i.CreatedAt,
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

const updateUser = `-- name: UpdateUser :execrows
UPDATE users
SET email = $2, external_id = $3
WHERE id = $1
`

type UpdateUserParams struct {
	ID         int64       `json:"id"`
	Email      pgtype.Text `json:"email"`
	ExternalID pgtype.Int8 `json:"external_id"`
}

func (q *Queries) UpdateUser(ctx context.Context, db DBTX, arg UpdateUserParams) (int64, error) {
	result, err := db.Exec(ctx, updateUser, arg.ID, arg.Email, arg.ExternalID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const upsertUserByEmail = `-- name: UpsertUserByEmail :one
INSERT INTO users (email, external_id)
VALUES ($1, $2)
ON CONFLICT (email) DO UPDATE SET external_id = COALESCE(users.external_id, EXCLUDED.external_id)
RETURNING id, external_id
`

type UpsertUserByEmailParams struct {
	Email      pgtype.Text `json:"email"`
	ExternalID pgtype.Int8 `json:"external_id"`
}

type UpsertUserByEmailRow struct {
	ID         int64       `json:"id"`
	ExternalID pgtype.Int8 `json:"external_id"`
}

func (q *Queries) UpsertUserByEmail(ctx context.Context, db DBTX, arg UpsertUserByEmailParams) (UpsertUserByEmailRow, error) {
	row := db.QueryRow(ctx, upsertUserByEmail, arg.Email, arg.ExternalID)
	var i UpsertUserByEmailRow
	err := row.Scan(&i.ID, &i.ExternalID)
	return i, err
}

const upsertUserByExternalID = `-- name: UpsertUserByExternalID :one
INSERT INTO users (external_id)
VALUES ($1)
ON CONFLICT (external_id) DO UPDATE SET external_id = EXCLUDED.external_id
RETURNING id
`

func (q *Queries) UpsertUserByExternalID(ctx context.Context, db DBTX, externalID pgtype.Int8) (int64, error) {
	row := db.QueryRow(ctx, upsertUserByExternalID, externalID)
	var id int64
	err := row.Scan(&id)
	return id, err
}
