// source: reservations.sql

package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countActiveReservationsByUser = `-- name: CountActiveReservationsByUser :one
SELECT count(*)
FROM reservations
WHERE user_id = $1 AND end_at > $2
`

type CountActiveReservationsByUserParams struct {
	UserID int64              `json:"user_id"`
	Now    pgtype.Timestamptz `json:"now"`
}

func (q *Queries) CountActiveReservationsByUser(ctx context.Context, db DBTX, arg CountActiveReservationsByUserParams) (int64, error) {
	row := db.QueryRow(ctx, countActiveReservationsByUser, arg.UserID, arg.Now)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countOverlappingReservations = `-- name: CountOverlappingReservations :one
SELECT count(*)
FROM reservations
WHERE resource_id = $1
  AND start_at <= $2
  AND end_at >= $3
  AND id <> $4
`

type CountOverlappingReservationsParams struct {
	ResourceID int64              `json:"resource_id"`
	EndAt      pgtype.Timestamptz `json:"end_at"`
	StartAt    pgtype.Timestamptz `json:"start_at"`
	ExcludeID  int64              `json:"exclude_id"`
}

func (q *Queries) CountOverlappingReservations(ctx context.Context, db DBTX, arg CountOverlappingReservationsParams) (int64, error) {
	row := db.QueryRow(ctx, countOverlappingReservations,
		arg.ResourceID,
		arg.EndAt,
		arg.StartAt,
		arg.ExcludeID,
	)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createReservation = `-- name: CreateReservation :one
INSERT INTO reservations (resource_id, user_id, start_at, end_at, token)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

type CreateReservationParams struct {
	ResourceID int64              `json:"resource_id"`
	UserID     int64              `json:"user_id"`
	StartAt    pgtype.Timestamptz `json:"start_at"`
	EndAt      pgtype.Timestamptz `json:"end_at"`
	Token      string             `json:"token"`
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (int64, error) {
	row := db.QueryRow(ctx, createReservation,
		arg.ResourceID,
		arg.UserID,
		arg.StartAt,
		arg.EndAt,
		arg.Token,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const deleteReservation = `-- name: DeleteReservation :execrows
DELETE FROM reservations WHERE id = $1
`

func (q *Queries) DeleteReservation(ctx context.Context, db DBTX, id int64) (int64, error) {
	result, err := db.Exec(ctx, deleteReservation, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getReservationByID = `-- name: GetReservationByID :one
SELECT id, resource_id, user_id, start_at, end_at, token, created_at, updated_at
FROM reservations
WHERE id = $1
`

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, id int64) (Reservations, error) {
	row := db.QueryRow(ctx, getReservationByID, id)
	var i Reservations
	err := row.Scan(
		&i.ID,
		&i.ResourceID,
		&i.UserID,
		&i.StartAt,
		&i.EndAt,
		&i.Token,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getReservationViewByID = `-- name: GetReservationViewByID :one
SELECT r.id, r.resource_id, res.name AS resource_name, r.user_id, u.email AS user_email,
       u.external_id AS user_external_id, r.start_at, r.end_at, r.token, r.created_at, r.updated_at
FROM reservations r
JOIN resources res ON res.id = r.resource_id
JOIN users u ON u.id = r.user_id
WHERE r.id = $1
`

type GetReservationViewByIDRow struct {
	ID             int64              `json:"id"`
	ResourceID     int64              `json:"resource_id"`
	ResourceName   string             `json:"resource_name"`
	UserID         int64              `json:"user_id"`
	UserEmail      pgtype.Text        `json:"user_email"`
	UserExternalID pgtype.Int8        `json:"user_external_id"`
	StartAt        pgtype.Timestamptz `json:"start_at"`
	EndAt          pgtype.Timestamptz `json:"end_at"`
	Token          string             `json:"token"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) GetReservationViewByID(ctx context.Context, db DBTX, id int64) (GetReservationViewByIDRow, error) {
	row := db.QueryRow(ctx, getReservationViewByID, id)
	var i GetReservationViewByIDRow
	err := row.Scan(
		&i.ID,
		&i.ResourceID,
		&i.ResourceName,
		&i.UserID,
		&i.UserEmail,
		&i.UserExternalID,
		&i.StartAt,
		&i.EndAt,
		&i.Token,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getReservationViewByToken = `-- name: GetReservationViewByToken :one
SELECT r.id, r.resource_id, res.name AS resource_name, r.user_id, u.email AS user_email,
       u.external_id AS user_external_id, r.start_at, r.end_at, r.token, r.created_at, r.updated_at
FROM reservations r
JOIN resources res ON res.id = r.resource_id
JOIN users u ON u.id = r.user_id
WHERE r.token = $1
`

type GetReservationViewByTokenRow struct {
	ID             int64              `json:"id"`
	ResourceID     int64              `json:"resource_id"`
	ResourceName   string             `json:"resource_name"`
	UserID         int64              `json:"user_id"`
	UserEmail      pgtype.Text        `json:"user_email"`
	UserExternalID pgtype.Int8        `json:"user_external_id"`
	StartAt        pgtype.Timestamptz `json:"start_at"`
	EndAt          pgtype.Timestamptz `json:"end_at"`
	Token          string             `json:"token"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) GetReservationViewByToken(ctx context.Context, db DBTX, token string) (GetReservationViewByTokenRow, error) {
	row := db.QueryRow(ctx, getReservationViewByToken, token)
	var i GetReservationViewByTokenRow
	err := row.Scan(
		&i.ID,
		&i.ResourceID,
		&i.ResourceName,
		&i.UserID,
		&i.UserEmail,
		&i.UserExternalID,
		&i.StartAt,
		&i.EndAt,
		&i.Token,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listReservationViews = `-- name: ListReservationViews :many
SELECT r.id, r.resource_id, res.name AS resource_name, r.user_id, u.email AS user_email,
       u.external_id AS user_external_id, r.start_at, r.end_at, r.token, r.created_at, r.updated_at
FROM reservations r
JOIN resources res ON res.id = r.resource_id
JOIN users u ON u.id = r.user_id
WHERE ($1::bigint IS NULL OR r.id = $1)
  AND ($2::text IS NULL OR u.email = lower($2))
  AND ($3::bigint IS NULL OR u.external_id = $3)
  AND ($4::text IS NULL OR res.name = $4)
ORDER BY r.start_at, r.id
`

type ListReservationViewsParams struct {
	ID           pgtype.Int8 `json:"id"`
	Email        pgtype.Text `json:"email"`
	ExternalID   pgtype.Int8 `json:"external_id"`
	ResourceName pgtype.Text `json:"resource_name"`
}

type ListReservationViewsRow struct {
	ID             int64              `json:"id"`
	ResourceID     int64              `json:"resource_id"`
	ResourceName   string             `json:"resource_name"`
	UserID         int64              `json:"user_id"`
	UserEmail      pgtype.Text        `json:"user_email"`
	UserExternalID pgtype.Int8        `json:"user_external_id"`
	StartAt        pgtype.Timestamptz `json:"start_at"`
	EndAt          pgtype.Timestamptz `json:"end_at"`
	Token          string             `json:"token"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) ListReservationViews(ctx context.Context, db DBTX, arg ListReservationViewsParams) ([]ListReservationViewsRow, error) {
	rows, err := db.Query(ctx, listReservationViews,
		arg.ID,
		arg.Email,
		arg.ExternalID,
		arg.ResourceName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListReservationViewsRow{}
	for rows.Next() {
		var i ListReservationViewsRow
		if err := rows.Scan(
			&i.ID,
			&i.ResourceID,
			&i.ResourceName,
			&i.UserID,
			&i.UserEmail,
			&i.UserExternalID,
			&i.StartAt,
			&i.EndAt,
			&i.Token,
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

const reservationTokenExists = `-- name: ReservationTokenExists :one
SELECT EXISTS (SELECT 1 FROM reservations WHERE token = $1)
`

func (q *Queries) ReservationTokenExists(ctx context.Context, db DBTX, token string) (bool, error) {
	row := db.QueryRow(ctx, reservationTokenExists, token)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const updateReservation = `-- name: UpdateReservation :execrows
UPDATE reservations
SET resource_id = $2, start_at = $3, end_at = $4, token = $5, updated_at = now()
WHERE id = $1
`

type UpdateReservationParams struct {
	ID         int64              `json:"id"`
	ResourceID int64              `json:"resource_id"`
	StartAt    pgtype.Timestamptz `json:"start_at"`
	EndAt      pgtype.Timestamptz `json:"end_at"`
	Token      string             `json:"token"`
}

func (q *Queries) UpdateReservation(ctx context.Context, db DBTX, arg UpdateReservationParams) (int64, error) {
	result, err := db.Exec(ctx, updateReservation,
		arg.ID,
		arg.ResourceID,
		arg.StartAt,
		arg.EndAt,
		arg.Token,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
