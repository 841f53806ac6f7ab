//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by a pool, a connection and a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreateTestResource inserts a resource of the given type, creating the type when missing.
func CreateTestResource(t *testing.T, db DBLike, id int64, name, typeName string, available bool) int64 {
	t.Helper()

	ctx := context.Background()
	var typeID int64
	err := db.QueryRow(ctx, `
		INSERT INTO resource_types (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, strings.ToLower(typeName)).Scan(&typeID)
	require.NoError(t, err)

	_, err = db.Exec(ctx,
		"INSERT INTO resources (id, name, type_id, available) VALUES ($1, $2, $3, $4)",
		id, name, typeID, available)
	require.NoError(t, err)

	return id
}

func CreateTestUser(t *testing.T, db DBLike, email string) int64 {
	t.Helper()

	var userID int64
	err := db.QueryRow(context.Background(), `
		INSERT INTO users (email) VALUES ($1)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id`, email).Scan(&userID)
	require.NoError(t, err)

	return userID
}

// CreateTestReservation bypasses the window rules, so it can place reservations
// in the past or around now.
func CreateTestReservation(t *testing.T, db DBLike, resourceID, userID int64, start, end time.Time) (int64, string) {
	t.Helper()

	token := "fixture-" + uuid.NewString()
	var id int64
	err := db.QueryRow(context.Background(), `
		INSERT INTO reservations (resource_id, user_id, start_at, end_at, token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, resourceID, userID, start, end, token).Scan(&id)
	require.NoError(t, err)

	return id, token
}

func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
