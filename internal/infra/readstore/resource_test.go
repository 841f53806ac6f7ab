//go:build unit

package readstore

import (
	"context"
	"testing"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockResourceReadQueries struct {
	mock.Mock
}

func (m *MockResourceReadQueries) ListResourceViews(ctx context.Context, db sqlc.DBTX, arg sqlc.ListResourceViewsParams) ([]sqlc.ListResourceViewsRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.ListResourceViewsRow), args.Error(1)
}

func TestResourceReadStoreList(t *testing.T) {
	available := true

	t.Run("maps filter and rows", func(t *testing.T) {
		q := new(MockResourceReadQueries)
		q.On("ListResourceViews", mock.Anything, mock.Anything, sqlc.ListResourceViewsParams{
			TypeName:  pgtype.Text{String: "mcu", Valid: true},
			Available: pgtype.Bool{Bool: true, Valid: true},
		}).Return([]sqlc.ListResourceViewsRow{{
			ID:        3,
			Name:      "uno",
			Model:     pgtype.Text{String: "uno", Valid: true},
			Path:      pgtype.Text{String: "/dev/ttyACM0", Valid: true},
			TypeName:  "mcu",
			Available: true,
		}}, nil)

		got, err := NewResourceReadStore(q, nil).List(context.Background(), queries.ResourceFilter{
			Type:      "mcu",
			Available: &available,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "mcu", got[0].Type)
		assert.Equal(t, "/dev/ttyACM0", *got[0].Path)
		q.AssertExpectations(t)
	})

	t.Run("database error", func(t *testing.T) {
		q := new(MockResourceReadQueries)
		q.On("ListResourceViews", mock.Anything, mock.Anything, mock.Anything).
			Return([]sqlc.ListResourceViewsRow(nil), assert.AnError)

		_, err := NewResourceReadStore(q, nil).List(context.Background(), queries.ResourceFilter{})
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
