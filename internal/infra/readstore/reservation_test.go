//go:build unit

package readstore

import (
	"context"
	"testing"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	sqlc "github.com/ilya-afanasev/avr-lab-reservation/internal/infra/sqlc/generated"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"
	"github.com/ilya-afanasev/avr-lab-reservation/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationReadQueries struct {
	mock.Mock
}

func (m *MockReservationReadQueries) GetReservationViewByID(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.GetReservationViewByIDRow, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.GetReservationViewByIDRow), args.Error(1)
}

func (m *MockReservationReadQueries) GetReservationViewByToken(ctx context.Context, db sqlc.DBTX, token string) (sqlc.GetReservationViewByTokenRow, error) {
	args := m.Called(ctx, db, token)
	return args.Get(0).(sqlc.GetReservationViewByTokenRow), args.Error(1)
}

func (m *MockReservationReadQueries) ListReservationViews(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationViewsParams) ([]sqlc.ListReservationViewsRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.ListReservationViewsRow), args.Error(1)
}

func TestReservationReadStoreFindByToken(t *testing.T) {
	b := builder.NewReservationBuilder().WithToken("abc").WithExternalID(42)

	tests := []struct {
		name      string
		mockRow   sqlc.GetReservationViewByTokenRow
		mockError error
		want      *queries.ReservationView
		wantKind  infra.RepositoryErrorKind
	}{
		{
			name:    "success",
			mockRow: sqlc.GetReservationViewByTokenRow(b.BuildViewRow()),
			want:    b.BuildReadModel(),
		},
		{
			name:      "unknown token",
			mockError: pgx.ErrNoRows,
			wantKind:  infra.KindNotFound,
		},
		{
			name:      "database error",
			mockError: assert.AnError,
			wantKind:  infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(MockReservationReadQueries)
			q.On("GetReservationViewByToken", mock.Anything, mock.Anything, "abc").Return(tt.mockRow, tt.mockError)

			got, err := NewReservationReadStore(q, nil).FindByToken(context.Background(), "abc")

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReservationView mismatch (-want +got):\n%s", diff)
			}
			q.AssertExpectations(t)
		})
	}
}

func TestReservationReadStoreListFilters(t *testing.T) {
	externalID := int64(9)
	q := new(MockReservationReadQueries)
	q.On("ListReservationViews", mock.Anything, mock.Anything, sqlc.ListReservationViewsParams{
		Email:        pgtype.Text{String: "dev@example.com", Valid: true},
		ExternalID:   pgtype.Int8{Int64: 9, Valid: true},
		ResourceName: pgtype.Text{},
	}).Return([]sqlc.ListReservationViewsRow{builder.NewReservationBuilder().BuildViewRow()}, nil)

	got, err := NewReservationReadStore(q, nil).List(context.Background(), queries.ReservationFilter{
		Email:      "dev@example.com",
		ExternalID: &externalID,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "atmega2560", got[0].ResourceName)
	q.AssertExpectations(t)
}
