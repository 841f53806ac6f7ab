//go:build unit

package commands_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/resource"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/clock"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/config"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/ptr"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/token"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"
	"github.com/ilya-afanasev/avr-lab-reservation/tests/common/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseNow = time.Date(2030, 1, 15, 8, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2030, 1, 15, hour, minute, 0, 0, time.UTC)
}

type fixture struct {
	store *memstore.Store
	clock *clock.MockClock
	uc    commands.ReservationCommands
}

type fixtureOption func(*config.Config)

func withQuota(n int) fixtureOption {
	return func(c *config.Config) { c.Reservation.MaxActivePerUser = n }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()
	return newFixtureWithSigner(t, nil, opts...)
}

func newFixtureWithSigner(t *testing.T, signer commands.Signer, opts ...fixtureOption) *fixture {
	t.Helper()

	cfg := config.NewTestConfig()
	cfg.Reservation.MaxActivePerUser = 0
	for _, opt := range opts {
		opt(&cfg)
	}
	if signer == nil {
		s, err := token.NewSigner(cfg.Token.Secret)
		require.NoError(t, err)
		signer = s
	}

	clk := clock.NewMockClock(baseNow)
	store := memstore.New().WithClock(clk.Now)
	store.SeedResource(resource.FromEntry(resource.InventoryEntry{
		ID: 1, Type: resource.TypeMCU, Model: "atmega2560", Path: "/dev/ttyUSB0",
	}, 0), resource.TypeMCU)
	store.SeedResource(resource.FromEntry(resource.InventoryEntry{
		ID: 2, Type: resource.TypeSimulator,
	}, 0), resource.TypeSimulator)

	uc := commands.NewReservationUseCase(
		store,
		commands.NewValidator(cfg.Reservation, clk),
		commands.NewTokenIssuer(signer, cfg.Token),
	)
	return &fixture{store: store, clock: clk, uc: uc}
}

func (f *fixture) create(resourceID int64, email string, start, end time.Time) (*commands.ReservationResult, error) {
	return f.uc.Create(context.Background(), commands.CreateReservationInput{
		ResourceID: resourceID,
		Start:      start,
		End:        end,
		Email:      ptr.To(email),
	})
}

func requireKind(t *testing.T, err error, want errs.Kind) {
	t.Helper()
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok, "error %v carries no kind", err)
	assert.Equal(t, want, kind)
}

func TestReservationCreate_BoundaryScenario(t *testing.T) {
	f := newFixture(t)

	first, err := f.create(1, "a@example.com", at(10, 0), at(11, 0))
	require.NoError(t, err)
	assert.NotEmpty(t, first.Token)

	_, err = f.create(1, "b@example.com", at(10, 30), at(11, 30))
	requireKind(t, err, errs.KindAlreadyReserved)
	assert.Equal(t, "Resource atmega2560 is already reserved. Please, check your dates.", err.Error())

	_, err = f.create(1, "b@example.com", at(11, 0), at(12, 0))
	requireKind(t, err, errs.KindAlreadyReserved)

	_, err = f.create(1, "b@example.com", at(11, 1), at(12, 0))
	require.NoError(t, err)

	_, err = f.create(2, "b@example.com", at(10, 0), at(11, 0))
	require.NoError(t, err, "other resources are unaffected")

	assert.Len(t, f.store.Reservations(), 3)
}

func TestReservationCreate_Validation(t *testing.T) {
	f := newFixture(t)

	t.Run("every window violation is reported", func(t *testing.T) {
		_, err := f.create(1, "a@example.com", baseNow.Add(-time.Hour), baseNow.Add(-2*time.Hour))

		require.Error(t, err)
		assert.Equal(t, []errs.Kind{errs.KindInvertedInterval, errs.KindStartNotInFuture}, errs.SortedKinds(err))
	})

	t.Run("duration ceiling carries the limit", func(t *testing.T) {
		_, err := f.create(1, "a@example.com", at(10, 0), at(18, 0))

		requireKind(t, err, errs.KindDurationExceeded)
		details := errs.Details(err)
		require.Len(t, details, 1)
		assert.Equal(t, 8.0, details[0].Detail["limit_hours"])
		assert.Equal(t, "atmega2560", details[0].Detail["resource"])
	})

	t.Run("start equal to now is not in the future", func(t *testing.T) {
		_, err := f.create(1, "a@example.com", baseNow, baseNow.Add(time.Hour))

		requireKind(t, err, errs.KindStartNotInFuture)
	})

	t.Run("identity is required", func(t *testing.T) {
		_, err := f.uc.Create(context.Background(), commands.CreateReservationInput{
			ResourceID: 1, Start: at(10, 0), End: at(11, 0),
		})

		requireKind(t, err, errs.KindInvalidIdentity)
	})

	t.Run("unknown resource", func(t *testing.T) {
		_, err := f.create(99, "a@example.com", at(10, 0), at(11, 0))

		requireKind(t, err, errs.KindNotFound)
	})

	assert.Empty(t, f.store.Reservations())
	assert.Zero(t, f.store.UserCount(), "rejected requests leave no user behind")
}

func TestReservationCreate_ExternalIdentity(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), commands.CreateReservationInput{
		ResourceID: 2, Start: at(10, 0), End: at(11, 0), ExternalID: ptr.To(int64(4242)),
	})
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), commands.CreateReservationInput{
		ResourceID: 2, Start: at(12, 0), End: at(13, 0), ExternalID: ptr.To(int64(4242)),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.store.UserCount())
	assert.Contains(t, f.store.Locks(), "user:external:4242")
}

func TestReservationCreate_EmailBoundToOtherExternalID(t *testing.T) {
	f := newFixture(t)
	f.store.SeedUser(ptr.To("a@example.com"), ptr.To(int64(5)))

	_, err := f.uc.Create(context.Background(), commands.CreateReservationInput{
		ResourceID: 2, Start: at(10, 0), End: at(11, 0),
		Email: ptr.To("a@example.com"), ExternalID: ptr.To(int64(6)),
	})

	requireKind(t, err, errs.KindInvalidIdentity)
	assert.Empty(t, f.store.Reservations())
	assert.Equal(t, 1, f.store.UserCount())
}

func TestReservationCreate_QuotaAcrossIdentityForms(t *testing.T) {
	f := newFixture(t, withQuota(1))

	_, err := f.uc.Create(context.Background(), commands.CreateReservationInput{
		ResourceID: 2, Start: at(10, 0), End: at(11, 0),
		Email: ptr.To("a@example.com"), ExternalID: ptr.To(int64(5)),
	})
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), commands.CreateReservationInput{
		ResourceID: 1, Start: at(12, 0), End: at(13, 0), ExternalID: ptr.To(int64(5)),
	})

	requireKind(t, err, errs.KindUserQuotaExceeded)
	assert.Equal(t, 1, f.store.UserCount())
	assert.Len(t, f.store.Reservations(), 1)

	// both identity forms serialize on the same user key before the quota read
	assert.Equal(t, []string{
		"user:email:a@example.com", "user:1", "resource:2",
		"user:external:5", "user:1",
	}, f.store.Locks())
}

func TestReservationCreate_QuotaUnderConcurrency(t *testing.T) {
	f := newFixture(t, withQuota(2))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []error
	)
	for i := range 3 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start := at(9+2*i, 0)
			_, err := f.create(2, "busy@example.com", start, start.Add(time.Hour))
			mu.Lock()
			results = append(results, err)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	var ok, exceeded int
	for _, err := range results {
		switch kind, _ := errs.KindOf(err); {
		case err == nil:
			ok++
		case kind == errs.KindUserQuotaExceeded:
			exceeded++
			assert.Equal(t, 2, errs.Details(err)[0].Detail["limit"])
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, exceeded)
	assert.Len(t, f.store.Reservations(), 2)
}

func TestReservationCreate_QuotaIgnoresEndedReservations(t *testing.T) {
	f := newFixture(t, withQuota(1))

	_, err := f.create(2, "a@example.com", at(9, 0), at(10, 0))
	require.NoError(t, err)

	_, err = f.create(2, "a@example.com", at(12, 0), at(13, 0))
	requireKind(t, err, errs.KindUserQuotaExceeded)

	f.clock.Set(at(10, 30))
	_, err = f.create(2, "a@example.com", at(12, 0), at(13, 0))
	require.NoError(t, err)
}

type constantSigner struct{ token string }

func (s constantSigner) Sign(string, string) (string, error) { return s.token, nil }

func TestReservationCreate_TokenCollision(t *testing.T) {
	f := newFixtureWithSigner(t, constantSigner{token: "same-token"})

	first, err := f.create(1, "a@example.com", at(10, 0), at(11, 0))
	require.NoError(t, err)
	assert.Equal(t, "same-token", first.Token)

	_, err = f.create(2, "a@example.com", at(10, 0), at(11, 0))
	requireKind(t, err, errs.KindTokenCollision)

	assert.Len(t, f.store.Reservations(), 1)
}

func TestReservationUpdate(t *testing.T) {
	t.Run("omitted fields keep their values and the token is reissued", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.create(1, "a@example.com", at(10, 0), at(11, 0))
		require.NoError(t, err)

		updated, err := f.uc.Update(context.Background(), created.ID, commands.UpdateReservationInput{
			End: ptr.To(at(12, 0)),
		})

		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.NotEqual(t, created.Token, updated.Token)

		stored := f.store.Reservations()[0]
		assert.Equal(t, at(10, 0), stored.TimeSlot().Start())
		assert.Equal(t, at(12, 0), stored.TimeSlot().End())
		assert.Equal(t, updated.Token, stored.Token())
	})

	t.Run("shifting over its own window is not a conflict", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.create(1, "a@example.com", at(10, 0), at(11, 0))
		require.NoError(t, err)

		_, err = f.uc.Update(context.Background(), created.ID, commands.UpdateReservationInput{
			Start: ptr.To(at(10, 30)),
			End:   ptr.To(at(11, 30)),
		})

		require.NoError(t, err)
	})

	t.Run("conflict leaves the reservation untouched", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.create(1, "a@example.com", at(10, 0), at(11, 0))
		require.NoError(t, err)
		other, err := f.create(1, "b@example.com", at(12, 0), at(13, 0))
		require.NoError(t, err)

		_, err = f.uc.Update(context.Background(), other.ID, commands.UpdateReservationInput{
			Start: ptr.To(at(11, 0)),
		})

		requireKind(t, err, errs.KindAlreadyReserved)
		stored := f.store.Reservations()[1]
		assert.Equal(t, at(12, 0), stored.TimeSlot().Start())
		assert.Equal(t, other.Token, stored.Token())
	})

	t.Run("moving between resources locks both in ascending order", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.create(2, "a@example.com", at(10, 0), at(11, 0))
		require.NoError(t, err)

		_, err = f.uc.Update(context.Background(), created.ID, commands.UpdateReservationInput{
			ResourceID: ptr.To(int64(1)),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), f.store.Reservations()[0].ResourceID())
		locks := f.store.Locks()
		assert.Equal(t, []string{
			fmt.Sprintf("reservation:%d", created.ID),
			"resource:1",
			"resource:2",
		}, locks[len(locks)-3:])
	})

	t.Run("updated window is validated", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.create(1, "a@example.com", at(10, 0), at(11, 0))
		require.NoError(t, err)

		_, err = f.uc.Update(context.Background(), created.ID, commands.UpdateReservationInput{
			Start: ptr.To(at(11, 30)),
		})

		requireKind(t, err, errs.KindInvertedInterval)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Update(context.Background(), 404, commands.UpdateReservationInput{})

		requireKind(t, err, errs.KindNotFound)
	})

	t.Run("unknown target resource", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.create(1, "a@example.com", at(10, 0), at(11, 0))
		require.NoError(t, err)

		_, err = f.uc.Update(context.Background(), created.ID, commands.UpdateReservationInput{
			ResourceID: ptr.To(int64(77)),
		})

		requireKind(t, err, errs.KindNotFound)
	})
}

func TestReservationUpdate_ActiveReservation(t *testing.T) {
	f := newFixture(t)
	created, err := f.create(1, "a@example.com", at(10, 0), at(11, 0))
	require.NoError(t, err)

	f.clock.Set(at(10, 15))

	_, err = f.uc.Update(context.Background(), created.ID, commands.UpdateReservationInput{
		End: ptr.To(at(11, 30)),
	})
	requireKind(t, err, errs.KindReservationActive)

	require.NoError(t, f.uc.Delete(context.Background(), created.ID))
	assert.Empty(t, f.store.Reservations())
}

func TestReservationDelete(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Delete(context.Background(), 1)
	requireKind(t, err, errs.KindNotFound)

	created, err := f.create(1, "a@example.com", at(10, 0), at(11, 0))
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(context.Background(), created.ID))

	_, err = f.create(1, "b@example.com", at(10, 0), at(11, 0))
	require.NoError(t, err, "a deleted reservation frees its window")
}

func TestReservationCheckOverlap(t *testing.T) {
	f := newFixture(t)
	created, err := f.create(1, "a@example.com", at(10, 0), at(11, 0))
	require.NoError(t, err)

	tests := []struct {
		name  string
		query commands.OverlapQuery
		want  bool
	}{
		{"touching end", commands.OverlapQuery{ResourceID: 1, Start: at(11, 0), End: at(12, 0)}, true},
		{"touching start", commands.OverlapQuery{ResourceID: 1, Start: at(9, 0), End: at(10, 0)}, true},
		{"clear", commands.OverlapQuery{ResourceID: 1, Start: at(11, 1), End: at(12, 0)}, false},
		{"self excluded", commands.OverlapQuery{ResourceID: 1, Start: at(10, 0), End: at(11, 0), ExcludeID: created.ID}, false},
		{"other resource", commands.OverlapQuery{ResourceID: 2, Start: at(10, 0), End: at(11, 0)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.uc.CheckOverlap(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = f.uc.CheckOverlap(context.Background(), commands.OverlapQuery{ResourceID: 1, Start: at(12, 0), End: at(11, 0)})
	requireKind(t, err, errs.KindInvertedInterval)
}

func TestReservationLifecycle_NoOverlapAfterRandomSequence(t *testing.T) {
	f := newFixture(t)
	rng := rand.New(rand.NewSource(7))
	var ids []int64

	for step := 0; step < 300; step++ {
		resourceID := int64(1 + rng.Intn(2))
		start := at(9, 0).Add(time.Duration(rng.Intn(48*4)) * 15 * time.Minute)
		end := start.Add(time.Duration(1+rng.Intn(12)) * 15 * time.Minute)

		switch op := rng.Intn(4); {
		case op <= 1 || len(ids) == 0:
			res, err := f.create(resourceID, fmt.Sprintf("u%d@example.com", step%5), start, end)
			if err == nil {
				ids = append(ids, res.ID)
			} else {
				assertExpected(t, err, errs.KindAlreadyReserved)
			}
		case op == 2:
			id := ids[rng.Intn(len(ids))]
			_, err := f.uc.Update(context.Background(), id, commands.UpdateReservationInput{
				ResourceID: ptr.To(resourceID),
				Start:      ptr.To(start),
				End:        ptr.To(end),
			})
			if err != nil {
				assertExpected(t, err, errs.KindAlreadyReserved, errs.KindNotFound)
			}
		default:
			i := rng.Intn(len(ids))
			err := f.uc.Delete(context.Background(), ids[i])
			if err != nil {
				assertExpected(t, err, errs.KindNotFound)
			}
			ids = append(ids[:i], ids[i+1:]...)
		}

		all := f.store.Reservations()
		for i := range all {
			for j := i + 1; j < len(all); j++ {
				if all[i].ResourceID() != all[j].ResourceID() {
					continue
				}
				require.False(t, all[i].TimeSlot().Overlaps(all[j].TimeSlot()),
					"step %d: reservations %d and %d overlap", step, all[i].ID(), all[j].ID())
			}
		}
	}
}

func assertExpected(t *testing.T, err error, allowed ...errs.Kind) {
	t.Helper()
	kind, ok := errs.KindOf(err)
	require.True(t, ok, "unexpected error: %v", err)
	for _, k := range allowed {
		if k == kind {
			return
		}
	}
	t.Fatalf("unexpected kind %s: %v", kind, err)
}

func TestReservationCreate_StoreFailureIsSurfaced(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("connection reset")
	f.store.FailOn("reservations.Create", boom)

	_, err := f.create(1, "a@example.com", at(10, 0), at(11, 0))

	require.ErrorIs(t, err, boom)
	assert.Empty(t, f.store.Reservations())
	assert.Zero(t, f.store.UserCount(), "the user upsert rolls back with the transaction")
}
