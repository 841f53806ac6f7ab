//go:build unit

package commands_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/config"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saltEchoSigner makes the token equal to the salt so tests control collisions.
type saltEchoSigner struct{}

func (saltEchoSigner) Sign(payload, salt string) (string, error) {
	return salt, nil
}

type failingSigner struct{ err error }

func (s failingSigner) Sign(string, string) (string, error) { return "", s.err }

func sequence(values ...string) func() string {
	i := 0
	return func() string {
		v := values[i%len(values)]
		i++
		return v
	}
}

func takenSet(tokens ...string) (commands.TokenLookup, *int) {
	set := map[string]bool{}
	for _, t := range tokens {
		set[t] = true
	}
	calls := 0
	return func(_ context.Context, token string) (bool, error) {
		calls++
		return set[token], nil
	}, &calls
}

func TestTokenIssuer_Issue(t *testing.T) {
	cfg := config.TokenConfig{MaxAttempts: 3}

	t.Run("first unused token wins", func(t *testing.T) {
		issuer := commands.NewTokenIssuer(saltEchoSigner{}, cfg).WithSaltSource(sequence("a", "b"))
		exists, calls := takenSet()

		tok, err := issuer.Issue(context.Background(), exists, "resource=1")

		require.NoError(t, err)
		assert.Equal(t, "a", tok)
		assert.Equal(t, 1, *calls)
	})

	t.Run("collision is retried with a fresh salt", func(t *testing.T) {
		issuer := commands.NewTokenIssuer(saltEchoSigner{}, cfg).WithSaltSource(sequence("a", "b", "c"))
		exists, calls := takenSet("a", "b")

		tok, err := issuer.Issue(context.Background(), exists, "resource=1")

		require.NoError(t, err)
		assert.Equal(t, "c", tok)
		assert.Equal(t, 3, *calls)
	})

	t.Run("exhausted attempts fail with a collision", func(t *testing.T) {
		issuer := commands.NewTokenIssuer(saltEchoSigner{}, cfg).WithSaltSource(sequence("a"))
		exists, calls := takenSet("a")

		_, err := issuer.Issue(context.Background(), exists, "resource=1")

		requireKind(t, err, errs.KindTokenCollision)
		assert.Equal(t, uint(3), errs.Details(err)[0].Detail["attempts"])
		assert.Equal(t, 3, *calls)
	})

	t.Run("store failure stops immediately", func(t *testing.T) {
		issuer := commands.NewTokenIssuer(saltEchoSigner{}, cfg)
		boom := errors.New("connection refused")
		calls := 0

		_, err := issuer.Issue(context.Background(), func(context.Context, string) (bool, error) {
			calls++
			return false, boom
		}, "resource=1")

		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("signing failure stops immediately", func(t *testing.T) {
		boom := errors.New("bad key")
		issuer := commands.NewTokenIssuer(failingSigner{err: boom}, cfg)
		exists, calls := takenSet()

		_, err := issuer.Issue(context.Background(), exists, "resource=1")

		require.Error(t, err)
		assert.True(t, errs.Is(err, boom), fmt.Sprintf("got %v", err))
		assert.Zero(t, *calls)
	})
}
