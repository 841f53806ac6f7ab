package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/config"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
)

// Signer turns a payload and a salt into an opaque token. Identical inputs may
// produce identical tokens, so every result is checked against the store.
type Signer interface {
	Sign(payload, salt string) (string, error)
}

// TokenLookup reports whether a token is already held by a reservation.
type TokenLookup func(ctx context.Context, token string) (bool, error)

var errTokenTaken = errs.New("token already taken")

type TokenIssuer struct {
	signer   Signer
	attempts uint
	newSalt  func() string
}

func NewTokenIssuer(signer Signer, cfg config.TokenConfig) *TokenIssuer {
	attempts := cfg.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}
	return &TokenIssuer{
		signer:   signer,
		attempts: attempts,
		newSalt:  uuid.NewString,
	}
}

// WithSaltSource replaces the random salt generator.
func (i *TokenIssuer) WithSaltSource(fn func() string) *TokenIssuer {
	i.newSalt = fn
	return i
}

// Issue signs descriptor with a fresh salt until the store reports the token
// unused. Store and signing failures stop immediately.
func (i *TokenIssuer) Issue(ctx context.Context, exists TokenLookup, descriptor string) (string, error) {
	token, err := retry.DoWithData(func() (string, error) {
		candidate, err := i.signer.Sign(descriptor, i.newSalt())
		if err != nil {
			return "", retry.Unrecoverable(errs.Wrap(err, "failed to sign reservation token"))
		}

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", retry.Unrecoverable(err)
		}
		if taken {
			return "", errTokenTaken
		}
		return candidate, nil
	},
		retry.Context(ctx),
		retry.Attempts(i.attempts),
		retry.Delay(time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("reservation token collision, retrying", "attempt", n+1)
		}),
	)
	if err != nil {
		if errs.Is(err, errTokenTaken) {
			return "", errs.Newf(errs.KindTokenCollision,
				"Could not issue a unique reservation token after %d attempts", i.attempts).
				With("attempts", i.attempts)
		}
		return "", err
	}
	return token, nil
}
