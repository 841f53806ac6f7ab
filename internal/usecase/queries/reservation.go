package queries

import (
	"context"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id int64) (*ReservationView, error)
	GetByToken(ctx context.Context, token string) (*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter) ([]*ReservationView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id int64) (*ReservationView, error)
	FindByToken(ctx context.Context, token string) (*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter) ([]*ReservationView, error)
}

// TokenVerifier rejects tokens this service did not sign.
type TokenVerifier interface {
	Verify(token string) error
}

type reservationQueriesImpl struct {
	repo     ReservationViewRepo
	verifier TokenVerifier
}

func NewReservationQueries(repo ReservationViewRepo, verifier TokenVerifier) ReservationQueries {
	return &reservationQueriesImpl{repo: repo, verifier: verifier}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id int64) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Newf(errs.KindNotFound, "Reservation %d not found", id).With("id", id)
		}
		return nil, err
	}
	return view, nil
}

// GetByToken answers forged and unknown tokens the same way.
func (q *reservationQueriesImpl) GetByToken(ctx context.Context, token string) (*ReservationView, error) {
	if token == "" || q.verifier.Verify(token) != nil {
		return nil, invalidToken()
	}

	view, err := q.repo.FindByToken(ctx, token)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, invalidToken()
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) List(ctx context.Context, filter ReservationFilter) ([]*ReservationView, error) {
	return q.repo.List(ctx, filter)
}

func invalidToken() error {
	return errs.Newf(errs.KindInvalidToken, "Reservation token is invalid or unknown")
}
