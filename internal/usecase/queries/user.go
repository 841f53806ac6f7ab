package queries

import (
	"context"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"
)

type UserQueries interface {
	GetByID(ctx context.Context, id int64) (*UserView, error)
	List(ctx context.Context, filter UserFilter) ([]*UserView, error)
}

type UserViewRepo interface {
	FindByID(ctx context.Context, id int64) (*UserView, error)
	List(ctx context.Context, filter UserFilter) ([]*UserView, error)
}

type userQueriesImpl struct {
	repo UserViewRepo
}

func NewUserQueries(repo UserViewRepo) UserQueries {
	return &userQueriesImpl{repo: repo}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id int64) (*UserView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, userNotFound(id)
		}
		return nil, err
	}
	return view, nil
}

func (q *userQueriesImpl) List(ctx context.Context, filter UserFilter) ([]*UserView, error) {
	return q.repo.List(ctx, filter)
}

func userNotFound(id int64) error {
	return errs.Newf(errs.KindNotFound, "User %d not found", id).With("id", id)
}
