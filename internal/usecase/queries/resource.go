package queries

import (
	"context"
)

type ResourceQueries interface {
	List(ctx context.Context, filter ResourceFilter) ([]*ResourceView, error)
}

type ResourceViewRepo interface {
	List(ctx context.Context, filter ResourceFilter) ([]*ResourceView, error)
}

type resourceQueriesImpl struct {
	repo ResourceViewRepo
}

func NewResourceQueries(repo ResourceViewRepo) ResourceQueries {
	return &resourceQueriesImpl{repo: repo}
}

func (q *resourceQueriesImpl) List(ctx context.Context, filter ResourceFilter) ([]*ResourceView, error) {
	return q.repo.List(ctx, filter)
}
