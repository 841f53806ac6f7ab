// Source: internal/usecase/queries/resource.go
//
// Generated by this command:
//
//	mockgen -source=internal/usecase/queries/resource.go -destination=tests/mock/queries/resource.go -package=queriesmock
//

// Package queriesmock is a generated GoMock package.
package queriesmock

import (
	context "context"
	reflect "reflect"

	queries "github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"
	gomock "go.uber.org/mock/gomock"
)

// MockResourceQueries is a mock of ResourceQueries interface.
type MockResourceQueries struct {
	ctrl     *gomock.Controller
	recorder *MockResourceQueriesMockRecorder
	isgomock struct{}
}

// MockResourceQueriesMockRecorder is the mock recorder for MockResourceQueries.
type MockResourceQueriesMockRecorder struct {
	mock *MockResourceQueries
}

// NewMockResourceQueries creates a new mock instance.
func NewMockResourceQueries(ctrl *gomock.Controller) *MockResourceQueries {
	mock := &MockResourceQueries{ctrl: ctrl}
	mock.recorder = &MockResourceQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockResourceQueries) EXPECT() *MockResourceQueriesMockRecorder {
	return m.recorder
}

// List mocks base method.
func (m *MockResourceQueries) List(ctx context.Context, filter queries.ResourceFilter) ([]*queries.ResourceView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, filter)
	ret0, _ := ret[0].([]*queries.ResourceView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockResourceQueriesMockRecorder) List(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockResourceQueries)(nil).List), ctx, filter)
}

// MockResourceViewRepo is a mock of ResourceViewRepo interface.
type MockResourceViewRepo struct {
	ctrl     *gomock.Controller
	recorder *MockResourceViewRepoMockRecorder
	isgomock struct{}
}

// MockResourceViewRepoMockRecorder is the mock recorder for MockResourceViewRepo.
type MockResourceViewRepoMockRecorder struct {
	mock *MockResourceViewRepo
}

// NewMockResourceViewRepo creates a new mock instance.
func NewMockResourceViewRepo(ctrl *gomock.Controller) *MockResourceViewRepo {
	mock := &MockResourceViewRepo{ctrl: ctrl}
	mock.recorder = &MockResourceViewRepoMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockResourceViewRepo) EXPECT() *MockResourceViewRepoMockRecorder {
	return m.recorder
}

// List mocks base method.
func (m *MockResourceViewRepo) List(ctx context.Context, filter queries.ResourceFilter) ([]*queries.ResourceView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, filter)
	ret0, _ := ret[0].([]*queries.ResourceView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockResourceViewRepoMockRecorder) List(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockResourceViewRepo)(nil).List), ctx, filter)
}
