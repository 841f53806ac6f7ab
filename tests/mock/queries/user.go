// Source: internal/usecase/queries/user.go
//
// Generated by this command:
//
//	mockgen -source=internal/usecase/queries/user.go -destination=tests/mock/queries/user.go -package=queriesmock
//

// Package queriesmock is a generated GoMock package.
package queriesmock

import (
	context "context"
	reflect "reflect"

	queries "github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"
	gomock "go.uber.org/mock/gomock"
)

// MockUserQueries is a mock of UserQueries interface.
type MockUserQueries struct {
	ctrl     *gomock.Controller
	recorder *MockUserQueriesMockRecorder
	isgomock struct{}
}

// MockUserQueriesMockRecorder is the mock recorder for MockUserQueries.
type MockUserQueriesMockRecorder struct {
	mock *MockUserQueries
}

// NewMockUserQueries creates a new mock instance.
func NewMockUserQueries(ctrl *gomock.Controller) *MockUserQueries {
	mock := &MockUserQueries{ctrl: ctrl}
	mock.recorder = &MockUserQueriesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUserQueries) EXPECT() *MockUserQueriesMockRecorder {
	return m.recorder
}

// GetByID mocks base method.
func (m *MockUserQueries) GetByID(ctx context.Context, id int64) (*queries.UserView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*queries.UserView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockUserQueriesMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockUserQueries)(nil).GetByID), ctx, id)
}

// List mocks base method.
func (m *MockUserQueries) List(ctx context.Context, filter queries.UserFilter) ([]*queries.UserView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, filter)
	ret0, _ := ret[0].([]*queries.UserView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockUserQueriesMockRecorder) List(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockUserQueries)(nil).List), ctx, filter)
}

// MockUserViewRepo is a mock of UserViewRepo interface.
type MockUserViewRepo struct {
	ctrl     *gomock.Controller
	recorder *MockUserViewRepoMockRecorder
	isgomock struct{}
}

// MockUserViewRepoMockRecorder is the mock recorder for MockUserViewRepo.
type MockUserViewRepoMockRecorder struct {
	mock *MockUserViewRepo
}

// NewMockUserViewRepo creates a new mock instance.
func NewMockUserViewRepo(ctrl *gomock.Controller) *MockUserViewRepo {
	mock := &MockUserViewRepo{ctrl: ctrl}
	mock.recorder = &MockUserViewRepoMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUserViewRepo) EXPECT() *MockUserViewRepoMockRecorder {
	return m.recorder
}

// FindByID mocks base method.
func (m *MockUserViewRepo) FindByID(ctx context.Context, id int64) (*queries.UserView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByID", ctx, id)
	ret0, _ := ret[0].(*queries.UserView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindByID indicates an expected call of FindByID.
func (mr *MockUserViewRepoMockRecorder) FindByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByID", reflect.TypeOf((*MockUserViewRepo)(nil).FindByID), ctx, id)
}

// List mocks base method.
func (m *MockUserViewRepo) List(ctx context.Context, filter queries.UserFilter) ([]*queries.UserView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, filter)
	ret0, _ := ret[0].([]*queries.UserView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockUserViewRepoMockRecorder) List(ctx, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockUserViewRepo)(nil).List), ctx, filter)
}
