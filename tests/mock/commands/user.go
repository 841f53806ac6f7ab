// Source: internal/usecase/commands/user.go
//
// Generated by this command:
//
//	mockgen -source=internal/usecase/commands/user.go -destination=tests/mock/commands/user.go -package=commandsmock
//

// Package commandsmock is a generated GoMock package.
package commandsmock

import (
	context "context"
	reflect "reflect"

	commands "github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"
	gomock "go.uber.org/mock/gomock"
)

// MockUserCommands is a mock of UserCommands interface.
type MockUserCommands struct {
	ctrl     *gomock.Controller
	recorder *MockUserCommandsMockRecorder
	isgomock struct{}
}

// MockUserCommandsMockRecorder is the mock recorder for MockUserCommands.
type MockUserCommandsMockRecorder struct {
	mock *MockUserCommands
}

// NewMockUserCommands creates a new mock instance.
func NewMockUserCommands(ctrl *gomock.Controller) *MockUserCommands {
	mock := &MockUserCommands{ctrl: ctrl}
	mock.recorder = &MockUserCommandsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUserCommands) EXPECT() *MockUserCommandsMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockUserCommands) Create(ctx context.Context, in commands.UserInput) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, in)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockUserCommandsMockRecorder) Create(ctx, in any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockUserCommands)(nil).Create), ctx, in)
}

// Delete mocks base method.
func (m *MockUserCommands) Delete(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockUserCommandsMockRecorder) Delete(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockUserCommands)(nil).Delete), ctx, id)
}

// Update mocks base method.
func (m *MockUserCommands) Update(ctx context.Context, id int64, in commands.UserInput) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, id, in)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockUserCommandsMockRecorder) Update(ctx, id, in any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockUserCommands)(nil).Update), ctx, id, in)
}
