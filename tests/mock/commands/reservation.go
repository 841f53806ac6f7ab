// Source: internal/usecase/commands/reservation.go
//
// Generated by this command:
//
//	mockgen -source=internal/usecase/commands/reservation.go -destination=tests/mock/commands/reservation.go -package=commandsmock
//

// Package commandsmock is a generated GoMock package.
package commandsmock

import (
	context "context"
	reflect "reflect"

	commands "github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"
	gomock "go.uber.org/mock/gomock"
)

// MockReservationCommands is a mock of ReservationCommands interface.
type MockReservationCommands struct {
	ctrl     *gomock.Controller
	recorder *MockReservationCommandsMockRecorder
	isgomock struct{}
}

// MockReservationCommandsMockRecorder is the mock recorder for MockReservationCommands.
type MockReservationCommandsMockRecorder struct {
	mock *MockReservationCommands
}

// NewMockReservationCommands creates a new mock instance.
func NewMockReservationCommands(ctrl *gomock.Controller) *MockReservationCommands {
	mock := &MockReservationCommands{ctrl: ctrl}
	mock.recorder = &MockReservationCommandsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockReservationCommands) EXPECT() *MockReservationCommandsMockRecorder {
	return m.recorder
}

// CheckOverlap mocks base method.
func (m *MockReservationCommands) CheckOverlap(ctx context.Context, q commands.OverlapQuery) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckOverlap", ctx, q)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CheckOverlap indicates an expected call of CheckOverlap.
func (mr *MockReservationCommandsMockRecorder) CheckOverlap(ctx, q any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CheckOverlap", reflect.TypeOf((*MockReservationCommands)(nil).CheckOverlap), ctx, q)
}

// Create mocks base method.
func (m *MockReservationCommands) Create(ctx context.Context, in commands.CreateReservationInput) (*commands.ReservationResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, in)
	ret0, _ := ret[0].(*commands.ReservationResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockReservationCommandsMockRecorder) Create(ctx, in any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockReservationCommands)(nil).Create), ctx, in)
}

// Delete mocks base method.
func (m *MockReservationCommands) Delete(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockReservationCommandsMockRecorder) Delete(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockReservationCommands)(nil).Delete), ctx, id)
}

// Update mocks base method.
func (m *MockReservationCommands) Update(ctx context.Context, id int64, in commands.UpdateReservationInput) (*commands.ReservationResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, id, in)
	ret0, _ := ret[0].(*commands.ReservationResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Update indicates an expected call of Update.
func (mr *MockReservationCommandsMockRecorder) Update(ctx, id, in any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockReservationCommands)(nil).Update), ctx, id, in)
}
