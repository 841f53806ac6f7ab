// Source: internal/usecase/commands/inventory.go
//
// Generated by this command:
//
//	mockgen -source=internal/usecase/commands/inventory.go -destination=tests/mock/commands/inventory.go -package=commandsmock
//

// Package commandsmock is a generated GoMock package.
package commandsmock

import (
	context "context"
	reflect "reflect"

	resource "github.com/ilya-afanasev/avr-lab-reservation/internal/domain/resource"
	commands "github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"
	gomock "go.uber.org/mock/gomock"
)

// MockInventorySource is a mock of InventorySource interface.
type MockInventorySource struct {
	ctrl     *gomock.Controller
	recorder *MockInventorySourceMockRecorder
	isgomock struct{}
}

// MockInventorySourceMockRecorder is the mock recorder for MockInventorySource.
type MockInventorySourceMockRecorder struct {
	mock *MockInventorySource
}

// NewMockInventorySource creates a new mock instance.
func NewMockInventorySource(ctrl *gomock.Controller) *MockInventorySource {
	mock := &MockInventorySource{ctrl: ctrl}
	mock.recorder = &MockInventorySourceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockInventorySource) EXPECT() *MockInventorySourceMockRecorder {
	return m.recorder
}

// Load mocks base method.
func (m *MockInventorySource) Load(ctx context.Context) ([]resource.InventoryEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Load", ctx)
	ret0, _ := ret[0].([]resource.InventoryEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Load indicates an expected call of Load.
func (mr *MockInventorySourceMockRecorder) Load(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Load", reflect.TypeOf((*MockInventorySource)(nil).Load), ctx)
}

// MockInventoryCommands is a mock of InventoryCommands interface.
type MockInventoryCommands struct {
	ctrl     *gomock.Controller
	recorder *MockInventoryCommandsMockRecorder
	isgomock struct{}
}

// MockInventoryCommandsMockRecorder is the mock recorder for MockInventoryCommands.
type MockInventoryCommandsMockRecorder struct {
	mock *MockInventoryCommands
}

// NewMockInventoryCommands creates a new mock instance.
func NewMockInventoryCommands(ctrl *gomock.Controller) *MockInventoryCommands {
	mock := &MockInventoryCommands{ctrl: ctrl}
	mock.recorder = &MockInventoryCommandsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockInventoryCommands) EXPECT() *MockInventoryCommandsMockRecorder {
	return m.recorder
}

// Reconcile mocks base method.
func (m *MockInventoryCommands) Reconcile(ctx context.Context, entries []resource.InventoryEntry) (*commands.ReconcileResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reconcile", ctx, entries)
	ret0, _ := ret[0].(*commands.ReconcileResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Reconcile indicates an expected call of Reconcile.
func (mr *MockInventoryCommandsMockRecorder) Reconcile(ctx, entries any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reconcile", reflect.TypeOf((*MockInventoryCommands)(nil).Reconcile), ctx, entries)
}

// ReconcileFromSource mocks base method.
func (m *MockInventoryCommands) ReconcileFromSource(ctx context.Context) (*commands.ReconcileResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReconcileFromSource", ctx)
	ret0, _ := ret[0].(*commands.ReconcileResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ReconcileFromSource indicates an expected call of ReconcileFromSource.
func (mr *MockInventoryCommandsMockRecorder) ReconcileFromSource(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReconcileFromSource", reflect.TypeOf((*MockInventoryCommands)(nil).ReconcileFromSource), ctx)
}
