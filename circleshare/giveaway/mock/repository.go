package mock

import (
	context "context"
	reflect "reflect"

	models "github.com/circleshare/circleshare/circleshare/database/models"
	giveaway "github.com/circleshare/circleshare/circleshare/giveaway"
	gomock "go.uber.org/mock/gomock"
)

// MockRepository is a mock of Repository interface.
type MockRepository struct {
	ctrl     *gomock.Controller
	recorder *MockRepositoryMockRecorder
	isgomock struct{}
}

// MockRepositoryMockRecorder is the mock recorder for MockRepository.
type MockRepositoryMockRecorder struct {
	mock *MockRepository
}

// NewMockRepository creates a new mock instance.
func NewMockRepository(ctrl *gomock.Controller) *MockRepository {
	mock := &MockRepository{ctrl: ctrl}
	mock.recorder = &MockRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRepository) EXPECT() *MockRepositoryMockRecorder {
	return m.recorder
}

// ActiveInterests mocks base method.
func (m *MockRepository) ActiveInterests(ctx context.Context, itemID int64) ([]*models.GiveawayInterest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ActiveInterests", ctx, itemID)
	ret0, _ := ret[0].([]*models.GiveawayInterest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ActiveInterests indicates an expected call of ActiveInterests.
func (mr *MockRepositoryMockRecorder) ActiveInterests(ctx, itemID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ActiveInterests", reflect.TypeOf((*MockRepository)(nil).ActiveInterests), ctx, itemID)
}

// ConfirmHandoff mocks base method.
func (m *MockRepository) ConfirmHandoff(ctx context.Context, itemID int64) (*models.Item, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ConfirmHandoff", ctx, itemID)
	ret0, _ := ret[0].(*models.Item)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ConfirmHandoff indicates an expected call of ConfirmHandoff.
func (mr *MockRepositoryMockRecorder) ConfirmHandoff(ctx, itemID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ConfirmHandoff", reflect.TypeOf((*MockRepository)(nil).ConfirmHandoff), ctx, itemID)
}

// GetItem mocks base method.
func (m *MockRepository) GetItem(ctx context.Context, itemID int64) (*models.Item, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetItem", ctx, itemID)
	ret0, _ := ret[0].(*models.Item)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetItem indicates an expected call of GetItem.
func (mr *MockRepositoryMockRecorder) GetItem(ctx, itemID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetItem", reflect.TypeOf((*MockRepository)(nil).GetItem), ctx, itemID)
}

// InterestFor mocks base method.
func (m *MockRepository) InterestFor(ctx context.Context, itemID, memberID int64) (*models.GiveawayInterest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InterestFor", ctx, itemID, memberID)
	ret0, _ := ret[0].(*models.GiveawayInterest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// InterestFor indicates an expected call of InterestFor.
func (mr *MockRepositoryMockRecorder) InterestFor(ctx, itemID, memberID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InterestFor", reflect.TypeOf((*MockRepository)(nil).InterestFor), ctx, itemID, memberID)
}

// Reassign mocks base method.
func (m *MockRepository) Reassign(ctx context.Context, itemID int64, pick giveaway.SelectionFunc) (*giveaway.SelectionResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reassign", ctx, itemID, pick)
	ret0, _ := ret[0].(*giveaway.SelectionResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Reassign indicates an expected call of Reassign.
func (mr *MockRepositoryMockRecorder) Reassign(ctx, itemID, pick any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reassign", reflect.TypeOf((*MockRepository)(nil).Reassign), ctx, itemID, pick)
}

// RegisterInterest mocks base method.
func (m *MockRepository) RegisterInterest(ctx context.Context, interest *models.GiveawayInterest) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RegisterInterest", ctx, interest)
	ret0, _ := ret[0].(error)
	return ret0
}

// RegisterInterest indicates an expected call of RegisterInterest.
func (mr *MockRepositoryMockRecorder) RegisterInterest(ctx, interest any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RegisterInterest", reflect.TypeOf((*MockRepository)(nil).RegisterInterest), ctx, interest)
}

// ReleaseToAll mocks base method.
func (m *MockRepository) ReleaseToAll(ctx context.Context, itemID int64) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReleaseToAll", ctx, itemID)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ReleaseToAll indicates an expected call of ReleaseToAll.
func (mr *MockRepositoryMockRecorder) ReleaseToAll(ctx, itemID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReleaseToAll", reflect.TypeOf((*MockRepository)(nil).ReleaseToAll), ctx, itemID)
}

// SelectRecipient mocks base method.
func (m *MockRepository) SelectRecipient(ctx context.Context, itemID int64, pick giveaway.SelectionFunc) (*giveaway.SelectionResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SelectRecipient", ctx, itemID, pick)
	ret0, _ := ret[0].(*giveaway.SelectionResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SelectRecipient indicates an expected call of SelectRecipient.
func (mr *MockRepositoryMockRecorder) SelectRecipient(ctx, itemID, pick any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SelectRecipient", reflect.TypeOf((*MockRepository)(nil).SelectRecipient), ctx, itemID, pick)
}

// WithdrawInterest mocks base method.
func (m *MockRepository) WithdrawInterest(ctx context.Context, itemID, memberID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WithdrawInterest", ctx, itemID, memberID)
	ret0, _ := ret[0].(error)
	return ret0
}

// WithdrawInterest indicates an expected call of WithdrawInterest.
func (mr *MockRepositoryMockRecorder) WithdrawInterest(ctx, itemID, memberID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WithdrawInterest", reflect.TypeOf((*MockRepository)(nil).WithdrawInterest), ctx, itemID, memberID)
}
