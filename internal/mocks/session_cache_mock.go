package mocks

import (
	"context"

	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSessionCache is a mock type for the interfaces.SessionCache type
type MockSessionCache struct {
	mock.Mock
}

// GetMessages provides a mock function with given fields: ctx, sessionID
func (_m *MockSessionCache) GetMessages(ctx context.Context, sessionID uuid.UUID) ([]models.SessionMessage, bool, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 []models.SessionMessage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.SessionMessage)
	}

	var r1 bool
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(bool)
	}

	return r0, r1, ret.Error(2)
}

// SetMessages provides a mock function with given fields: ctx, sessionID, msgs
func (_m *MockSessionCache) SetMessages(ctx context.Context, sessionID uuid.UUID, msgs []models.SessionMessage) error {
	ret := _m.Called(ctx, sessionID, msgs)
	return ret.Error(0)
}

// Invalidate provides a mock function with given fields: ctx, sessionID
func (_m *MockSessionCache) Invalidate(ctx context.Context, sessionID uuid.UUID) error {
	ret := _m.Called(ctx, sessionID)
	return ret.Error(0)
}

// NewMockSessionCache creates a new instance of MockSessionCache. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockSessionCache(t interface {
	mock.TestingT
	Helper()
}) *MockSessionCache {
	m := &MockSessionCache{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.SessionCache = (*MockSessionCache)(nil)
