package mocks

import (
	"context"
	"time"

	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSessionRepository is a mock type for the interfaces.SessionRepository type
type MockSessionRepository struct {
	mock.Mock
}

// CreateSession provides a mock function with given fields: ctx, session
func (_m *MockSessionRepository) CreateSession(ctx context.Context, session *models.Session) error {
	ret := _m.Called(ctx, session)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Session) error); ok {
		r0 = rf(ctx, session)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetSession provides a mock function with given fields: ctx, id
func (_m *MockSessionRepository) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Session)
	}

	return r0, ret.Error(1)
}

// GetActiveSessionByUser provides a mock function with given fields: ctx, userID
func (_m *MockSessionRepository) GetActiveSessionByUser(ctx context.Context, userID int64) (*models.Session, error) {
	ret := _m.Called(ctx, userID)

	var r0 *models.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Session)
	}

	return r0, ret.Error(1)
}

// ListSessionsByUser provides a mock function with given fields: ctx, userID, skip, limit
func (_m *MockSessionRepository) ListSessionsByUser(ctx context.Context, userID int64, skip int, limit int) ([]models.Session, error) {
	ret := _m.Called(ctx, userID, skip, limit)

	var r0 []models.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Session)
	}

	return r0, ret.Error(1)
}

// SetSessionStatus provides a mock function with given fields: ctx, id, status
func (_m *MockSessionRepository) SetSessionStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus) error {
	ret := _m.Called(ctx, id, status)
	return ret.Error(0)
}

// AppendMessage provides a mock function with given fields: ctx, msg
func (_m *MockSessionRepository) AppendMessage(ctx context.Context, msg *models.SessionMessage) error {
	ret := _m.Called(ctx, msg)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.SessionMessage) error); ok {
		r0 = rf(ctx, msg)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetMessages provides a mock function with given fields: ctx, sessionID
func (_m *MockSessionRepository) GetMessages(ctx context.Context, sessionID uuid.UUID) ([]models.SessionMessage, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 []models.SessionMessage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.SessionMessage)
	}

	return r0, ret.Error(1)
}

// RegisterTool provides a mock function with given fields: ctx, tool
func (_m *MockSessionRepository) RegisterTool(ctx context.Context, tool *models.Tool) error {
	ret := _m.Called(ctx, tool)
	return ret.Error(0)
}

// GetToolByName provides a mock function with given fields: ctx, name
func (_m *MockSessionRepository) GetToolByName(ctx context.Context, name string) (*models.Tool, error) {
	ret := _m.Called(ctx, name)

	var r0 *models.Tool
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Tool)
	}

	return r0, ret.Error(1)
}

// RecordToolUsage provides a mock function with given fields: ctx, usage
func (_m *MockSessionRepository) RecordToolUsage(ctx context.Context, usage *models.ToolUsage) error {
	ret := _m.Called(ctx, usage)
	return ret.Error(0)
}

// GetToolUsage provides a mock function with given fields: ctx, sessionID
func (_m *MockSessionRepository) GetToolUsage(ctx context.Context, sessionID uuid.UUID) ([]models.ToolUsage, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 []models.ToolUsage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.ToolUsage)
	}

	return r0, ret.Error(1)
}

// GetSessionStats provides a mock function with given fields: ctx, sessionID
func (_m *MockSessionRepository) GetSessionStats(ctx context.Context, sessionID uuid.UUID) (*models.SessionStats, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 *models.SessionStats
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.SessionStats)
	}

	return r0, ret.Error(1)
}

// ArchiveSessionsClosedBefore provides a mock function with given fields: ctx, cutoff
func (_m *MockSessionRepository) ArchiveSessionsClosedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ret := _m.Called(ctx, cutoff)

	var r0 int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(int64)
	}

	return r0, ret.Error(1)
}

// NewMockSessionRepository creates a new instance of MockSessionRepository. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockSessionRepository(t interface {
	mock.TestingT
	Helper()
}) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.SessionRepository = (*MockSessionRepository)(nil)
