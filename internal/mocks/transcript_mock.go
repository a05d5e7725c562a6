package mocks

import (
	"context"

	"genstory-server/internal/agent"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTranscript is a mock type for the agent.Transcript type
type MockTranscript struct {
	mock.Mock
}

// LogUserMessage provides a mock function with given fields: ctx, sessionID, content
func (_m *MockTranscript) LogUserMessage(ctx context.Context, sessionID uuid.UUID, content string) error {
	ret := _m.Called(ctx, sessionID, content)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) error); ok {
		r0 = rf(ctx, sessionID, content)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// LogAgentMessage provides a mock function with given fields: ctx, sessionID, content, tokensUsed
func (_m *MockTranscript) LogAgentMessage(ctx context.Context, sessionID uuid.UUID, content string, tokensUsed *int) error {
	ret := _m.Called(ctx, sessionID, content, tokensUsed)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string, *int) error); ok {
		r0 = rf(ctx, sessionID, content, tokensUsed)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockTranscript creates a new instance of MockTranscript. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockTranscript(t interface {
	mock.TestingT
	Helper()
}) *MockTranscript {
	m := &MockTranscript{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ agent.Transcript = (*MockTranscript)(nil)
