package mocks

import (
	"context"

	"genstory-server/internal/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockMailer is a mock type for the interfaces.Mailer type
type MockMailer struct {
	mock.Mock
}

// SendVerificationMail provides a mock function with given fields: ctx, email, token
func (_m *MockMailer) SendVerificationMail(ctx context.Context, email string, token string) error {
	ret := _m.Called(ctx, email, token)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) error); ok {
		r0 = rf(ctx, email, token)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockMailer creates a new instance of MockMailer. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockMailer(t interface {
	mock.TestingT
	Helper()
}) *MockMailer {
	m := &MockMailer{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.Mailer = (*MockMailer)(nil)
