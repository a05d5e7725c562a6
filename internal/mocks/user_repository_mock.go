package mocks

import (
	"context"
	"time"

	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the interfaces.UserRepository type
type MockUserRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, user
func (_m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	ret := _m.Called(ctx, user)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.User) error); ok {
		r0 = rf(ctx, user)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.User
	if rf, ok := ret.Get(0).(func(context.Context, int64) *models.User); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.User)
		}
	}

	return r0, ret.Error(1)
}

// GetByEmail provides a mock function with given fields: ctx, email
func (_m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ret := _m.Called(ctx, email)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

// GetByUsername provides a mock function with given fields: ctx, username
func (_m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ret := _m.Called(ctx, username)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

// GetByVerificationToken provides a mock function with given fields: ctx, token
func (_m *MockUserRepository) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	ret := _m.Called(ctx, token)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, skip, limit
func (_m *MockUserRepository) List(ctx context.Context, skip int, limit int) ([]models.User, error) {
	ret := _m.Called(ctx, skip, limit)

	var r0 []models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.User)
	}

	return r0, ret.Error(1)
}

// UpdateFields provides a mock function with given fields: ctx, id, upd
func (_m *MockUserRepository) UpdateFields(ctx context.Context, id int64, upd *models.UserUpdate) error {
	ret := _m.Called(ctx, id, upd)
	return ret.Error(0)
}

// SetVerificationToken provides a mock function with given fields: ctx, id, token, createdAt
func (_m *MockUserRepository) SetVerificationToken(ctx context.Context, id int64, token string, createdAt time.Time) error {
	ret := _m.Called(ctx, id, token, createdAt)
	return ret.Error(0)
}

// MarkVerified provides a mock function with given fields: ctx, id
func (_m *MockUserRepository) MarkVerified(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewMockUserRepository creates a new instance of MockUserRepository. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockUserRepository(t interface {
	mock.TestingT
	Helper()
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.UserRepository = (*MockUserRepository)(nil)
