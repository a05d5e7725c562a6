package mocks

import (
	"context"

	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStoryRepository is a mock type for the interfaces.StoryRepository type
type MockStoryRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, story
func (_m *MockStoryRepository) Create(ctx context.Context, story *models.Story) error {
	ret := _m.Called(ctx, story)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Story) error); ok {
		r0 = rf(ctx, story)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockStoryRepository) GetByID(ctx context.Context, id int64) (*models.Story, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Story
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Story)
	}

	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, skip, limit
func (_m *MockStoryRepository) List(ctx context.Context, skip int, limit int) ([]models.Story, error) {
	ret := _m.Called(ctx, skip, limit)

	var r0 []models.Story
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Story)
	}

	return r0, ret.Error(1)
}

// UpdateFields provides a mock function with given fields: ctx, id, upd
func (_m *MockStoryRepository) UpdateFields(ctx context.Context, id int64, upd *models.StoryUpdate) error {
	ret := _m.Called(ctx, id, upd)
	return ret.Error(0)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *MockStoryRepository) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewMockStoryRepository creates a new instance of MockStoryRepository. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockStoryRepository(t interface {
	mock.TestingT
	Helper()
}) *MockStoryRepository {
	m := &MockStoryRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.StoryRepository = (*MockStoryRepository)(nil)
