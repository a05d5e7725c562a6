package mocks

import (
	"context"

	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStoryContentRepository is a mock type for the interfaces.StoryContentRepository type
type MockStoryContentRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, content
func (_m *MockStoryContentRepository) Create(ctx context.Context, content *models.StoryContent) error {
	ret := _m.Called(ctx, content)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.StoryContent) error); ok {
		r0 = rf(ctx, content)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockStoryContentRepository) GetByID(ctx context.Context, id int64) (*models.StoryContent, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.StoryContent
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.StoryContent)
	}

	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, skip, limit
func (_m *MockStoryContentRepository) List(ctx context.Context, skip int, limit int) ([]models.StoryContent, error) {
	ret := _m.Called(ctx, skip, limit)

	var r0 []models.StoryContent
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.StoryContent)
	}

	return r0, ret.Error(1)
}

// ListByStoryID provides a mock function with given fields: ctx, storyID
func (_m *MockStoryContentRepository) ListByStoryID(ctx context.Context, storyID int64) ([]models.StoryContent, error) {
	ret := _m.Called(ctx, storyID)

	var r0 []models.StoryContent
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.StoryContent)
	}

	return r0, ret.Error(1)
}

// UpdateFields provides a mock function with given fields: ctx, id, upd
func (_m *MockStoryContentRepository) UpdateFields(ctx context.Context, id int64, upd *models.StoryContentUpdate) error {
	ret := _m.Called(ctx, id, upd)
	return ret.Error(0)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *MockStoryContentRepository) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewMockStoryContentRepository creates a new instance of MockStoryContentRepository. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockStoryContentRepository(t interface {
	mock.TestingT
	Helper()
}) *MockStoryContentRepository {
	m := &MockStoryContentRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.StoryContentRepository = (*MockStoryContentRepository)(nil)
