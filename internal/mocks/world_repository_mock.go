package mocks

import (
	"context"

	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockEventRepository is a mock type for the interfaces.EventRepository type
type MockEventRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, event
func (_m *MockEventRepository) Create(ctx context.Context, event *models.Event) error {
	ret := _m.Called(ctx, event)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Event) error); ok {
		r0 = rf(ctx, event)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockEventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Event
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Event)
	}

	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, skip, limit
func (_m *MockEventRepository) List(ctx context.Context, skip int, limit int) ([]models.Event, error) {
	ret := _m.Called(ctx, skip, limit)

	var r0 []models.Event
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Event)
	}

	return r0, ret.Error(1)
}

// ListByStoryID provides a mock function with given fields: ctx, storyID
func (_m *MockEventRepository) ListByStoryID(ctx context.Context, storyID int64) ([]models.Event, error) {
	ret := _m.Called(ctx, storyID)

	var r0 []models.Event
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Event)
	}

	return r0, ret.Error(1)
}

// UpdateFields provides a mock function with given fields: ctx, id, upd
func (_m *MockEventRepository) UpdateFields(ctx context.Context, id int64, upd *models.EventUpdate) error {
	ret := _m.Called(ctx, id, upd)
	return ret.Error(0)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *MockEventRepository) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewMockEventRepository creates a new instance of MockEventRepository. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockEventRepository(t interface {
	mock.TestingT
	Helper()
}) *MockEventRepository {
	m := &MockEventRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.EventRepository = (*MockEventRepository)(nil)

// MockTimelineRepository is a mock type for the interfaces.TimelineRepository type
type MockTimelineRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, timeline
func (_m *MockTimelineRepository) Create(ctx context.Context, timeline *models.Timeline) error {
	ret := _m.Called(ctx, timeline)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Timeline) error); ok {
		r0 = rf(ctx, timeline)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockTimelineRepository) GetByID(ctx context.Context, id int64) (*models.Timeline, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Timeline
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Timeline)
	}

	return r0, ret.Error(1)
}

// GetByStoryID provides a mock function with given fields: ctx, storyID
func (_m *MockTimelineRepository) GetByStoryID(ctx context.Context, storyID int64) (*models.Timeline, error) {
	ret := _m.Called(ctx, storyID)

	var r0 *models.Timeline
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Timeline)
	}

	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, skip, limit
func (_m *MockTimelineRepository) List(ctx context.Context, skip int, limit int) ([]models.Timeline, error) {
	ret := _m.Called(ctx, skip, limit)

	var r0 []models.Timeline
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Timeline)
	}

	return r0, ret.Error(1)
}

// UpdateFields provides a mock function with given fields: ctx, id, upd
func (_m *MockTimelineRepository) UpdateFields(ctx context.Context, id int64, upd *models.TimelineUpdate) error {
	ret := _m.Called(ctx, id, upd)
	return ret.Error(0)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *MockTimelineRepository) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewMockTimelineRepository creates a new instance of MockTimelineRepository. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockTimelineRepository(t interface {
	mock.TestingT
	Helper()
}) *MockTimelineRepository {
	m := &MockTimelineRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.TimelineRepository = (*MockTimelineRepository)(nil)

// MockLocationRepository is a mock type for the interfaces.LocationRepository type
type MockLocationRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, location
func (_m *MockLocationRepository) Create(ctx context.Context, location *models.Location) error {
	ret := _m.Called(ctx, location)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Location) error); ok {
		r0 = rf(ctx, location)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockLocationRepository) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Location
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Location)
	}

	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, skip, limit
func (_m *MockLocationRepository) List(ctx context.Context, skip int, limit int) ([]models.Location, error) {
	ret := _m.Called(ctx, skip, limit)

	var r0 []models.Location
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Location)
	}

	return r0, ret.Error(1)
}

// ListByStoryID provides a mock function with given fields: ctx, storyID
func (_m *MockLocationRepository) ListByStoryID(ctx context.Context, storyID int64) ([]models.Location, error) {
	ret := _m.Called(ctx, storyID)

	var r0 []models.Location
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Location)
	}

	return r0, ret.Error(1)
}

// UpdateFields provides a mock function with given fields: ctx, id, upd
func (_m *MockLocationRepository) UpdateFields(ctx context.Context, id int64, upd *models.LocationUpdate) error {
	ret := _m.Called(ctx, id, upd)
	return ret.Error(0)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *MockLocationRepository) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewMockLocationRepository creates a new instance of MockLocationRepository. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockLocationRepository(t interface {
	mock.TestingT
	Helper()
}) *MockLocationRepository {
	m := &MockLocationRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.LocationRepository = (*MockLocationRepository)(nil)
