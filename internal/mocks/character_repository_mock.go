package mocks

import (
	"context"

	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockCharacterRepository is a mock type for the interfaces.CharacterRepository type
type MockCharacterRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, character
func (_m *MockCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	ret := _m.Called(ctx, character)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.Character) error); ok {
		r0 = rf(ctx, character)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockCharacterRepository) GetByID(ctx context.Context, id int64) (*models.Character, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Character)
	}

	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, skip, limit
func (_m *MockCharacterRepository) List(ctx context.Context, skip int, limit int) ([]models.Character, error) {
	ret := _m.Called(ctx, skip, limit)

	var r0 []models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Character)
	}

	return r0, ret.Error(1)
}

// ListByStoryID provides a mock function with given fields: ctx, storyID
func (_m *MockCharacterRepository) ListByStoryID(ctx context.Context, storyID int64) ([]models.Character, error) {
	ret := _m.Called(ctx, storyID)

	var r0 []models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Character)
	}

	return r0, ret.Error(1)
}

// UpdateFields provides a mock function with given fields: ctx, id, upd
func (_m *MockCharacterRepository) UpdateFields(ctx context.Context, id int64, upd *models.CharacterUpdate) error {
	ret := _m.Called(ctx, id, upd)
	return ret.Error(0)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *MockCharacterRepository) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// LinkEvent provides a mock function with given fields: ctx, link
func (_m *MockCharacterRepository) LinkEvent(ctx context.Context, link *models.CharacterEvent) error {
	ret := _m.Called(ctx, link)
	return ret.Error(0)
}

// ListEventLinks provides a mock function with given fields: ctx, characterID
func (_m *MockCharacterRepository) ListEventLinks(ctx context.Context, characterID int64) ([]models.CharacterEvent, error) {
	ret := _m.Called(ctx, characterID)

	var r0 []models.CharacterEvent
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.CharacterEvent)
	}

	return r0, ret.Error(1)
}

// SetRelationship provides a mock function with given fields: ctx, rel
func (_m *MockCharacterRepository) SetRelationship(ctx context.Context, rel *models.CharacterRelationship) error {
	ret := _m.Called(ctx, rel)
	return ret.Error(0)
}

// ListRelationships provides a mock function with given fields: ctx, characterID
func (_m *MockCharacterRepository) ListRelationships(ctx context.Context, characterID int64) ([]models.CharacterRelationship, error) {
	ret := _m.Called(ctx, characterID)

	var r0 []models.CharacterRelationship
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.CharacterRelationship)
	}

	return r0, ret.Error(1)
}

// NewMockCharacterRepository creates a new instance of MockCharacterRepository. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockCharacterRepository(t interface {
	mock.TestingT
	Helper()
}) *MockCharacterRepository {
	m := &MockCharacterRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.CharacterRepository = (*MockCharacterRepository)(nil)
