package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gamebook-hub/internal/models"
	"gamebook-hub/internal/repository"
)

// MockGamebookRepository is a mock type for the GamebookRepository type
type MockGamebookRepository struct {
	mock.Mock
}

func (_m *MockGamebookRepository) GetBySlug(ctx context.Context, q repository.DBTX, slug string) (*models.Gamebook, error) {
	ret := _m.Called(ctx, q, slug)
	var r0 *models.Gamebook
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Gamebook)
	}
	return r0, ret.Error(1)
}

func (_m *MockGamebookRepository) GetPublishedBySlug(ctx context.Context, q repository.DBTX, slug string) (*models.Gamebook, error) {
	ret := _m.Called(ctx, q, slug)
	var r0 *models.Gamebook
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Gamebook)
	}
	return r0, ret.Error(1)
}

func (_m *MockGamebookRepository) ListPublished(ctx context.Context, q repository.DBTX) ([]models.Gamebook, error) {
	ret := _m.Called(ctx, q)
	var r0 []models.Gamebook
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Gamebook)
	}
	return r0, ret.Error(1)
}

func (_m *MockGamebookRepository) Create(ctx context.Context, q repository.DBTX, gb *models.Gamebook) error {
	ret := _m.Called(ctx, q, gb)
	return ret.Error(0)
}

func (_m *MockGamebookRepository) UpdateMeta(ctx context.Context, q repository.DBTX, gb *models.Gamebook) error {
	ret := _m.Called(ctx, q, gb)
	return ret.Error(0)
}

func (_m *MockGamebookRepository) GetAttributes(ctx context.Context, q repository.DBTX, gamebookID uuid.UUID) ([]models.AttributeDefinition, error) {
	ret := _m.Called(ctx, q, gamebookID)
	var r0 []models.AttributeDefinition
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.AttributeDefinition)
	}
	return r0, ret.Error(1)
}

func (_m *MockGamebookRepository) ReplaceAttributes(ctx context.Context, q repository.DBTX, gamebookID uuid.UUID, defs []models.AttributeDefinition) error {
	ret := _m.Called(ctx, q, gamebookID, defs)
	return ret.Error(0)
}

var _ repository.GamebookRepository = (*MockGamebookRepository)(nil)
