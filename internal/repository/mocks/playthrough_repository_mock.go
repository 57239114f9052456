package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gamebook-hub/internal/models"
	"gamebook-hub/internal/repository"
)

// MockPlaythroughRepository is a mock type for the PlaythroughRepository type
type MockPlaythroughRepository struct {
	mock.Mock
}

func (_m *MockPlaythroughRepository) GetByPlayerAndGamebook(ctx context.Context, q repository.DBTX, playerID, gamebookID uuid.UUID) (*models.Playthrough, error) {
	ret := _m.Called(ctx, q, playerID, gamebookID)
	var r0 *models.Playthrough
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Playthrough)
	}
	return r0, ret.Error(1)
}

func (_m *MockPlaythroughRepository) GetForUpdate(ctx context.Context, q repository.DBTX, playerID, gamebookID uuid.UUID) (*models.Playthrough, error) {
	ret := _m.Called(ctx, q, playerID, gamebookID)
	var r0 *models.Playthrough
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Playthrough)
	}
	return r0, ret.Error(1)
}

func (_m *MockPlaythroughRepository) Create(ctx context.Context, q repository.DBTX, pt *models.Playthrough) error {
	ret := _m.Called(ctx, q, pt)
	return ret.Error(0)
}

func (_m *MockPlaythroughRepository) Update(ctx context.Context, q repository.DBTX, pt *models.Playthrough) error {
	ret := _m.Called(ctx, q, pt)
	return ret.Error(0)
}

var _ repository.PlaythroughRepository = (*MockPlaythroughRepository)(nil)
