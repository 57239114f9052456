package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gamebook-hub/internal/models"
	"gamebook-hub/internal/repository"
)

// MockChoiceRepository is a mock type for the ChoiceRepository type
type MockChoiceRepository struct {
	mock.Mock
}

func (_m *MockChoiceRepository) ListByGamebook(ctx context.Context, q repository.DBTX, gamebookID uuid.UUID) (map[uuid.UUID][]models.Choice, error) {
	ret := _m.Called(ctx, q, gamebookID)
	var r0 map[uuid.UUID][]models.Choice
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[uuid.UUID][]models.Choice)
	}
	return r0, ret.Error(1)
}

func (_m *MockChoiceRepository) CreateBatch(ctx context.Context, q repository.DBTX, choices []*models.Choice) error {
	ret := _m.Called(ctx, q, choices)
	return ret.Error(0)
}

func (_m *MockChoiceRepository) DeleteByGamebook(ctx context.Context, q repository.DBTX, gamebookID uuid.UUID) error {
	ret := _m.Called(ctx, q, gamebookID)
	return ret.Error(0)
}

var _ repository.ChoiceRepository = (*MockChoiceRepository)(nil)
