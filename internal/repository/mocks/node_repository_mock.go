package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gamebook-hub/internal/models"
	"gamebook-hub/internal/repository"
)

// MockNodeRepository is a mock type for the NodeRepository type
type MockNodeRepository struct {
	mock.Mock
}

func (_m *MockNodeRepository) ListByGamebook(ctx context.Context, q repository.DBTX, gamebookID uuid.UUID) ([]models.Node, error) {
	ret := _m.Called(ctx, q, gamebookID)
	var r0 []models.Node
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Node)
	}
	return r0, ret.Error(1)
}

func (_m *MockNodeRepository) CreateBatch(ctx context.Context, q repository.DBTX, nodes []*models.Node) error {
	ret := _m.Called(ctx, q, nodes)
	return ret.Error(0)
}

func (_m *MockNodeRepository) DeleteByGamebook(ctx context.Context, q repository.DBTX, gamebookID uuid.UUID) error {
	ret := _m.Called(ctx, q, gamebookID)
	return ret.Error(0)
}

var _ repository.NodeRepository = (*MockNodeRepository)(nil)
