package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gamebook-hub/internal/models"
	"gamebook-hub/internal/repository"
)

// MockGraphCache is a mock type for the GraphCache type
type MockGraphCache struct {
	mock.Mock
}

func (_m *MockGraphCache) Get(ctx context.Context, slug string) (*models.GamebookGraph, error) {
	ret := _m.Called(ctx, slug)
	var r0 *models.GamebookGraph
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.GamebookGraph)
	}
	return r0, ret.Error(1)
}

func (_m *MockGraphCache) Set(ctx context.Context, graph *models.GamebookGraph) error {
	ret := _m.Called(ctx, graph)
	return ret.Error(0)
}

func (_m *MockGraphCache) Invalidate(ctx context.Context, slug string) error {
	ret := _m.Called(ctx, slug)
	return ret.Error(0)
}

var _ repository.GraphCache = (*MockGraphCache)(nil)
