package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gamebook-hub/internal/repository"
)

// MockTxManager is a mock type for the TxManager type.
// При успехе выполняет callback с nil-исполнителем, чтобы юнит-тесты
// сервисов проходили через тот же транзакционный путь, что и продакшен.
type MockTxManager struct {
	mock.Mock
}

func (_m *MockTxManager) WithTransaction(ctx context.Context, fn func(q repository.DBTX) error) error {
	ret := _m.Called(ctx, fn)
	if ret.Error(0) != nil {
		return ret.Error(0)
	}
	return fn(nil)
}

var _ repository.TxManager = (*MockTxManager)(nil)
