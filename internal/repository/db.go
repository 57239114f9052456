package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gamebook-hub/internal/models"
)

// DBTX — минимальный интерфейс исполнителя запросов, которому удовлетворяют
// и *pgxpool.Pool, и pgx.Tx. Репозитории принимают его первым аргументом,
// чтобы один и тот же код работал внутри и вне транзакций.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxManager выполняет функцию в рамках одной транзакции.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(q DBTX) error) error
}

type pgTxManager struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgTxManager создает менеджер транзакций поверх пула соединений.
func NewPgTxManager(pool *pgxpool.Pool, logger *zap.Logger) TxManager {
	return &pgTxManager{pool: pool, logger: logger.Named("PgTxManager")}
}

// WithTransaction выполняет fn в транзакции: коммит при успехе, откат при
// ошибке или панике. Частичные записи не видны снаружи.
func (m *pgTxManager) WithTransaction(ctx context.Context, fn func(q DBTX) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rollbackErr := tx.Rollback(context.Background()); rollbackErr != nil {
				m.logger.Error("Failed to rollback transaction after panic",
					zap.Error(rollbackErr),
					zap.Any("panic", p))
			}
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			m.logger.Error("Failed to rollback transaction",
				zap.Error(rollbackErr),
				zap.NamedError("original_error", err))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// WrapNotFound преобразует pgx.ErrNoRows в models.ErrNotFound.
func WrapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	return err
}
