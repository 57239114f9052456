package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"gamebook-hub/internal/models"
)

// PlaythroughRepository определяет доступ к прохождениям. Запись принадлежит
// паре (player, gamebook) и изменяется только из игрового цикла этой пары.
type PlaythroughRepository interface {
	GetByPlayerAndGamebook(ctx context.Context, q DBTX, playerID, gamebookID uuid.UUID) (*models.Playthrough, error)
	// GetForUpdate блокирует строку прохождения до конца транзакции,
	// сериализуя конкурентные choose по одному прохождению.
	GetForUpdate(ctx context.Context, q DBTX, playerID, gamebookID uuid.UUID) (*models.Playthrough, error)
	Create(ctx context.Context, q DBTX, pt *models.Playthrough) error
	Update(ctx context.Context, q DBTX, pt *models.Playthrough) error
}

type pgPlaythroughRepository struct {
	logger *zap.Logger
}

// NewPgPlaythroughRepository creates a new repository instance.
func NewPgPlaythroughRepository(logger *zap.Logger) PlaythroughRepository {
	return &pgPlaythroughRepository{logger: logger.Named("PgPlaythroughRepo")}
}

const playthroughColumns = `id, player_id, gamebook_id, current_node_key, flags, is_finished, started_at, updated_at`

const getPlaythroughQuery = `
SELECT ` + playthroughColumns + `
FROM playthroughs
WHERE player_id = $1 AND gamebook_id = $2`

const getPlaythroughForUpdateQuery = getPlaythroughQuery + `
FOR UPDATE`

const insertPlaythroughQuery = `
INSERT INTO playthroughs (id, player_id, gamebook_id, current_node_key, flags, is_finished, started_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const updatePlaythroughQuery = `
UPDATE playthroughs
SET current_node_key = $2, flags = $3, is_finished = $4, updated_at = $5
WHERE id = $1`

func (r *pgPlaythroughRepository) GetByPlayerAndGamebook(ctx context.Context, q DBTX, playerID, gamebookID uuid.UUID) (*models.Playthrough, error) {
	return r.scanPlaythrough(ctx, q, getPlaythroughQuery, playerID, gamebookID)
}

func (r *pgPlaythroughRepository) GetForUpdate(ctx context.Context, q DBTX, playerID, gamebookID uuid.UUID) (*models.Playthrough, error) {
	return r.scanPlaythrough(ctx, q, getPlaythroughForUpdateQuery, playerID, gamebookID)
}

func (r *pgPlaythroughRepository) scanPlaythrough(ctx context.Context, q DBTX, query string, playerID, gamebookID uuid.UUID) (*models.Playthrough, error) {
	pt := &models.Playthrough{}
	err := q.QueryRow(ctx, query, playerID, gamebookID).Scan(
		&pt.ID,
		&pt.PlayerID,
		&pt.GamebookID,
		&pt.CurrentNodeKey,
		&pt.Flags,
		&pt.IsFinished,
		&pt.StartedAt,
		&pt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get playthrough",
			zap.Stringer("playerID", playerID),
			zap.Stringer("gamebookID", gamebookID),
			zap.Error(err))
		return nil, err
	}
	return pt, nil
}

func (r *pgPlaythroughRepository) Create(ctx context.Context, q DBTX, pt *models.Playthrough) error {
	_, err := q.Exec(ctx, insertPlaythroughQuery,
		pt.ID,
		pt.PlayerID,
		pt.GamebookID,
		pt.CurrentNodeKey,
		pt.Flags,
		pt.IsFinished,
		pt.StartedAt,
		pt.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on (player_id, gamebook_id)
			return models.ErrAlreadyExists
		}
		r.logger.Error("Failed to insert playthrough",
			zap.Stringer("playerID", pt.PlayerID),
			zap.Stringer("gamebookID", pt.GamebookID),
			zap.Error(err))
		return err
	}
	r.logger.Debug("Playthrough created",
		zap.Stringer("playerID", pt.PlayerID),
		zap.Stringer("gamebookID", pt.GamebookID))
	return nil
}

func (r *pgPlaythroughRepository) Update(ctx context.Context, q DBTX, pt *models.Playthrough) error {
	pt.UpdatedAt = time.Now().UTC()
	tag, err := q.Exec(ctx, updatePlaythroughQuery,
		pt.ID,
		pt.CurrentNodeKey,
		pt.Flags,
		pt.IsFinished,
		pt.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update playthrough", zap.Stringer("id", pt.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
