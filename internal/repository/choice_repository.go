package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gamebook-hub/internal/models"
)

// ChoiceRepository определяет доступ к ребрам графа.
type ChoiceRepository interface {
	// ListByGamebook возвращает все выборы книги, сгруппированные по исходным
	// узлам; внутри узла выборы идут в авторском порядке.
	ListByGamebook(ctx context.Context, q DBTX, gamebookID uuid.UUID) (map[uuid.UUID][]models.Choice, error)
	CreateBatch(ctx context.Context, q DBTX, choices []*models.Choice) error
	// DeleteByGamebook вызывается раньше удаления узлов: сначала дети, потом родители.
	DeleteByGamebook(ctx context.Context, q DBTX, gamebookID uuid.UUID) error
}

type pgChoiceRepository struct {
	logger *zap.Logger
}

// NewPgChoiceRepository creates a new repository instance.
func NewPgChoiceRepository(logger *zap.Logger) ChoiceRepository {
	return &pgChoiceRepository{logger: logger.Named("PgChoiceRepo")}
}

const listChoicesByGamebookQuery = `
SELECT c.id, c.from_node_id, c.label, c.to_node_key, COALESCE(c.requires, ''), COALESCE(c.sets, ''), c.display_order
FROM game_choices c
JOIN game_nodes n ON n.id = c.from_node_id
WHERE n.gamebook_id = $1
ORDER BY c.display_order, c.id`

const insertChoiceQuery = `
INSERT INTO game_choices (id, from_node_id, label, to_node_key, requires, sets, display_order)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)`

const deleteChoicesByGamebookQuery = `
DELETE FROM game_choices
WHERE from_node_id IN (SELECT id FROM game_nodes WHERE gamebook_id = $1)`

func (r *pgChoiceRepository) ListByGamebook(ctx context.Context, q DBTX, gamebookID uuid.UUID) (map[uuid.UUID][]models.Choice, error) {
	rows, err := q.Query(ctx, listChoicesByGamebookQuery, gamebookID)
	if err != nil {
		r.logger.Error("Failed to list choices", zap.Stringer("gamebookID", gamebookID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	byNode := make(map[uuid.UUID][]models.Choice)
	for rows.Next() {
		var choice models.Choice
		if err := rows.Scan(&choice.ID, &choice.FromNodeID, &choice.Label, &choice.ToNodeKey, &choice.Requires, &choice.Sets, &choice.Order); err != nil {
			r.logger.Error("Failed to scan choice row", zap.Error(err))
			return nil, err
		}
		byNode[choice.FromNodeID] = append(byNode[choice.FromNodeID], choice)
	}
	return byNode, rows.Err()
}

func (r *pgChoiceRepository) CreateBatch(ctx context.Context, q DBTX, choices []*models.Choice) error {
	for _, choice := range choices {
		if choice.ID == uuid.Nil {
			choice.ID = uuid.New()
		}
		if _, err := q.Exec(ctx, insertChoiceQuery,
			choice.ID,
			choice.FromNodeID,
			choice.Label,
			choice.ToNodeKey,
			choice.Requires,
			choice.Sets,
			choice.Order,
		); err != nil {
			r.logger.Error("Failed to insert choice",
				zap.Stringer("fromNodeID", choice.FromNodeID),
				zap.String("label", choice.Label),
				zap.Error(err))
			return err
		}
	}
	return nil
}

func (r *pgChoiceRepository) DeleteByGamebook(ctx context.Context, q DBTX, gamebookID uuid.UUID) error {
	if _, err := q.Exec(ctx, deleteChoicesByGamebookQuery, gamebookID); err != nil {
		r.logger.Error("Failed to delete choices", zap.Stringer("gamebookID", gamebookID), zap.Error(err))
		return err
	}
	return nil
}
