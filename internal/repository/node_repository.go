package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gamebook-hub/internal/models"
)

// NodeRepository определяет доступ к узлам графа.
type NodeRepository interface {
	ListByGamebook(ctx context.Context, q DBTX, gamebookID uuid.UUID) ([]models.Node, error)
	// CreateBatch вставляет узлы, присваивая идентификаторы на месте.
	CreateBatch(ctx context.Context, q DBTX, nodes []*models.Node) error
	DeleteByGamebook(ctx context.Context, q DBTX, gamebookID uuid.UUID) error
}

type pgNodeRepository struct {
	logger *zap.Logger
}

// NewPgNodeRepository creates a new repository instance.
func NewPgNodeRepository(logger *zap.Logger) NodeRepository {
	return &pgNodeRepository{logger: logger.Named("PgNodeRepo")}
}

const listNodesQuery = `
SELECT id, gamebook_id, key, text, is_ending
FROM game_nodes
WHERE gamebook_id = $1
ORDER BY key`

const insertNodeQuery = `
INSERT INTO game_nodes (id, gamebook_id, key, text, is_ending)
VALUES ($1, $2, $3, $4, $5)`

const deleteNodesByGamebookQuery = `
DELETE FROM game_nodes WHERE gamebook_id = $1`

func (r *pgNodeRepository) ListByGamebook(ctx context.Context, q DBTX, gamebookID uuid.UUID) ([]models.Node, error) {
	rows, err := q.Query(ctx, listNodesQuery, gamebookID)
	if err != nil {
		r.logger.Error("Failed to list nodes", zap.Stringer("gamebookID", gamebookID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var nodes []models.Node
	for rows.Next() {
		var node models.Node
		if err := rows.Scan(&node.ID, &node.GamebookID, &node.Key, &node.Text, &node.IsEnding); err != nil {
			r.logger.Error("Failed to scan node row", zap.Error(err))
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, rows.Err()
}

func (r *pgNodeRepository) CreateBatch(ctx context.Context, q DBTX, nodes []*models.Node) error {
	for _, node := range nodes {
		if node.ID == uuid.Nil {
			node.ID = uuid.New()
		}
		if _, err := q.Exec(ctx, insertNodeQuery, node.ID, node.GamebookID, node.Key, node.Text, node.IsEnding); err != nil {
			r.logger.Error("Failed to insert node",
				zap.Stringer("gamebookID", node.GamebookID),
				zap.String("key", node.Key),
				zap.Error(err))
			return err
		}
	}
	return nil
}

func (r *pgNodeRepository) DeleteByGamebook(ctx context.Context, q DBTX, gamebookID uuid.UUID) error {
	if _, err := q.Exec(ctx, deleteNodesByGamebookQuery, gamebookID); err != nil {
		r.logger.Error("Failed to delete nodes", zap.Stringer("gamebookID", gamebookID), zap.Error(err))
		return err
	}
	return nil
}
