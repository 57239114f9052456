package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gamebook-hub/internal/models"
	"gamebook-hub/internal/repository"
	"gamebook-hub/internal/utils"
)

// ImportService — транзакционный импорт/upsert графа книги из внешнего
// документа. Операция атомарна: либо виден весь новый граф, либо ничего.
type ImportService interface {
	Import(ctx context.Context, doc *models.GamebookImport, overwrite bool) (*models.Gamebook, error)
}

type importServiceImpl struct {
	gamebooks repository.GamebookRepository
	nodes     repository.NodeRepository
	choices   repository.ChoiceRepository
	graphs    *GraphProvider
	txManager repository.TxManager
	logger    *zap.Logger
}

// NewImportService создает сервис импорта.
func NewImportService(
	gamebooks repository.GamebookRepository,
	nodes repository.NodeRepository,
	choices repository.ChoiceRepository,
	graphs *GraphProvider,
	txManager repository.TxManager,
	logger *zap.Logger,
) ImportService {
	return &importServiceImpl{
		gamebooks: gamebooks,
		nodes:     nodes,
		choices:   choices,
		graphs:    graphs,
		txManager: txManager,
		logger:    logger.Named("ImportService"),
	}
}

// Import валидирует документ до каких-либо записей, затем в одной транзакции:
// upsert метаданных книги; при overwrite — удаление старых выборов, затем
// узлов; вставка новых узлов с построением отображения key → id; вставка
// выборов через это отображение. toNodeKey остается строкой и в
// идентификатор не разрешается — ссылка разрешается лениво при переходе.
func (s *importServiceImpl) Import(ctx context.Context, doc *models.GamebookImport, overwrite bool) (*models.Gamebook, error) {
	if verrs := validateImport(doc); len(verrs) > 0 {
		return nil, verrs
	}

	slug := utils.Slugify(doc.Slug)
	log := s.logger.With(zap.String("slug", slug), zap.Bool("overwrite", overwrite))

	var gb *models.Gamebook
	err := s.txManager.WithTransaction(ctx, func(q repository.DBTX) error {
		now := time.Now().UTC()

		existing, err := s.gamebooks.GetBySlug(ctx, q, slug)
		if errors.Is(err, models.ErrNotFound) {
			gb = &models.Gamebook{
				ID:          uuid.New(),
				Title:       doc.Title,
				Slug:        slug,
				Description: doc.Description,
				CoverURL:    doc.CoverURL,
				IsPublished: doc.IsPublished,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if doc.IsPublished {
				gb.PublishedAt = &now
			}
			if err := s.gamebooks.Create(ctx, q, gb); err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			gb = existing
			gb.Title = doc.Title
			gb.Description = doc.Description
			gb.CoverURL = doc.CoverURL
			if doc.IsPublished && !gb.IsPublished {
				gb.PublishedAt = &now
			}
			gb.IsPublished = doc.IsPublished
			gb.UpdatedAt = now
			if err := s.gamebooks.UpdateMeta(ctx, q, gb); err != nil {
				return err
			}
			if overwrite {
				// Сначала дети, потом родители: выборы ссылаются на узлы.
				if err := s.choices.DeleteByGamebook(ctx, q, gb.ID); err != nil {
					return err
				}
				if err := s.nodes.DeleteByGamebook(ctx, q, gb.ID); err != nil {
					return err
				}
			}
		}

		// Фаза 1: узлы. Выборы смогут сослаться на идентификаторы только
		// после того, как узлы записаны.
		nodes := make([]*models.Node, 0, len(doc.Nodes))
		for _, n := range doc.Nodes {
			nodes = append(nodes, &models.Node{
				ID:         uuid.New(),
				GamebookID: gb.ID,
				Key:        n.Key,
				Text:       n.Text,
				IsEnding:   n.IsEnding,
			})
		}
		if err := s.nodes.CreateBatch(ctx, q, nodes); err != nil {
			return err
		}

		keyToID := make(map[string]uuid.UUID, len(nodes))
		for _, node := range nodes {
			keyToID[strings.ToLower(node.Key)] = node.ID
		}

		// Фаза 2: выборы через отображение key → id.
		var choices []*models.Choice
		for _, n := range doc.Nodes {
			fromID, ok := keyToID[strings.ToLower(n.Key)]
			if !ok {
				// Не должно случаться после фазы 1; пропуск вместо падения.
				log.Warn("Owning node key missing from key map, skipping its choices",
					zap.String("nodeKey", n.Key))
				continue
			}
			for i, c := range n.Choices {
				choices = append(choices, &models.Choice{
					ID:         uuid.New(),
					FromNodeID: fromID,
					Label:      c.Label,
					ToNodeKey:  c.ToNodeKey,
					Requires:   c.Requires,
					Sets:       c.Sets,
					Order:      i,
				})
			}
		}
		return s.choices.CreateBatch(ctx, q, choices)
	})
	if err != nil {
		log.Error("Gamebook import failed, transaction rolled back", zap.Error(err))
		return nil, err
	}

	s.graphs.Invalidate(ctx, slug)
	log.Info("Gamebook imported", zap.Stringer("gamebookID", gb.ID), zap.Int("nodes", len(doc.Nodes)))
	return gb, nil
}

// validateImport проверяет предусловия импорта. Любая ошибка здесь означает,
// что ни одной записи сделано не будет.
func validateImport(doc *models.GamebookImport) models.ValidationErrors {
	var verrs models.ValidationErrors
	if strings.TrimSpace(doc.Slug) == "" {
		verrs = append(verrs, models.FieldError{Field: "slug", Message: "slug is required"})
	}
	hasStart := false
	for _, n := range doc.Nodes {
		if strings.EqualFold(strings.TrimSpace(n.Key), models.StartNodeKey) {
			hasStart = true
			break
		}
	}
	if !hasStart {
		verrs = append(verrs, models.FieldError{Field: "nodes", Message: `a node with key "start" is required`})
	}
	return verrs
}
