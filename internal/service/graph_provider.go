package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"gamebook-hub/internal/models"
	"gamebook-hub/internal/repository"
)

// GraphProvider собирает полный граф опубликованной книги, читая сквозь кэш.
// Промах кэша приводит к сборке графа из БД и его записи в кэш best-effort:
// ошибка кэша не мешает игровому циклу.
type GraphProvider struct {
	db        repository.DBTX
	gamebooks repository.GamebookRepository
	nodes     repository.NodeRepository
	choices   repository.ChoiceRepository
	cache     repository.GraphCache
	logger    *zap.Logger
}

func NewGraphProvider(
	db repository.DBTX,
	gamebooks repository.GamebookRepository,
	nodes repository.NodeRepository,
	choices repository.ChoiceRepository,
	cache repository.GraphCache,
	logger *zap.Logger,
) *GraphProvider {
	return &GraphProvider{
		db:        db,
		gamebooks: gamebooks,
		nodes:     nodes,
		choices:   choices,
		cache:     cache,
		logger:    logger.Named("GraphProvider"),
	}
}

// GetPublishedGraph возвращает граф опубликованной книги по slug.
// Неопубликованные и несуществующие книги дают models.ErrGamebookNotFound.
func (p *GraphProvider) GetPublishedGraph(ctx context.Context, slug string) (*models.GamebookGraph, error) {
	if p.cache != nil {
		if graph, err := p.cache.Get(ctx, slug); err == nil {
			return graph, nil
		}
	}

	gb, err := p.gamebooks.GetPublishedBySlug(ctx, p.db, slug)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrGamebookNotFound
		}
		return nil, err
	}

	graph, err := p.assembleGraph(ctx, gb)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, graph); err != nil {
			p.logger.Warn("Failed to cache gamebook graph", zap.String("slug", slug), zap.Error(err))
		}
	}
	return graph, nil
}

func (p *GraphProvider) assembleGraph(ctx context.Context, gb *models.Gamebook) (*models.GamebookGraph, error) {
	attrs, err := p.gamebooks.GetAttributes(ctx, p.db, gb.ID)
	if err != nil {
		return nil, err
	}
	nodes, err := p.nodes.ListByGamebook(ctx, p.db, gb.ID)
	if err != nil {
		return nil, err
	}
	choicesByNode, err := p.choices.ListByGamebook(ctx, p.db, gb.ID)
	if err != nil {
		return nil, err
	}
	for i := range nodes {
		nodes[i].Choices = choicesByNode[nodes[i].ID]
	}
	return &models.GamebookGraph{
		Gamebook:   *gb,
		Attributes: attrs,
		Nodes:      nodes,
	}, nil
}

// Invalidate сбрасывает кэшированный граф после авторских изменений.
func (p *GraphProvider) Invalidate(ctx context.Context, slug string) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Invalidate(ctx, slug); err != nil {
		p.logger.Warn("Failed to invalidate gamebook graph cache", zap.String("slug", slug), zap.Error(err))
	}
}
