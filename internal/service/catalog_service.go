package service

import (
	"context"

	"go.uber.org/zap"

	"gamebook-hub/internal/models"
	"gamebook-hub/internal/repository"
)

// CatalogService отдает публичный каталог опубликованных книг.
type CatalogService interface {
	ListPublished(ctx context.Context) ([]models.Gamebook, error)
}

type catalogServiceImpl struct {
	db        repository.DBTX
	gamebooks repository.GamebookRepository
	logger    *zap.Logger
}

// NewCatalogService создает сервис каталога.
func NewCatalogService(db repository.DBTX, gamebooks repository.GamebookRepository, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{db: db, gamebooks: gamebooks, logger: logger.Named("CatalogService")}
}

func (s *catalogServiceImpl) ListPublished(ctx context.Context) ([]models.Gamebook, error) {
	books, err := s.gamebooks.ListPublished(ctx, s.db)
	if err != nil {
		s.logger.Error("Failed to list published gamebooks", zap.Error(err))
		return nil, err
	}
	return books, nil
}
