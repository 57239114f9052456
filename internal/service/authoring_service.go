package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gamebook-hub/internal/models"
	"gamebook-hub/internal/repository"
	"gamebook-hub/internal/utils"
)

// AuthoringService — авторские операции над книгой: замена схемы атрибутов.
type AuthoringService interface {
	ReplaceAttributeSchema(ctx context.Context, slug string, defs []models.AttributeDefinition) ([]models.AttributeDefinition, error)
}

type authoringServiceImpl struct {
	db        repository.DBTX
	gamebooks repository.GamebookRepository
	graphs    *GraphProvider
	txManager repository.TxManager
	logger    *zap.Logger
}

// NewAuthoringService создает сервис авторских операций.
func NewAuthoringService(
	db repository.DBTX,
	gamebooks repository.GamebookRepository,
	graphs *GraphProvider,
	txManager repository.TxManager,
	logger *zap.Logger,
) AuthoringService {
	return &authoringServiceImpl{
		db:        db,
		gamebooks: gamebooks,
		graphs:    graphs,
		txManager: txManager,
		logger:    logger.Named("AuthoringService"),
	}
}

// ReplaceAttributeSchema нормализует и валидирует присланный лист
// характеристик и атомарно заменяет им текущую схему книги.
func (s *authoringServiceImpl) ReplaceAttributeSchema(ctx context.Context, slug string, defs []models.AttributeDefinition) ([]models.AttributeDefinition, error) {
	gb, err := s.gamebooks.GetBySlug(ctx, s.db, slug)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrGamebookNotFound
		}
		return nil, err
	}

	normalized, verrs := normalizeAttributeSchema(defs)
	if len(verrs) > 0 {
		return nil, verrs
	}
	for i := range normalized {
		normalized[i].GamebookID = gb.ID
		normalized[i].Order = i
	}

	err = s.txManager.WithTransaction(ctx, func(q repository.DBTX) error {
		return s.gamebooks.ReplaceAttributes(ctx, q, gb.ID, normalized)
	})
	if err != nil {
		return nil, err
	}

	s.graphs.Invalidate(ctx, gb.Slug)
	s.logger.Info("Attribute schema replaced",
		zap.String("slug", gb.Slug), zap.Int("attributes", len(normalized)))
	return normalized, nil
}

// normalizeAttributeSchema приводит ключи к slug-форме, отбрасывает пустые
// записи и проверяет попарные инварианты типов. Ошибки возвращаются разом,
// с указанием поля.
func normalizeAttributeSchema(defs []models.AttributeDefinition) ([]models.AttributeDefinition, models.ValidationErrors) {
	var verrs models.ValidationErrors
	normalized := make([]models.AttributeDefinition, 0, len(defs))
	seen := make(map[string]bool, len(defs))

	for i, def := range defs {
		def.Label = strings.TrimSpace(def.Label)
		source := def.Key
		if strings.TrimSpace(source) == "" {
			source = def.Label
		}
		def.Key = utils.Slugify(source)
		if def.Key == "" {
			// Запись без ключа и подписи молча отбрасывается.
			continue
		}
		field := fmt.Sprintf("attributes[%d]", i)
		if seen[def.Key] {
			verrs = append(verrs, models.FieldError{
				Field:   field + ".key",
				Message: fmt.Sprintf("duplicate attribute key %q", def.Key),
			})
			continue
		}
		seen[def.Key] = true

		if def.Min != nil && def.Max != nil && *def.Min > *def.Max {
			verrs = append(verrs, models.FieldError{
				Field:   field + ".min",
				Message: "min must not exceed max",
			})
		}
		if def.Default != nil {
			if def.Min != nil && *def.Default < *def.Min {
				verrs = append(verrs, models.FieldError{
					Field:   field + ".default",
					Message: "default is below min",
				})
			}
			if def.Max != nil && *def.Default > *def.Max {
				verrs = append(verrs, models.FieldError{
					Field:   field + ".default",
					Message: "default is above max",
				})
			}
		}

		switch def.Type {
		case models.AttributeResource:
			if def.Max == nil {
				verrs = append(verrs, models.FieldError{
					Field:   field + ".max",
					Message: "resource attribute requires max",
				})
			}
			if def.Min != nil && *def.Min < 0 {
				verrs = append(verrs, models.FieldError{
					Field:   field + ".min",
					Message: "resource min must not be negative",
				})
			}
		case models.AttributeEnum:
			if len(def.Options()) < 2 {
				verrs = append(verrs, models.FieldError{
					Field:   field + ".enumOptions",
					Message: "enum attribute requires at least two options",
				})
			}
		case models.AttributeInteger, models.AttributeDecimal, models.AttributeBoolean, models.AttributeText:
			// Дополнительных требований нет.
		default:
			verrs = append(verrs, models.FieldError{
				Field:   field + ".type",
				Message: fmt.Sprintf("unknown attribute type %q", def.Type),
			})
		}

		normalized = append(normalized, def)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}
	return normalized, nil
}
