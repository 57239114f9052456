package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gamebook-hub/internal/models"
)

// GamebookRepository определяет доступ к книгам и их схемам атрибутов.
type GamebookRepository interface {
	GetBySlug(ctx context.Context, q DBTX, slug string) (*models.Gamebook, error)
	// GetPublishedBySlug возвращает книгу только если она опубликована.
	GetPublishedBySlug(ctx context.Context, q DBTX, slug string) (*models.Gamebook, error)
	ListPublished(ctx context.Context, q DBTX) ([]models.Gamebook, error)
	Create(ctx context.Context, q DBTX, gb *models.Gamebook) error
	UpdateMeta(ctx context.Context, q DBTX, gb *models.Gamebook) error
	GetAttributes(ctx context.Context, q DBTX, gamebookID uuid.UUID) ([]models.AttributeDefinition, error)
	// ReplaceAttributes замещает схему атрибутов книги целиком.
	ReplaceAttributes(ctx context.Context, q DBTX, gamebookID uuid.UUID, defs []models.AttributeDefinition) error
}

type pgGamebookRepository struct {
	logger *zap.Logger
}

// NewPgGamebookRepository creates a new repository instance.
func NewPgGamebookRepository(logger *zap.Logger) GamebookRepository {
	return &pgGamebookRepository{logger: logger.Named("PgGamebookRepo")}
}

const gamebookColumns = `id, title, slug, COALESCE(description, ''), COALESCE(cover_url, ''), is_published, published_at, created_at, updated_at`

const getGamebookBySlugQuery = `
SELECT ` + gamebookColumns + `
FROM gamebooks
WHERE lower(slug) = lower($1)`

const getPublishedGamebookBySlugQuery = `
SELECT ` + gamebookColumns + `
FROM gamebooks
WHERE lower(slug) = lower($1) AND is_published = TRUE`

const listPublishedGamebooksQuery = `
SELECT ` + gamebookColumns + `
FROM gamebooks
WHERE is_published = TRUE
ORDER BY published_at DESC NULLS LAST, created_at DESC`

const insertGamebookQuery = `
INSERT INTO gamebooks (id, title, slug, description, cover_url, is_published, published_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`

const updateGamebookMetaQuery = `
UPDATE gamebooks
SET title = $2, description = $3, cover_url = $4, is_published = $5, published_at = $6, updated_at = $7
WHERE id = $1`

func (r *pgGamebookRepository) GetBySlug(ctx context.Context, q DBTX, slug string) (*models.Gamebook, error) {
	return r.scanGamebook(ctx, q, getGamebookBySlugQuery, slug)
}

func (r *pgGamebookRepository) GetPublishedBySlug(ctx context.Context, q DBTX, slug string) (*models.Gamebook, error) {
	return r.scanGamebook(ctx, q, getPublishedGamebookBySlugQuery, slug)
}

func (r *pgGamebookRepository) scanGamebook(ctx context.Context, q DBTX, query, slug string) (*models.Gamebook, error) {
	gb := &models.Gamebook{}
	err := q.QueryRow(ctx, query, slug).Scan(
		&gb.ID,
		&gb.Title,
		&gb.Slug,
		&gb.Description,
		&gb.CoverURL,
		&gb.IsPublished,
		&gb.PublishedAt,
		&gb.CreatedAt,
		&gb.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get gamebook by slug", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return gb, nil
}

func (r *pgGamebookRepository) ListPublished(ctx context.Context, q DBTX) ([]models.Gamebook, error) {
	rows, err := q.Query(ctx, listPublishedGamebooksQuery)
	if err != nil {
		r.logger.Error("Failed to list published gamebooks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var gamebooks []models.Gamebook
	for rows.Next() {
		var gb models.Gamebook
		if err := rows.Scan(
			&gb.ID,
			&gb.Title,
			&gb.Slug,
			&gb.Description,
			&gb.CoverURL,
			&gb.IsPublished,
			&gb.PublishedAt,
			&gb.CreatedAt,
			&gb.UpdatedAt,
		); err != nil {
			r.logger.Error("Failed to scan gamebook row", zap.Error(err))
			return nil, err
		}
		gamebooks = append(gamebooks, gb)
	}
	return gamebooks, rows.Err()
}

func (r *pgGamebookRepository) Create(ctx context.Context, q DBTX, gb *models.Gamebook) error {
	_, err := q.Exec(ctx, insertGamebookQuery,
		gb.ID,
		gb.Title,
		gb.Slug,
		gb.Description,
		gb.CoverURL,
		gb.IsPublished,
		gb.PublishedAt,
		gb.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert gamebook", zap.String("slug", gb.Slug), zap.Error(err))
		return err
	}
	r.logger.Debug("Gamebook created", zap.String("slug", gb.Slug), zap.Stringer("id", gb.ID))
	return nil
}

func (r *pgGamebookRepository) UpdateMeta(ctx context.Context, q DBTX, gb *models.Gamebook) error {
	tag, err := q.Exec(ctx, updateGamebookMetaQuery,
		gb.ID,
		gb.Title,
		gb.Description,
		gb.CoverURL,
		gb.IsPublished,
		gb.PublishedAt,
		gb.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update gamebook metadata", zap.Stringer("id", gb.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

const getAttributesQuery = `
SELECT id, gamebook_id, key, label, type, min_value, max_value, default_value, visible, display_order, COALESCE(enum_options, '')
FROM attribute_definitions
WHERE gamebook_id = $1
ORDER BY display_order, key`

const deleteAttributesQuery = `
DELETE FROM attribute_definitions WHERE gamebook_id = $1`

const insertAttributeQuery = `
INSERT INTO attribute_definitions (id, gamebook_id, key, label, type, min_value, max_value, default_value, visible, display_order, enum_options)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

func (r *pgGamebookRepository) GetAttributes(ctx context.Context, q DBTX, gamebookID uuid.UUID) ([]models.AttributeDefinition, error) {
	rows, err := q.Query(ctx, getAttributesQuery, gamebookID)
	if err != nil {
		r.logger.Error("Failed to get attribute definitions", zap.Stringer("gamebookID", gamebookID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var defs []models.AttributeDefinition
	for rows.Next() {
		var def models.AttributeDefinition
		if err := rows.Scan(
			&def.ID,
			&def.GamebookID,
			&def.Key,
			&def.Label,
			&def.Type,
			&def.Min,
			&def.Max,
			&def.Default,
			&def.Visible,
			&def.Order,
			&def.EnumOptions,
		); err != nil {
			r.logger.Error("Failed to scan attribute definition", zap.Error(err))
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func (r *pgGamebookRepository) ReplaceAttributes(ctx context.Context, q DBTX, gamebookID uuid.UUID, defs []models.AttributeDefinition) error {
	if _, err := q.Exec(ctx, deleteAttributesQuery, gamebookID); err != nil {
		r.logger.Error("Failed to delete attribute definitions", zap.Stringer("gamebookID", gamebookID), zap.Error(err))
		return err
	}
	for i := range defs {
		def := &defs[i]
		if def.ID == uuid.Nil {
			def.ID = uuid.New()
		}
		def.GamebookID = gamebookID
		if _, err := q.Exec(ctx, insertAttributeQuery,
			def.ID,
			def.GamebookID,
			def.Key,
			def.Label,
			def.Type,
			def.Min,
			def.Max,
			def.Default,
			def.Visible,
			def.Order,
			def.EnumOptions,
		); err != nil {
			r.logger.Error("Failed to insert attribute definition",
				zap.Stringer("gamebookID", gamebookID),
				zap.String("key", def.Key),
				zap.Error(err))
			return err
		}
	}
	return nil
}
