package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gamebook-hub/internal/models"
)

// GraphCache кэширует полный граф опубликованной книги. Граф read-mostly и
// разделяется всеми игроками, поэтому кэшируется целиком по slug; инвалидация
// выполняется импортом и авторскими операциями.
type GraphCache interface {
	// Get возвращает models.ErrNotFound при промахе.
	Get(ctx context.Context, slug string) (*models.GamebookGraph, error)
	Set(ctx context.Context, graph *models.GamebookGraph) error
	Invalidate(ctx context.Context, slug string) error
}

// Compile-time check to ensure implementation satisfies the interface.
var _ GraphCache = (*redisGraphCache)(nil)

type redisGraphCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisGraphCache creates a new Redis-backed GraphCache.
func NewRedisGraphCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) GraphCache {
	return &redisGraphCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisGraphCache"),
	}
}

// Slug в ключе приводится к нижнему регистру: поиск в БД нечувствителен к
// регистру, и запись по "Cave" должна инвалидироваться импортом по "cave".
func graphCacheKey(slug string) string {
	return fmt.Sprintf("gamebook_graph:%s", strings.ToLower(slug))
}

func (c *redisGraphCache) Get(ctx context.Context, slug string) (*models.GamebookGraph, error) {
	payload, err := c.client.Get(ctx, graphCacheKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrNotFound
		}
		c.logger.Warn("Failed to read graph from cache", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}

	graph := &models.GamebookGraph{}
	if err := json.Unmarshal(payload, graph); err != nil {
		c.logger.Warn("Failed to unmarshal cached graph, treating as miss", zap.String("slug", slug), zap.Error(err))
		return nil, models.ErrNotFound
	}
	return graph, nil
}

func (c *redisGraphCache) Set(ctx context.Context, graph *models.GamebookGraph) error {
	payload, err := json.Marshal(graph)
	if err != nil {
		return fmt.Errorf("failed to marshal gamebook graph: %w", err)
	}
	if err := c.client.Set(ctx, graphCacheKey(graph.Gamebook.Slug), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to store graph in cache", zap.String("slug", graph.Gamebook.Slug), zap.Error(err))
		return err
	}
	c.logger.Debug("Graph cached", zap.String("slug", graph.Gamebook.Slug), zap.Duration("ttl", c.ttl))
	return nil
}

func (c *redisGraphCache) Invalidate(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, graphCacheKey(slug)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate cached graph", zap.String("slug", slug), zap.Error(err))
		return err
	}
	return nil
}
