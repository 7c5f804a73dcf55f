package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"trivia-api/internal/cache"
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedCategoryRepository is a read-through cache in front of a CategoryRepository.
// Cache failures are logged and never fail a request.
type CachedCategoryRepository struct {
	next  domain.CategoryRepository
	store domain.Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewCachedCategoryRepository decorates next with store.
func NewCachedCategoryRepository(next domain.CategoryRepository, store domain.Cache, ttl time.Duration) *CachedCategoryRepository {
	return &CachedCategoryRepository{next: next, store: store, ttl: ttl}
}

func categoryListKey(order domain.CategoryOrder) string {
	return cache.GenerateCacheKey("category", "list", string(order))
}

// ListCategories implements domain.CategoryRepository
func (r *CachedCategoryRepository) ListCategories(ctx context.Context, order domain.CategoryOrder) ([]*domain.Category, error) {
	key := categoryListKey(order)

	if categories, ok := r.fromCache(ctx, key); ok {
		return categories, nil
	}

	// The flight is shared, so one caller going away must not cancel it for the rest.
	loadCtx := context.WithoutCancel(ctx)
	v, err, shared := r.group.Do(key, func() (interface{}, error) {
		categories, err := r.next.ListCategories(loadCtx, order)
		if err != nil {
			return nil, err
		}
		r.toCache(loadCtx, key, categories)
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Category load shared with a concurrent caller", zap.String("key", key))
	}
	return v.([]*domain.Category), nil
}

// Ping implements domain.CategoryRepository
func (r *CachedCategoryRepository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

func (r *CachedCategoryRepository) fromCache(ctx context.Context, key string) ([]*domain.Category, bool) {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Category cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var cached []dto.CategoryResponse
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		logger.Get().Warn("Discarding malformed category cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	categories := make([]*domain.Category, len(cached))
	for i, c := range cached {
		categories[i] = &domain.Category{ID: c.ID, Type: c.Type}
	}
	return categories, true
}

func (r *CachedCategoryRepository) toCache(ctx context.Context, key string, categories []*domain.Category) {
	data, err := json.Marshal(dto.ToCategoryResponses(categories))
	if err != nil {
		logger.Get().Warn("Failed to encode categories for cache", zap.Error(err))
		return
	}
	if err := r.store.Set(ctx, key, string(data), r.ttl); err != nil {
		logger.Get().Warn("Category cache write failed", zap.String("key", key), zap.Error(err))
	}
}
