package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/JerryLinyx/MarketDigest/models"
	"github.com/go-redis/redis/v8"
)

const (
	newsCacheKey    = "news:list"
	newsCacheGenKey = "news:list:gen"
)

// CachedNewsStore serves List from a redis hash whose fields are keyed by
// cache generation and limit. Every write bumps the generation, so a fill that
// read the store before the write lands under a field no reader asks for.
// Redis failures fall through to the store.
type CachedNewsStore struct {
	store NewsStore
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedNewsStore(store NewsStore, client *redis.Client, ttl time.Duration) *CachedNewsStore {
	return &CachedNewsStore{store: store, redis: client, ttl: ttl}
}

func (s *CachedNewsStore) Create(ctx context.Context, news *models.News) error {
	if err := s.store.Create(ctx, news); err != nil {
		return err
	}
	s.Invalidate(ctx)
	return nil
}

func (s *CachedNewsStore) List(ctx context.Context, limit int) ([]models.NewsItem, error) {
	if limit < 0 {
		limit = 0
	}
	gen, err := s.redis.Get(ctx, newsCacheGenKey).Result()
	if err == redis.Nil {
		gen = "0"
	} else if err != nil {
		slog.Warn("news cache generation read failed", "error", err)
		return s.store.List(ctx, limit)
	}
	field := gen + ":" + strconv.Itoa(limit)

	cached, err := s.redis.HGet(ctx, newsCacheKey, field).Bytes()
	if err == nil {
		var items []models.NewsItem
		if err := json.Unmarshal(cached, &items); err == nil {
			return items, nil
		}
		slog.Warn("discarding malformed news cache entry", "limit", limit)
	} else if err != redis.Nil {
		slog.Warn("news cache read failed", "error", err)
	}

	items, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(items)
	if err != nil {
		return items, nil
	}
	pipe := s.redis.TxPipeline()
	pipe.HSet(ctx, newsCacheKey, field, data)
	pipe.Expire(ctx, newsCacheKey, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("news cache write failed", "error", err)
	}
	return items, nil
}

func (s *CachedNewsStore) Invalidate(ctx context.Context) {
	pipe := s.redis.TxPipeline()
	pipe.Incr(ctx, newsCacheGenKey)
	pipe.Del(ctx, newsCacheKey)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("news cache invalidation failed", "error", err)
	}
}
