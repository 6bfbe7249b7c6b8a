package repository

import (
	"context"
	"fmt"

	"github.com/JerryLinyx/MarketDigest/models"
	"gorm.io/gorm"
)

// NewsStore persists ingested news and serves it newest first.
type NewsStore interface {
	Create(ctx context.Context, news *models.News) error
	// List returns projections ordered by post time, newest first. A limit
	// of zero or less returns every record.
	List(ctx context.Context, limit int) ([]models.NewsItem, error)
}

type GormNewsStore struct {
	db *gorm.DB
}

func NewNewsStore(db *gorm.DB) *GormNewsStore {
	return &GormNewsStore{db: db}
}

func (s *GormNewsStore) Create(ctx context.Context, news *models.News) error {
	if err := s.db.WithContext(ctx).Create(news).Error; err != nil {
		return fmt.Errorf("insert news: %w", err)
	}
	return nil
}

func (s *GormNewsStore) List(ctx context.Context, limit int) ([]models.NewsItem, error) {
	items := []models.NewsItem{}
	if err := s.findLatest(ctx, limit, &items).Error; err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return items, nil
}

func (s *GormNewsStore) findLatest(ctx context.Context, limit int, dest *[]models.NewsItem) *gorm.DB {
	query := s.db.WithContext(ctx).
		Model(&models.News{}).
		Select("id", "article_title", "article_url", "article_photo_url", "source", "post_time_utc").
		Order("post_time_utc DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query.Find(dest)
}
