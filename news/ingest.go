package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JerryLinyx/MarketDigest/models"
)

// Store is the write side the ingestor needs.
type Store interface {
	Create(ctx context.Context, news *models.News) error
}

type Ingestor struct {
	provider Provider
	store    Store
}

func NewIngestor(provider Provider, store Store) *Ingestor {
	return &Ingestor{provider: provider, store: store}
}

// Result carries the untouched provider payload and how many records were saved.
type Result struct {
	Data  json.RawMessage
	Saved int
}

// Ingest fetches the provider payload and stores every news item in order.
// Records saved before a failure stay saved; the returned Result reports them.
func (i *Ingestor) Ingest(ctx context.Context) (*Result, error) {
	trends, err := i.provider.MarketTrends(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Data: trends.Raw}
	for idx, item := range trends.News {
		record, err := toRecord(item)
		if err != nil {
			slog.Error("invalid news item", "index", idx, "error", err, "saved", result.Saved)
			return result, fmt.Errorf("news item %d: %w", idx, err)
		}
		if err := i.store.Create(ctx, record); err != nil {
			slog.Error("failed to save news item", "index", idx, "error", err, "saved", result.Saved)
			return result, fmt.Errorf("news item %d: %w", idx, err)
		}
		result.Saved++
	}

	slog.Info("market trends ingested", "received", len(trends.News), "saved", result.Saved)
	return result, nil
}

func toRecord(item Item) (*models.News, error) {
	postedAt, err := ParsePostTime(item.PostTimeUTC)
	if err != nil {
		return nil, err
	}
	stocks := item.Stocks
	if stocks == nil {
		stocks = []string{}
	}
	return &models.News{
		ArticleTitle:    item.Title,
		ArticleURL:      item.ArticleURL,
		ArticlePhotoURL: item.PhotoURL,
		Source:          item.Source,
		PostTimeUTC:     postedAt,
		StocksInNews:    stocks,
	}, nil
}

var postTimeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParsePostTime reads the provider's post_time_utc. Values without a zone are
// taken as UTC.
func ParsePostTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("post_time_utc is empty")
	}
	for _, layout := range postTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("post_time_utc %q is not a recognized time", value)
}
