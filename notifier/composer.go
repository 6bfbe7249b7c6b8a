package notifier

import (
	"context"

	"github.com/JerryLinyx/MarketDigest/mailer"
	"github.com/JerryLinyx/MarketDigest/models"
	"github.com/samber/lo"
)

type NewsLister interface {
	List(ctx context.Context, limit int) ([]models.NewsItem, error)
}

// Composer builds the digest from the most recent news, falling back to the
// static sample digest while nothing has been ingested.
type Composer struct {
	news  NewsLister
	limit int
}

func NewComposer(news NewsLister, limit int) *Composer {
	return &Composer{news: news, limit: limit}
}

func (c *Composer) Compose(ctx context.Context) ([]mailer.Article, error) {
	items, err := c.news.List(ctx, c.limit)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return mailer.SampleArticles(), nil
	}
	return lo.Map(items, func(item models.NewsItem, _ int) mailer.Article {
		return mailer.NewsArticle(item)
	}), nil
}
