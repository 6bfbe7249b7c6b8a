package models

import (
	"time"

	"github.com/lib/pq"
)

// News is one article ingested from the market trends provider.
type News struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	ArticleTitle    string         `gorm:"column:article_title;type:text" json:"article_title"`
	ArticleURL      string         `gorm:"column:article_url;type:text" json:"article_url"`
	ArticlePhotoURL string         `gorm:"column:article_photo_url;type:text" json:"article_photo_url"`
	Source          string         `gorm:"column:source;index" json:"source"`
	PostTimeUTC     time.Time      `gorm:"column:post_time_utc;not null;index" json:"post_time_utc"`
	StocksInNews    pq.StringArray `gorm:"column:stocks_in_news;type:text[]" json:"stocks_in_news"`
}

func (News) TableName() string {
	return "news"
}

// NewsItem is the projection served by the news listing.
type NewsItem struct {
	ID              uint      `gorm:"column:id" json:"id"`
	ArticleTitle    string    `gorm:"column:article_title" json:"article_title"`
	ArticleURL      string    `gorm:"column:article_url" json:"article_url"`
	ArticlePhotoURL string    `gorm:"column:article_photo_url" json:"article_photo_url"`
	Source          string    `gorm:"column:source" json:"source"`
	PostTimeUTC     time.Time `gorm:"column:post_time_utc" json:"post_time_utc"`
}
