package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JerryLinyx/MarketDigest/models"
	"github.com/JerryLinyx/MarketDigest/news"
	"github.com/gin-gonic/gin"
)

type Ingestor interface {
	Ingest(ctx context.Context) (*news.Result, error)
}

type NewsLister interface {
	List(ctx context.Context, limit int) ([]models.NewsItem, error)
}

type NewsController struct {
	ingestor Ingestor
	news     NewsLister
}

func NewNewsController(ingestor Ingestor, news NewsLister) *NewsController {
	return &NewsController{ingestor: ingestor, news: news}
}

// MarketTrends pulls the provider's market trends and stores every news item.
func (h *NewsController) MarketTrends(c *gin.Context) {
	result, err := h.ingestor.Ingest(c.Request.Context())
	if err != nil {
		saved := 0
		if result != nil {
			saved = result.Saved
		}
		slog.Error("market trends ingestion failed", "error", err, "saved", saved)

		status := http.StatusInternalServerError
		message := "Failed to save market trends"
		if errors.Is(err, news.ErrUpstream) {
			status = http.StatusBadGateway
			message = "Failed to fetch market trends"
		}
		c.JSON(status, gin.H{"error": message, "details": err.Error(), "saved": saved})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Market trends fetched and news saved successfully",
		"data":    result.Data,
		"saved":   result.Saved,
	})
}

// GetNews lists every stored news record, most recent first.
func (h *NewsController) GetNews(c *gin.Context) {
	items, err := h.news.List(c.Request.Context(), 0)
	if err != nil {
		slog.Error("error fetching news", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "News fetched successfully",
		"data":    items,
	})
}
