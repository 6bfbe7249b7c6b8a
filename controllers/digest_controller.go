package controllers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/JerryLinyx/MarketDigest/mailer"
	"github.com/JerryLinyx/MarketDigest/notifier"
	"github.com/gin-gonic/gin"
)

type Broadcaster interface {
	Notify(ctx context.Context, subject string, articles []mailer.Article) (*notifier.Report, error)
}

type DigestController struct {
	composer    DigestComposer
	broadcaster Broadcaster
	subject     string
}

func NewDigestController(composer DigestComposer, broadcaster Broadcaster, subject string) *DigestController {
	return &DigestController{composer: composer, broadcaster: broadcaster, subject: subject}
}

type broadcastRequest struct {
	Subject string `json:"subject"`
}

// Broadcast sends the digest to every registered user right away.
func (h *DigestController) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	subject := req.Subject
	if subject == "" {
		subject = h.subject
	}

	articles, err := h.composer.Compose(c.Request.Context())
	if err != nil {
		slog.Error("failed to compose digest", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compose digest", "details": err.Error()})
		return
	}

	report, err := h.broadcaster.Notify(c.Request.Context(), subject, articles)
	if errors.Is(err, notifier.ErrDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Bulk email is disabled"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send digest", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
