package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/JerryLinyx/MarketDigest/mailer"
	"github.com/gin-gonic/gin"
)

type DigestComposer interface {
	Compose(ctx context.Context) ([]mailer.Article, error)
}

type EmailController struct {
	composer DigestComposer
	sender   mailer.Sender
	subject  string
}

func NewEmailController(composer DigestComposer, sender mailer.Sender, subject string) *EmailController {
	return &EmailController{composer: composer, sender: sender, subject: subject}
}

type sendEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendEmail mails the current digest to a single address.
func (h *EmailController) SendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required."})
		return
	}

	articles, err := h.composer.Compose(c.Request.Context())
	if err != nil {
		slog.Error("failed to compose digest", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email."})
		return
	}

	if err := h.sender.Send(c.Request.Context(), req.Email, h.subject, articles); err != nil {
		slog.Error("failed to send digest", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully!"})
}
