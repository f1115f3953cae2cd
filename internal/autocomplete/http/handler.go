package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vslstudio/vsl-backend/internal/autocomplete/domain"
	"github.com/vslstudio/vsl-backend/internal/logging"
)

// Suggester is the service behind the endpoint.
type Suggester interface {
	Suggest(ctx context.Context, clientKey, fragment string) (string, error)
}

// Handler serves the autocomplete endpoint
type Handler struct {
	svc Suggester
}

// New creates a new Handler
func New(svc Suggester) *Handler {
	return &Handler{svc: svc}
}

// Register registers the autocomplete routes
func (h *Handler) Register(rg gin.IRouter) {
	rg.POST("/autocomplete", h.Complete)
}

// Complete returns a continuation for the posted prompt
func (h *Handler) Complete(c *gin.Context) {
	var body domain.CompletionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	suggestion, err := h.svc.Suggest(c.Request.Context(), c.ClientIP(), body.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyPrompt), errors.Is(err, domain.ErrPromptTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		default:
			logging.NewLogger(c.Request.Context()).LogError("autocomplete", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate autocomplete"})
		}
		return
	}

	c.JSON(http.StatusOK, domain.CompletionResponse{Suggestion: suggestion})
}
