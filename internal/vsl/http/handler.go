package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vslstudio/vsl-backend/internal/logging"
	"github.com/vslstudio/vsl-backend/internal/vsl/domain"
)

// Generator produces a VSL from the form.
type Generator interface {
	Generate(ctx context.Context, req domain.Request) (*domain.Result, error)
}

// Handler serves the VSL generation endpoint
type Handler struct {
	svc Generator
}

// New creates a new Handler
func New(svc Generator) *Handler {
	return &Handler{svc: svc}
}

// Register registers the VSL routes
func (h *Handler) Register(rg gin.IRouter) {
	rg.POST("/generate-vsl", h.Generate)
}

// Generate writes a VSL script for the posted form
func (h *Handler) Generate(c *gin.Context) {
	var req domain.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Todos os campos obrigatórios devem ser preenchidos"})
		return
	}

	res, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Todos os campos obrigatórios devem ser preenchidos"})
			return
		}
		logging.NewLogger(c.Request.Context()).LogError("generate_vsl", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor. Tente novamente."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": res})
}
