package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/artglass/internal/domain"
	"github.com/timmy/artglass/internal/service"
)

// ArtworkHandler exposes the facade's three operations to the overlay UI.
type ArtworkHandler struct {
	art *service.ArtService
}

// NewArtworkHandler creates a new artwork handler.
func NewArtworkHandler(art *service.ArtService) *ArtworkHandler {
	return &ArtworkHandler{art: art}
}

// Current handles GET /api/v1/artwork/current. No side effects; 204
// before anything has been served.
func (h *ArtworkHandler) Current(c *gin.Context) {
	art, ok := h.art.Current()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, art)
}

// Next handles POST /api/v1/artwork/next. May trigger network I/O when
// the prefetch queue is empty.
func (h *ArtworkHandler) Next(c *gin.Context) {
	art, err := h.art.Next(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, art)
}

// Previous handles POST /api/v1/artwork/previous. Pure navigation; a
// boundary condition is the caller's state, reported as a conflict.
func (h *ArtworkHandler) Previous(c *gin.Context) {
	art, err := h.art.Previous()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrEmptyHistory) ||
			errors.Is(err, domain.ErrNoPreviousArtwork) ||
			errors.Is(err, domain.ErrAtHistoryStart) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, art)
}
