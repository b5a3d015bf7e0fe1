package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/timmy/artglass/internal/domain"
	"github.com/timmy/artglass/internal/repository"
)

// SettingsHandler serves the persisted UI preferences. Hotkey
// registration itself lives in the platform shell; this only stores and
// returns the binding.
type SettingsHandler struct {
	settings *repository.SettingsRepository
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settings *repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

type hotkeyRequest struct {
	Hotkey string `json:"hotkey" binding:"required"`
}

// GetHotkey handles GET /api/v1/settings/hotkey, falling back to the
// default binding when none is stored.
func (h *SettingsHandler) GetHotkey(c *gin.Context) {
	value, err := h.settings.Get(c.Request.Context(), domain.SettingKeyHotkey, domain.DefaultHotkey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load hotkey: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"hotkey": value,
	})
}

// SetHotkey handles PUT /api/v1/settings/hotkey.
func (h *SettingsHandler) SetHotkey(c *gin.Context) {
	var req hotkeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Hotkey is required",
		})
		return
	}

	hotkey := strings.TrimSpace(req.Hotkey)
	if hotkey == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Hotkey is required",
		})
		return
	}

	if err := h.settings.Set(c.Request.Context(), domain.SettingKeyHotkey, hotkey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store hotkey: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hotkey": hotkey,
	})
}
