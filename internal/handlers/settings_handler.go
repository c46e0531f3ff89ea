package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockqr/internal/models"
	"stockqr/internal/services"
)

// SettingsHandler reads and writes the settings document.
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings handles reading settings
// @Summary     Get settings
// @Tags        settings
// @Produce     json
// @Success     200 {object} map[string]interface{}
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// SaveSettings handles replacing settings
// @Summary     Save settings
// @Tags        settings
// @Accept      json
// @Produce     json
// @Param       request body map[string]interface{} true "Settings document"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /settings [put]
func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	saved, err := h.settingsService.SaveSettings(c.Request.Context(), settings)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": saved})
}
