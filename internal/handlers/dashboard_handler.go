package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockqr/internal/services"
)

// DashboardHandler serves inventory statistics.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles the dashboard summary
// @Summary     Dashboard statistics
// @Description Totals, stock value, low-stock items and the latest movements
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} models.DashboardStats
// @Router      /dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
