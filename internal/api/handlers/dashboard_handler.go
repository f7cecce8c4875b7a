// internal/api/handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	"github.com/fieldserve/serviceops/internal/service"
	"github.com/fieldserve/serviceops/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type DashboardHandler struct {
	service  *service.DashboardService
	defaults FilterDefaults
}

func NewDashboardHandler(service *service.DashboardService, defaults FilterDefaults) *DashboardHandler {
	return &DashboardHandler{service: service, defaults: defaults}
}

// GetDashboard returns every KPI for the current filter in one payload.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	filter := parseFilter(c, h.defaults)

	dashboard, err := h.service.GetDashboard(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to assemble dashboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assemble dashboard"})
		return
	}

	c.Header("Cache-Control", "no-store, no-cache, must-revalidate")
	c.JSON(http.StatusOK, dashboard)
}

// GetDashboardCards returns the card view-model layout for the same data.
func (h *DashboardHandler) GetDashboardCards(c *gin.Context) {
	filter := parseFilter(c, h.defaults)

	dashboard, err := h.service.GetDashboard(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to assemble dashboard cards")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assemble dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": view.Cards(dashboard)})
}

// InvalidateCache drops the cached dashboard payloads, forcing a fresh
// recompute on the next request.
func (h *DashboardHandler) InvalidateCache(c *gin.Context) {
	if err := h.service.InvalidateCache(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("failed to invalidate dashboard cache")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to invalidate cache"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}
