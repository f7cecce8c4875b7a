// internal/api/handlers/workorder_handler.go
package handlers

import (
	"net/http"

	"github.com/fieldserve/serviceops/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type WorkOrderHandler struct {
	service  *service.WorkOrderService
	defaults FilterDefaults
}

func NewWorkOrderHandler(service *service.WorkOrderService, defaults FilterDefaults) *WorkOrderHandler {
	return &WorkOrderHandler{service: service, defaults: defaults}
}

// List returns work orders for the table view.
func (h *WorkOrderHandler) List(c *gin.Context) {
	filter := parseFilter(c, h.defaults)

	orders, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch work orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch work orders"})
		return
	}

	c.Header("Cache-Control", "no-store, no-cache, must-revalidate")
	c.JSON(http.StatusOK, orders)
}

// Sites returns the site labels for the selector.
func (h *WorkOrderHandler) Sites(c *gin.Context) {
	sites, err := h.service.Sites(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch sites")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sites"})
		return
	}

	c.JSON(http.StatusOK, sites)
}
