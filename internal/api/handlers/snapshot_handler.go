// internal/api/handlers/snapshot_handler.go
package handlers

import (
	"net/http"

	"github.com/fieldserve/serviceops/internal/service"
	"github.com/fieldserve/serviceops/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type SnapshotHandler struct {
	service  *service.SnapshotService
	defaults FilterDefaults
}

func NewSnapshotHandler(service *service.SnapshotService, defaults FilterDefaults) *SnapshotHandler {
	return &SnapshotHandler{service: service, defaults: defaults}
}

// GetSnapshot returns the classified inventory position. With debug=1
// the response wraps the rows with diagnostic counters; with view=table
// the rows come back pre-formatted for the exceptions table.
func (h *SnapshotHandler) GetSnapshot(c *gin.Context) {
	filter := parseFilter(c, h.defaults)

	rows, err := h.service.GetSnapshot(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch snapshot")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch snapshot"})
		return
	}

	c.Header("Cache-Control", "no-store, no-cache, must-revalidate")

	if c.Query("debug") == "1" {
		c.JSON(http.StatusOK, gin.H{
			"data":    rows,
			"metrics": h.service.DebugMetrics(rows),
			"summary": h.service.Summary(rows),
		})
		return
	}

	if c.Query("view") == "table" {
		c.JSON(http.StatusOK, view.SnapshotTable(rows))
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GetSupply returns inbound supply lines within the horizon.
func (h *SnapshotHandler) GetSupply(c *gin.Context) {
	filter := parseFilter(c, h.defaults)

	lines, err := h.service.GetSupply(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch supply")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch supply"})
		return
	}

	c.JSON(http.StatusOK, lines)
}

// GetDemand returns outbound demand lines.
func (h *SnapshotHandler) GetDemand(c *gin.Context) {
	filter := parseFilter(c, h.defaults)

	lines, err := h.service.GetDemand(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch demand")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch demand"})
		return
	}

	c.JSON(http.StatusOK, lines)
}
