// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/fieldserve/serviceops/internal/api/handlers"
	"github.com/fieldserve/serviceops/internal/api/middleware"
	"github.com/fieldserve/serviceops/internal/repository"
	"github.com/fieldserve/serviceops/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Dashboard  *service.DashboardService
	WorkOrders *service.WorkOrderService
	Snapshot   *service.SnapshotService
	Pinger     repository.Pinger
	Defaults   handlers.FilterDefaults
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		// Keep-alive probe so the warehouse connection does not idle out
		// between dashboard refreshes.
		if services.Pinger != nil {
			apiGroup.GET("/keepalive", func(c *gin.Context) {
				if err := services.Pinger.Ping(c.Request.Context()); err != nil {
					c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unreachable", "error": err.Error()})
					return
				}
				c.JSON(http.StatusOK, gin.H{"status": "alive"})
			})
		}

		if services.Dashboard != nil {
			dashboardHandler := handlers.NewDashboardHandler(services.Dashboard, services.Defaults)
			apiGroup.GET("/dashboard", dashboardHandler.GetDashboard)
			apiGroup.GET("/dashboard/cards", dashboardHandler.GetDashboardCards)
			apiGroup.POST("/cache/invalidate", dashboardHandler.InvalidateCache)
		}

		if services.WorkOrders != nil {
			woHandler := handlers.NewWorkOrderHandler(services.WorkOrders, services.Defaults)
			apiGroup.GET("/work-orders", woHandler.List)
			apiGroup.GET("/sites", woHandler.Sites)
		}

		if services.Snapshot != nil {
			snapshotHandler := handlers.NewSnapshotHandler(services.Snapshot, services.Defaults)
			apiGroup.GET("/snapshot", snapshotHandler.GetSnapshot)
			apiGroup.GET("/supply", snapshotHandler.GetSupply)
			apiGroup.GET("/demand", snapshotHandler.GetDemand)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
