package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maintenance-service/internal/config"
	"maintenance-service/internal/logging"
)

// NewRouter wires the REST boundary under the configured base path.
func NewRouter(logger *logging.Logger, cfg config.Config, h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	api := r.Group(cfg.API.BasePath)
	{
		// Fault catalog
		api.POST("/faults", h.CreateFault)
		api.GET("/faults", h.ListFaults)
		api.PUT("/faults/:code", h.UpdateFault)
		api.DELETE("/faults/:code", h.DeleteFault)

		// Alerts
		api.POST("/alerts", h.CreateAlert)
		api.GET("/alerts", h.ListAlerts)
		api.POST("/alerts/:id/acknowledge", h.AcknowledgeAlert)
		api.POST("/alerts/:id/resolve", h.ResolveAlert)
		api.GET("/alerts/kpi-summary", h.AlertKPISummary)
		api.GET("/alerts/advanced-kpis", h.AlertAdvancedKPIs)

		// Knowledge base
		api.GET("/knowledge-base", h.KnowledgeBase)

		// Work orders
		api.POST("/work-orders", h.CreateWorkOrder)
		api.GET("/work-orders", h.ListWorkOrders)
		api.GET("/work-orders/:id", h.GetWorkOrder)
		api.PATCH("/work-orders/:id", h.UpdateWorkOrder)
		api.POST("/work-orders/:id/complete", h.CompleteWorkOrder)
		api.POST("/work-orders/import", h.ImportWorkOrders)
		api.GET("/work-orders/kpi/pm-compliance", h.PMComplianceKPI)
		api.GET("/work-orders/kpi/cost", h.CostKPI)

		// Spare-part prices
		api.GET("/parts", h.ListParts)
		api.PUT("/parts/:id", h.UpsertPart)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
