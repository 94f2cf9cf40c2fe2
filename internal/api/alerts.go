package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"maintenance-service/internal/models"
)

// CreateAlert accepts a new anomaly from an upstream source and opens an
// Active alert.
func (h *Handler) CreateAlert(c *gin.Context) {
	type CreateRequest struct {
		MachineID string    `json:"machineId" binding:"required"`
		Severity  string    `json:"severity" binding:"required"`
		Message   string    `json:"message"`
		Timestamp time.Time `json:"timestamp"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.engine.CreateAlert(c.Request.Context(), req.MachineID, req.Severity, req.Message, req.Timestamp)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// AcknowledgeAlert moves an Active alert to Acknowledged.
func (h *Handler) AcknowledgeAlert(c *gin.Context) {
	type AckRequest struct {
		Actor string `json:"actor"`
	}

	var req AckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.engine.Acknowledge(c.Request.Context(), c.Param("id"), req.Actor)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// ResolveAlert closes an alert with its root cause, action and fault code.
func (h *Handler) ResolveAlert(c *gin.Context) {
	type ResolveRequest struct {
		Actor     string `json:"actor"`
		Cause     string `json:"cause"`
		Action    string `json:"action"`
		FaultCode string `json:"faultCode"`
	}

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.engine.Resolve(c.Request.Context(), c.Param("id"), req.Actor, req.Cause, req.Action, req.FaultCode)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// ListAlerts returns alerts matching the query filters. from/to are RFC 3339
// and form a closed interval.
func (h *Handler) ListAlerts(c *gin.Context) {
	filters := models.AlertFilters{
		Status:    c.Query("status"),
		Severity:  c.Query("severity"),
		MachineID: c.Query("machineId"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from: " + err.Error()})
			return
		}
		filters.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to: " + err.Error()})
			return
		}
		filters.To = &t
	}

	alerts, err := h.engine.FilterAlerts(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// AlertKPISummary returns the headline alert counters.
func (h *Handler) AlertKPISummary(c *gin.Context) {
	summary, err := h.engine.KPISummary(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// AlertAdvancedKPIs returns MTTA and the top fault/machine rankings.
func (h *Handler) AlertAdvancedKPIs(c *gin.Context) {
	kpis, err := h.engine.AdvancedKPIs(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, kpis)
}

// KnowledgeBase returns the derived root-cause entries.
func (h *Handler) KnowledgeBase(c *gin.Context) {
	entries, err := h.engine.KnowledgeBase(c.Request.Context(), c.Query("machineId"), c.Query("faultCode"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
