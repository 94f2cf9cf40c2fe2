package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maintenance-service/internal/models"
)

// CreateWorkOrder opens a new maintenance job.
func (h *Handler) CreateWorkOrder(c *gin.Context) {
	var wo models.WorkOrder
	if err := c.ShouldBindJSON(&wo); err != nil {
		h.logger.Errorf("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.engine.CreateWorkOrder(c.Request.Context(), wo)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Infof("Created work order: %s", created.ID)
	c.JSON(http.StatusCreated, created)
}

// GetWorkOrder returns one work order by id.
func (h *Handler) GetWorkOrder(c *gin.Context) {
	wo, err := h.engine.GetWorkOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

// UpdateWorkOrder merges a partial update into an open work order.
func (h *Handler) UpdateWorkOrder(c *gin.Context) {
	var patch models.WorkOrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Errorf("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wo, err := h.engine.UpdateWorkOrder(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

// CompleteWorkOrder performs the terminal completion transition.
func (h *Handler) CompleteWorkOrder(c *gin.Context) {
	var completion models.WorkOrderCompletion
	if err := c.ShouldBindJSON(&completion); err != nil {
		h.logger.Errorf("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wo, err := h.engine.CompleteWorkOrder(c.Request.Context(), c.Param("id"), completion)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

// ImportWorkOrders accepts a batch of historical completed orders.
func (h *Handler) ImportWorkOrders(c *gin.Context) {
	var orders []models.WorkOrder
	if err := c.ShouldBindJSON(&orders); err != nil {
		h.logger.Errorf("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.engine.ImportWorkOrders(c.Request.Context(), orders)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Infof("Imported %d work orders", n)
	c.JSON(http.StatusCreated, gin.H{"imported": n})
}

// ListWorkOrders returns all work orders, newest first.
func (h *Handler) ListWorkOrders(c *gin.Context) {
	orders, err := h.engine.ListWorkOrders(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// PMComplianceKPI returns the preventive-maintenance compliance rollup.
func (h *Handler) PMComplianceKPI(c *gin.Context) {
	kpi, err := h.engine.PMCompliance(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, kpi)
}

// CostKPI returns the maintenance cost rollup.
func (h *Handler) CostKPI(c *gin.Context) {
	kpi, err := h.engine.CostKPI(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, kpi)
}

// UpsertPart sets the unit price for a part.
func (h *Handler) UpsertPart(c *gin.Context) {
	type PriceRequest struct {
		UnitPrice float64 `json:"unitPrice"`
	}

	var req PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.engine.UpsertPart(c.Request.Context(), models.SparePart{PartID: c.Param("id"), UnitPrice: req.UnitPrice})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListParts returns the price catalog.
func (h *Handler) ListParts(c *gin.Context) {
	parts, err := h.engine.ListParts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}
