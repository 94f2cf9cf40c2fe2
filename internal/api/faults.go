package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maintenance-service/internal/models"
)

// CreateFault adds a new entry to the fault catalog.
func (h *Handler) CreateFault(c *gin.Context) {
	var f models.FaultCode
	if err := c.ShouldBindJSON(&f); err != nil {
		h.logger.Errorf("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.engine.SaveFault(c.Request.Context(), f, true)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Infof("Created fault code: %s", created.Code)
	c.JSON(http.StatusCreated, created)
}

// UpdateFault replaces the fields of an existing fault code.
func (h *Handler) UpdateFault(c *gin.Context) {
	var f models.FaultCode
	if err := c.ShouldBindJSON(&f); err != nil {
		h.logger.Errorf("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f.Code = c.Param("code")

	updated, err := h.engine.SaveFault(c.Request.Context(), f, false)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteFault removes a fault code unless resolved alerts still reference it.
func (h *Handler) DeleteFault(c *gin.Context) {
	if err := h.engine.DeleteFault(c.Request.Context(), c.Param("code")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFaults returns the catalog.
func (h *Handler) ListFaults(c *gin.Context) {
	faults, err := h.engine.ListFaults(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, faults)
}
