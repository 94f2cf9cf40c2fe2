package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"maintenance-service/internal/engine"
	"maintenance-service/internal/logging"
	"maintenance-service/internal/store"
)

// Handler carries the engine and logger into the route handlers.
type Handler struct {
	engine *engine.Engine
	logger *logging.Logger
}

func NewHandler(eng *engine.Engine, logger *logging.Logger) *Handler {
	return &Handler{engine: eng, logger: logger}
}

// fail maps engine and store errors onto HTTP statuses: validation 400,
// unknown key 404, duplicates and illegal transitions 409, everything else
// 500.
func (h *Handler) fail(c *gin.Context, err error) {
	var ve *engine.ValidationError
	var se *engine.StateError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.As(err, &se):
		c.JSON(http.StatusConflict, gin.H{"error": se.Error()})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.logger.Errorf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
