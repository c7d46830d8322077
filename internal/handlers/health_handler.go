package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/career-service/internal/utils"
)

const serviceName = "career-service"

// HealthChecker is satisfied by services.ServiceManager.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	BaseHandler
	checker HealthChecker
}

func NewHealthHandler(checker HealthChecker, logger utils.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: NewBaseHandler(logger),
		checker:     checker,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.checker.HealthCheck(c.Request.Context()); err != nil {
		h.LogError(c, err, "Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": serviceName,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}
