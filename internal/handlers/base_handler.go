package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/career-service/internal/services"
	"github.com/SAP-F-2025/career-service/internal/utils"
	"github.com/SAP-F-2025/career-service/internal/validator"
)

type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// BaseHandler carries the logging and error mapping shared by every handler.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromGinContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.FromGinContext(c, h.logger).Error(msg, args...)
}

// handleServiceError maps service errors onto HTTP responses. Unknown errors
// become a 500 carrying the error text.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
	case errors.Is(err, services.ErrEmailExists):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email already exists"})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
	case errors.Is(err, services.ErrProfileExists):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Profile already exists"})
	case errors.Is(err, services.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Profile not found"})
	case errors.Is(err, services.ErrDoubtNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Doubt not found"})
	case errors.Is(err, services.ErrDoubtFieldsRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Both title and question are required"})
	case errors.Is(err, services.ErrMessageRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Message is required"})
	default:
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Validation failed",
				Details: validationErrors,
			})
			return
		}

		h.LogError(c, err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

// bindJSON decodes the body into req and answers 400 on malformed JSON. An
// empty body leaves req zero-valued.
func (h *BaseHandler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}

func (h *BaseHandler) parseIDParam(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + param})
		return 0, false
	}
	return uint(id), true
}
