package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/services"
	"github.com/SAP-F-2025/career-service/internal/utils"
)

type CareerHandler struct {
	BaseHandler
	service services.CareerService
}

func NewCareerHandler(service services.CareerService, logger utils.Logger) *CareerHandler {
	return &CareerHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CareerSummary generates (or serves the cached) summary for the caller
// @Router /career_summary [post]
func (h *CareerHandler) CareerSummary(c *gin.Context) {
	var req models.CareerSummaryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	userID, ok := resolveUserID(c, req.UserID.Uint())
	if !ok {
		return
	}

	resp, err := h.service.Summary(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// History lists earlier summaries, newest first
// @Router /api/career_summary/history [get]
func (h *CareerHandler) History(c *gin.Context) {
	userID, ok := resolveUserID(c, queryUserID(c))
	if !ok {
		return
	}

	items, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summaries": items})
}

// Chatbot answers career questions. Every outcome uses the {response} shape.
// @Router /chatbot [post]
func (h *CareerHandler) Chatbot(c *gin.Context) {
	var req models.ChatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.ChatbotResponse{Response: "Error: " + err.Error()})
		return
	}
	userID, ok := resolveUserIDWith(c, req.UserID.Uint(), rejectWithChatResponse)
	if !ok {
		return
	}

	reply, err := h.service.Chat(c.Request.Context(), userID, req.Message)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, models.ChatbotResponse{Response: reply})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.ChatbotResponse{Response: "User identification missing."})
	case errors.Is(err, services.ErrMessageRequired):
		c.JSON(http.StatusBadRequest, models.ChatbotResponse{Response: "Message is required."})
	default:
		h.LogError(c, err, "Chatbot failed", "user_id", userID)
		c.JSON(http.StatusInternalServerError, models.ChatbotResponse{Response: "Error: " + err.Error()})
	}
}
