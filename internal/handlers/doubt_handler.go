package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/services"
	"github.com/SAP-F-2025/career-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DoubtHandler struct {
	BaseHandler
	service services.DoubtService
}

func NewDoubtHandler(service services.DoubtService, logger utils.Logger) *DoubtHandler {
	return &DoubtHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== DOUBT ENDPOINTS =====

// CreateDoubt opens a thread and stores the mentor's first answer
// @Router /api/doubts [post]
func (h *DoubtHandler) CreateDoubt(c *gin.Context) {
	var req models.CreateDoubtRequest
	if !h.bindJSON(c, &req) {
		return
	}
	userID, ok := resolveUserID(c, req.UserID.Uint())
	if !ok {
		return
	}

	doubt, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Doubt created", "doubt_id", doubt.ID, "user_id", userID)
	c.JSON(http.StatusCreated, models.CreateDoubtResponse{Success: true, DoubtID: doubt.ID})
}

// ListDoubts lists the caller's doubts, most recently active first
// @Router /api/doubts [get]
func (h *DoubtHandler) ListDoubts(c *gin.Context) {
	userID, ok := resolveUserID(c, queryUserID(c))
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DoubtListResponse{Doubts: items})
}

// GetDoubt returns a doubt with its full thread
// @Router /api/doubts/{id} [get]
func (h *DoubtHandler) GetDoubt(c *gin.Context) {
	doubtID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := resolveUserID(c, queryUserID(c))
	if !ok {
		return
	}

	detail, err := h.service.Get(c.Request.Context(), userID, doubtID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ReplyDoubt appends a message and optionally asks the mentor
// @Router /api/doubts/{id}/reply [post]
func (h *DoubtHandler) ReplyDoubt(c *gin.Context) {
	doubtID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.ReplyDoubtRequest
	if !h.bindJSON(c, &req) {
		return
	}
	userID, ok := resolveUserID(c, req.UserID.Uint())
	if !ok {
		return
	}

	resp, err := h.service.Reply(c.Request.Context(), userID, doubtID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResolveDoubt closes a doubt with optional notes
// @Router /api/doubts/{id}/resolve [post]
func (h *DoubtHandler) ResolveDoubt(c *gin.Context) {
	doubtID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.ResolveDoubtRequest
	if !h.bindJSON(c, &req) {
		return
	}
	userID, ok := resolveUserID(c, req.UserID.Uint())
	if !ok {
		return
	}

	if err := h.service.Resolve(c.Request.Context(), userID, doubtID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ExportDoubts downloads the caller's doubts as a spreadsheet
// @Router /api/doubts/export [get]
func (h *DoubtHandler) ExportDoubts(c *gin.Context) {
	userID, ok := resolveUserID(c, queryUserID(c))
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), userID, &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="doubts.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
