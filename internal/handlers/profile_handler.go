package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/services"
	"github.com/SAP-F-2025/career-service/internal/utils"
)

type ProfileHandler struct {
	BaseHandler
	service services.ProfileService
}

func NewProfileHandler(service services.ProfileService, logger utils.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// pathUser resolves the :user_id path parameter against the caller's token.
func (h *ProfileHandler) pathUser(c *gin.Context) (uint, bool) {
	id, ok := h.parseIDParam(c, "user_id")
	if !ok {
		return 0, false
	}
	return resolveUserID(c, id)
}

// CheckProfile reports whether a profile exists
// @Router /check_profile/{user_id} [get]
func (h *ProfileHandler) CheckProfile(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}

	exists, err := h.service.CheckProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CheckProfileResponse{HasProfile: exists})
}

// GetUser returns the profile joined with the account email
// @Router /api/user/{user_id} [get]
func (h *ProfileHandler) GetUser(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Submit saves a new profile and returns career advice
// @Router /submit [post]
func (h *ProfileHandler) Submit(c *gin.Context) {
	var req models.ProfileSubmitRequest
	if !h.bindJSON(c, &req) {
		return
	}
	userID, ok := resolveUserID(c, req.UserID.Uint())
	if !ok {
		return
	}

	h.LogRequest(c, "Submitting profile", "user_id", userID)

	resp, err := h.service.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// UpdateUser applies a partial profile update
// @Router /api/user/{user_id} [put]
func (h *ProfileHandler) UpdateUser(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}
	var req models.ProfileUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	profile, err := h.service.Update(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteUser removes the profile; the account stays
// @Router /api/user/{user_id} [delete]
func (h *ProfileHandler) DeleteUser(c *gin.Context) {
	userID, ok := h.pathUser(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
