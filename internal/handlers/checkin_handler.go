package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/wellness-service/internal/services"
	"github.com/SAP-F-2025/wellness-service/internal/utils"
	"github.com/SAP-F-2025/wellness-service/internal/validator"
)

type CheckInHandler struct {
	BaseHandler
	service services.CheckInService
	export  services.ExportService
}

func NewCheckInHandler(service services.CheckInService, export services.ExportService, logger utils.Logger) *CheckInHandler {
	return &CheckInHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		export:      export,
	}
}

// ===== CHECK-IN ENDPOINTS =====

// Submit records today's check-in. 201 on the first submit of the day, 200
// when revising an existing entry.
func (h *CheckInHandler) Submit(c *gin.Context) {
	h.LogRequest(c, "Submitting check-in")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.handleServiceError(c, services.ErrUnauthorized)
		return
	}

	var req validator.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// GetToday returns today's entry, or an empty body when there is none yet.
func (h *CheckInHandler) GetToday(c *gin.Context) {
	h.LogRequest(c, "Getting today's check-in")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.handleServiceError(c, services.ErrUnauthorized)
		return
	}

	entry, err := h.service.GetToday(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// List returns the caller's history newest-first, journal included.
func (h *CheckInHandler) List(c *gin.Context) {
	h.LogRequest(c, "Listing check-ins")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.handleServiceError(c, services.ErrUnauthorized)
		return
	}

	limitStr := c.DefaultQuery("limit", "30")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = services.DefaultHistoryLimit
	}

	entries, err := h.service.List(c.Request.Context(), userID, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Export streams the caller's history for the report window as an .xlsx
// attachment.
func (h *CheckInHandler) Export(c *gin.Context) {
	h.LogRequest(c, "Exporting check-in history")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.handleServiceError(c, services.ErrUnauthorized)
		return
	}

	period := c.Query("period")

	result, err := h.export.ExportHistory(c.Request.Context(), userID, period)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		result.Content.Bytes())
}
