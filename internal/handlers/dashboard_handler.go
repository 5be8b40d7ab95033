package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/wellness-service/internal/services"
	"github.com/SAP-F-2025/wellness-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.AnalyticsService
}

func NewDashboardHandler(service services.AnalyticsService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== DASHBOARD ENDPOINTS =====

// StudentDashboard returns the caller's own trend data, wellness score, streak
// and total check-in count.
func (h *DashboardHandler) StudentDashboard(c *gin.Context) {
	h.LogRequest(c, "Getting student dashboard")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.handleServiceError(c, services.ErrUnauthorized)
		return
	}

	period := c.Query("period")

	resp, err := h.service.GetStudentDashboard(c.Request.Context(), userID, period)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ParentDashboard returns the journal-free view of a linked student.
func (h *DashboardHandler) ParentDashboard(c *gin.Context) {
	h.LogRequest(c, "Getting parent dashboard")

	parentID, err := GetUserIDFromContext(c)
	if err != nil {
		h.handleServiceError(c, services.ErrUnauthorized)
		return
	}

	studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		h.respondBadRequest(c, "invalid student id")
		return
	}

	period := c.Query("period")

	resp, err := h.service.GetParentDashboard(c.Request.Context(), parentID, uint(studentID), period)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AlertHistory returns the persisted stress alerts for a linked student.
func (h *DashboardHandler) AlertHistory(c *gin.Context) {
	h.LogRequest(c, "Getting alert history")

	parentID, err := GetUserIDFromContext(c)
	if err != nil {
		h.handleServiceError(c, services.ErrUnauthorized)
		return
	}

	studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		h.respondBadRequest(c, "invalid student id")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "30"))
	if err != nil || limit < 1 {
		limit = services.DefaultHistoryLimit
	}

	alerts, err := h.service.GetAlertHistory(c.Request.Context(), parentID, uint(studentID), limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
