package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/wellness-service/internal/services"
	"github.com/SAP-F-2025/wellness-service/internal/utils"
	"github.com/SAP-F-2025/wellness-service/internal/validator"
)

type LinkHandler struct {
	BaseHandler
	service services.LinkService
}

func NewLinkHandler(service services.LinkService, logger utils.Logger) *LinkHandler {
	return &LinkHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== LINK ENDPOINTS =====

// Link connects the calling parent to a student account by email.
func (h *LinkHandler) Link(c *gin.Context) {
	h.LogRequest(c, "Linking student")

	parentID, err := GetUserIDFromContext(c)
	if err != nil {
		h.handleServiceError(c, services.ErrUnauthorized)
		return
	}

	var req validator.LinkStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, err.Error())
		return
	}

	student, err := h.service.Link(c.Request.Context(), parentID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"student": student})
}

// ListStudents returns the parent's linked students.
func (h *LinkHandler) ListStudents(c *gin.Context) {
	h.LogRequest(c, "Listing linked students")

	parentID, err := GetUserIDFromContext(c)
	if err != nil {
		h.handleServiceError(c, services.ErrUnauthorized)
		return
	}

	students, err := h.service.ListStudents(c.Request.Context(), parentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}

// Unlink removes the edge to a student. Unlinking an absent edge is a 404.
func (h *LinkHandler) Unlink(c *gin.Context) {
	h.LogRequest(c, "Unlinking student")

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

	if err := h.service.Unlink(c.Request.Context(), parentID, uint(studentID)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student unlinked"})
}
