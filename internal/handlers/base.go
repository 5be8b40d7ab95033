package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/wellness-service/internal/services"
	"github.com/SAP-F-2025/wellness-service/internal/utils"
	"github.com/SAP-F-2025/wellness-service/internal/validator"
)

// ErrorResponse is the uniform error body for every endpoint.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler carries the shared logging and error mapping embedded by every
// handler.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs handler entry with request correlation fields.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	logger := utils.LoggerFromContext(c.Request.Context())
	if logger == nil {
		logger = h.logger
	}
	logger.Info(msg, append(args,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)...)
}

// LogError logs a handler-level failure.
func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	logger := utils.LoggerFromContext(c.Request.Context())
	if logger == nil {
		logger = h.logger
	}
	logger.Error(msg,
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

// ===== ERROR HANDLING =====

// handleServiceError maps service errors to HTTP status codes.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: verrs,
		})
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		// Deliberately vague: the login endpoint must not reveal whether the
		// email exists.
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid email or password",
		})
	case errors.Is(err, services.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Already exists",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
		})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Not found",
			Details: err.Error(),
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}

// respondBadRequest reports a malformed request body or parameter.
func (h *BaseHandler) respondBadRequest(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Message: "Invalid request",
		Details: details,
	})
}
