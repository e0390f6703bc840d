package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service errors onto the HTTP error taxonomy.
// Unknown errors are logged and surface as an opaque 500.
func HandleServiceError(c *gin.Context, err error) {
	var policyErr *PasswordPolicyError

	switch {
	case errors.As(err, &policyErr):
		RespondError(c, http.StatusBadRequest, policyErr.Error())
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrAccountDisabled):
		RespondError(c, http.StatusUnauthorized, "Account is disabled")
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "User not found")
	case errors.Is(err, ErrNotFound):
		RespondError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, ErrUnexpectedBehaviorOfAI), errors.Is(err, ErrVectorSearchFailed):
		logFromContext(c).Error("suggestion pipeline failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Unable to generate food suggestions")
	default:
		logFromContext(c).Error("unhandled service error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// logFromContext returns the request scoped logger set by the request logging
// middleware, falling back to the global zap logger.
func logFromContext(c *gin.Context) *zap.Logger {
	if v, ok := c.Get("logger"); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.L()
}
