// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/juggernaut03/kalakritBackend/internal/apperrors"
	"github.com/juggernaut03/kalakritBackend/internal/i18n"
)

// Context keys shared by middleware and handlers.
const (
	ContextUserID       = "user_id"
	ContextRole         = "role"
	ContextLang         = "lang"
	ContextRequestID    = "request_id"
	ContextExposeErrors = "expose_errors"
)

type APIError struct {
	Success bool        `json:"success"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Stack   string      `json:"stack,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIError{
		Success: false,
		Code:    code,
		Message: message,
		Details: details,
	})
}

func AbortWithError(c *gin.Context, statusCode int, code, message string) {
	ErrorResponse(c, statusCode, code, message, nil)
	c.Abort()
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyInvalidRequest, "request")
	}
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyAuthRequired)
	}
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func NotFoundResponse(c *gin.Context, key string) {
	lang := GetLangFromContext(c)
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, key), nil)
}

func InternalErrorResponse(c *gin.Context, err error) {
	lang := GetLangFromContext(c)
	body := APIError{
		Success: false,
		Code:    "INTERNAL_ERROR",
		Message: i18n.T(lang, i18n.KeyInternalError),
	}
	if err != nil && ExposeErrors(c) {
		body.Details = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// HandleServiceError writes the response for an error returned by a service.
// Classified errors keep their message; anything else is logged and hidden.
func HandleServiceError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	status := apperrors.StatusCode(err)

	if status == http.StatusInternalServerError || !errors.As(err, &appErr) {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(ContextRequestID),
			"path":       c.FullPath(),
		}).WithError(err).Error("Request failed")
		InternalErrorResponse(c, err)
		return
	}

	ErrorResponse(c, status, apperrors.Code(err), appErr.Message(GetLangFromContext(c)), appErr.Details)
}

func ExposeErrors(c *gin.Context) bool {
	return c.GetBool(ContextExposeErrors)
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get(ContextLang); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return i18n.DefaultLang
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, exists := c.Get(ContextUserID); exists {
		if userIDStr, ok := userID.(string); ok {
			return userIDStr, true
		}
	}
	return "", false
}

func GetRoleFromContext(c *gin.Context) (string, bool) {
	if role, exists := c.Get(ContextRole); exists {
		if roleStr, ok := role.(string); ok {
			return roleStr, true
		}
	}
	return "", false
}
