// internal/middleware/recovery.go
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/juggernaut03/kalakritBackend/internal/i18n"
	"github.com/juggernaut03/kalakritBackend/internal/utils"
)

// ExposeErrors marks whether error details and stacks may be sent to clients.
func ExposeErrors(expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.ContextExposeErrors, expose)
		c.Next()
	}
}

// Recovery turns a panic into a generic 500. The stack is logged and, outside
// production, also returned.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		stack := string(debug.Stack())
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("%v", recovered)
		}
		if errors.Is(err, http.ErrAbortHandler) {
			panic(recovered)
		}

		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(utils.ContextRequestID),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"stack":      stack,
		}).WithError(err).Error("Panic recovered")

		body := utils.APIError{
			Success: false,
			Code:    "INTERNAL_ERROR",
			Message: i18n.T(utils.GetLangFromContext(c), i18n.KeyInternalError),
		}
		if utils.ExposeErrors(c) {
			body.Details = err.Error()
			body.Stack = stack
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}

// NotFound answers unmatched routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.NotFoundResponse(c, i18n.KeyRouteNotFound)
	}
}
