// internal/middleware/body_limit.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juggernaut03/kalakritBackend/internal/i18n"
	"github.com/juggernaut03/kalakritBackend/internal/utils"
)

// BodyLimit caps request bodies at limitMB megabytes. Declared oversize
// bodies are rejected up front; others fail when the handler reads past
// the limit.
func BodyLimit(limitMB int64) gin.HandlerFunc {
	maxBytes := limitMB << 20
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			lang := utils.GetLangFromContext(c)
			utils.AbortWithError(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", i18n.T(lang, i18n.KeyBodyTooLarge, limitMB))
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
