// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/juggernaut03/kalakritBackend/internal/i18n"
	"github.com/juggernaut03/kalakritBackend/internal/utils"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if lang == "" {
			lang = c.GetHeader("Accept-Language")
		}

		c.Set(utils.ContextLang, resolveLanguage(lang))
		c.Next()
	}
}

// resolveLanguage picks the first supported language from a header such as
// "hi-IN,hi;q=0.9,en;q=0.8". Region suffixes are ignored.
func resolveLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		fields := strings.FieldsFunc(strings.Split(part, ";")[0], func(r rune) bool {
			return r == '-' || r == '_' || r == ' '
		})
		if len(fields) == 0 {
			continue
		}
		base := strings.ToLower(fields[0])
		if i18n.IsSupported(base) {
			return base
		}
	}
	return i18n.DefaultLang
}
