// internal/middleware/security.go
package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"

	"github.com/juggernaut03/kalakritBackend/internal/config"
)

// SecurityHeaders sets the usual hardening headers. HSTS is only sent in
// production; TLS is terminated in front of the service.
func SecurityHeaders(cfg *config.Config) gin.HandlerFunc {
	secureCfg := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		IENoOpen:           true,
		ReferrerPolicy:     "no-referrer",
		IsDevelopment:      !cfg.IsProduction(),
	}
	if cfg.IsProduction() {
		secureCfg.STSSeconds = int64((180 * 24 * time.Hour).Seconds())
		secureCfg.STSIncludeSubdomains = true
	}
	return secure.New(secureCfg)
}

// CORS allows the configured web and Expo origins with credentials.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
		CustomSchemas:    []string{"exp://"},
		MaxAge:           12 * time.Hour,
	})
}
