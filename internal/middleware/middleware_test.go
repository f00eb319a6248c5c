package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juggernaut03/kalakritBackend/internal/models"
	"github.com/juggernaut03/kalakritBackend/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) utils.APIError {
	t.Helper()
	var body utils.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthRequired(t *testing.T) {
	manager := utils.NewJWTManager("test-secret", time.Hour)
	expired := utils.NewJWTManager("test-secret", -time.Minute)
	otherKey := utils.NewJWTManager("other-secret", time.Hour)

	valid, err := manager.GenerateJWT("65f000000000000000000001", "artisan")
	require.NoError(t, err)
	stale, err := expired.GenerateJWT("65f000000000000000000001", "artisan")
	require.NoError(t, err)
	forged, err := otherKey.GenerateJWT("65f000000000000000000001", "artisan")
	require.NoError(t, err)

	reached := false
	router := gin.New()
	router.Use(I18nMiddleware())
	router.GET("/me", AuthRequired(manager), func(c *gin.Context) {
		reached = true
		userID, _ := utils.GetUserIDFromContext(c)
		role, _ := utils.GetRoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": userID, "role": role})
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantReach  bool
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + stale, wantStatus: http.StatusUnauthorized},
		{name: "bad signature", header: "Bearer " + forged, wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantReach: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantReach, reached)
			if tt.wantStatus == http.StatusUnauthorized {
				body := decodeError(t, w)
				assert.False(t, body.Success)
				assert.Equal(t, "UNAUTHORIZED", body.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	manager := utils.NewJWTManager("test-secret", time.Hour)
	router := gin.New()
	router.POST("/products", AuthRequired(manager), RequireRole(models.RoleArtisan), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	buyer, err := manager.GenerateJWT("65f000000000000000000002", "buyer")
	require.NoError(t, err)
	artisan, err := manager.GenerateJWT("65f000000000000000000003", "artisan")
	require.NoError(t, err)

	for token, want := range map[string]int{buyer: http.StatusForbidden, artisan: http.StatusCreated} {
		req := httptest.NewRequest(http.MethodPost, "/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code)
	}
}

func TestResolveLanguage(t *testing.T) {
	assert.Equal(t, "hi", resolveLanguage("hi-IN,hi;q=0.9,en;q=0.8"))
	assert.Equal(t, "en", resolveLanguage("fr-FR,en;q=0.5"))
	assert.Equal(t, "en", resolveLanguage(""))
	assert.Equal(t, "en", resolveLanguage("de"))
	assert.Equal(t, "en", resolveLanguage("-,;q=1"))
}

func TestRateLimiter(t *testing.T) {
	router := gin.New()
	router.POST("/login", PerMinute(2).Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestBodyLimit(t *testing.T) {
	router := gin.New()
	router.Use(BodyLimit(1))
	router.POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 2<<20))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", decodeError(t, w).Code)
}

func TestRecovery(t *testing.T) {
	for _, expose := range []bool{true, false} {
		router := gin.New()
		router.Use(ExposeErrors(expose), Recovery())
		router.GET("/boom", func(c *gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "INTERNAL_ERROR", body.Code)
		assert.Equal(t, expose, body.Stack != "")
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(utils.ContextRequestID))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}
