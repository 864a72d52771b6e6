package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snipurl-platform/internal/config"
	"snipurl-platform/pkg/token"
)

func newAuthRouter(manager *token.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Auth(manager), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return router
}

func TestAuth(t *testing.T) {
	manager := token.NewManager("test-secret", "snipurl", 1)
	router := newAuthRouter(manager)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := token.NewManager("other-secret", "snipurl", 1)
		minted, err := other.Generate("u-1", "alice", "user")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+minted)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token passes claims through", func(t *testing.T) {
		minted, err := manager.Generate("u-1", "alice", "user")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+minted)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "u-1")
	})
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("disabled limiter passes everything", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimit(&config.Limit{Enabled: false}))
		router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 50; i++ {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/x", nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("burst exhaustion answers 429", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimit(&config.Limit{Enabled: true, Requests: 60, Burst: 3}))
		router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		statuses := map[int]int{}
		for i := 0; i < 10; i++ {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/x", nil)
			router.ServeHTTP(w, req)
			statuses[w.Code]++
		}
		assert.Equal(t, 3, statuses[http.StatusOK], "burst of 3 passes")
		assert.Equal(t, 7, statuses[http.StatusTooManyRequests])
	})

	t.Run("skip paths bypass the limiter", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimit(&config.Limit{Enabled: true, Requests: 60, Burst: 1, SkipPaths: []string{"/health"}}))
		router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 10; i++ {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/health", nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}
