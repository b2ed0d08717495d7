package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewardhub/rewardhub-backend/internal/config"
	"github.com/rewardhub/rewardhub-backend/internal/utils"
)

func testRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authed := router.Group("/", JWTAuthMiddleware(cfg))
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"accountID": c.GetString("accountID"),
			"role":      c.GetString("role"),
		})
	})
	authed.GET("/admin", AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600}}
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	cfg := testConfig()
	router := testRouter(cfg)

	token, err := utils.GenerateJWT("64f000000000000000000001", "user", cfg)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "64f000000000000000000001")
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	router := testRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_BadToken(t *testing.T) {
	router := testRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_WrongSecret(t *testing.T) {
	cfg := testConfig()
	router := testRouter(cfg)

	other := &config.Config{JWT: config.JWTConfig{Secret: "other-secret", ExpiresIn: 3600}}
	token, err := utils.GenerateJWT("64f000000000000000000001", "user", other)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnly(t *testing.T) {
	cfg := testConfig()
	router := testRouter(cfg)

	userToken, err := utils.GenerateJWT("64f000000000000000000001", "user", cfg)
	require.NoError(t, err)
	adminToken, err := utils.GenerateJWT("64f000000000000000000002", "admin", cfg)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code, "member tokens must not reach admin routes")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
