package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/config"
)

const testSecret = "test-signing-secret"

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	engine := gin.New()
	protected := engine.Group("/", JWTAuthWithConfig(cfg))
	protected.GET("/explorer-only", RequireExplorer(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return engine
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func accessClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": "9f4c8c1a-52c1-4b0e-9d35-0a1f6f6f2b11",
		"email":   "jide@example.com",
		"role":    role,
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	engine := testEngine(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/explorer-only", nil)
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsMalformedHeader(t *testing.T) {
	engine := testEngine(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/explorer-only", nil)
	req.Header.Set("Authorization", "Token abc123")
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsBadSignature(t *testing.T) {
	engine := testEngine(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims(RoleExplorer))
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/explorer-only", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsNonAccessToken(t *testing.T) {
	engine := testEngine(t)

	claims := accessClaims(RoleExplorer)
	claims["type"] = "refresh"

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/explorer-only", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims))
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	engine := testEngine(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/explorer-only", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, accessClaims(RoleVendor)))
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthAcceptsValidExplorer(t *testing.T) {
	engine := testEngine(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/explorer-only", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, accessClaims(RoleExplorer)))
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "9f4c8c1a-52c1-4b0e-9d35-0a1f6f6f2b11")
}
