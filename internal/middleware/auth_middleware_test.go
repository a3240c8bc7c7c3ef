package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/errors"
	"github.com/ikkim/furniture-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret-for-middleware"

type fakeRevocations map[string]bool

func (f fakeRevocations) Contains(_ context.Context, token string) (bool, error) {
	return f[token], nil
}

func setupMiddlewareTest(revoked RevocationChecker) (*gin.Engine, *AuthMiddleware) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(LoggingMiddleware())
	return router, NewAuthMiddleware(testJWTSecret, revoked)
}

func generateTestTokens(t *testing.T, userID uint, role string) *util.TokenPair {
	tokens, err := util.GenerateTokenPair(userID, "test@example.com", role, testJWTSecret, 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return tokens
}

func principalHandler(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		c.Status(http.StatusTeapot)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id": p.UserID,
		"email":   p.Email,
		"role":    p.Role,
		"token":   GetAccessToken(c) != "",
	})
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errors.ErrorResponse {
	var resp errors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthMiddleware_Authenticate_TokenSources(t *testing.T) {
	router, auth := setupMiddlewareTest(nil)
	router.GET("/test", auth.Authenticate(), principalHandler)
	tokens := generateTestTokens(t, 7, "user")

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tokens.AccessToken) }},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tokens.AccessToken}) }},
		{"query", func(r *http.Request) { r.URL.RawQuery = "token=" + tokens.AccessToken }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, float64(7), body["user_id"])
			assert.Equal(t, "user", body["role"])
			assert.Equal(t, true, body["token"])
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}
}

func TestAuthMiddleware_Authenticate_Rejections(t *testing.T) {
	tokens := generateTestTokens(t, 1, "user")
	expired, err := util.GenerateToken(1, "test@example.com", "user", util.AccessToken, testJWTSecret, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		revoked  fakeRevocations
		wantCode string
	}{
		{"no token", "", nil, errors.AuthUnauthorized},
		{"bad format", "Token abc", nil, errors.AuthTokenInvalid},
		{"garbage", "Bearer abc.def.ghi", nil, errors.AuthTokenInvalid},
		{"refresh token", "Bearer " + tokens.RefreshToken, nil, errors.AuthTokenInvalid},
		{"expired", "Bearer " + expired, nil, errors.AuthTokenExpired},
		{"revoked", "Bearer " + tokens.AccessToken, fakeRevocations{tokens.AccessToken: true}, errors.AuthTokenRevoked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var checker RevocationChecker
			if tt.revoked != nil {
				checker = tt.revoked
			}
			router, auth := setupMiddlewareTest(checker)
			router.GET("/test", auth.Authenticate(), principalHandler)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Error)
		})
	}
}

func TestAuthMiddleware_OptionalAuthenticate(t *testing.T) {
	router, auth := setupMiddlewareTest(nil)
	router.GET("/test", auth.OptionalAuthenticate(), principalHandler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTeapot, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestTokens(t, 3, "user").AccessToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	router, auth := setupMiddlewareTest(nil)
	router.GET("/admin", auth.Authenticate(), auth.RequireRole(model.RoleAdmin), principalHandler)

	tests := []struct {
		role     string
		wantCode int
	}{
		{"admin", http.StatusOK},
		{"user", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+generateTestTokens(t, 1, tt.role).AccessToken)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestGetPrincipal_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetPrincipal(c)
	assert.False(t, ok)

	c.Set(UserIDKey, uint(5))
	c.Set(UserRoleKey, model.RoleAdmin)
	p, ok := GetPrincipal(c)
	require.True(t, ok)
	assert.True(t, p.IsAdmin())
}
