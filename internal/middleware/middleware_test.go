package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/field-service-api/internal/auth"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	"github.com/BruksfildServices01/field-service-api/internal/models"
)

func newRouter(issuer *auth.Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/private", AuthMiddleware(issuer), func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role})
	})
	r.GET("/optional", OptionalAuth(issuer), func(c *gin.Context) {
		_, ok := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	r := newRouter(issuer)
	token, err := issuer.NewToken(&models.User{ID: 3, Role: string(access.RoleOwner)})
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Authentication required", w.Body.String())
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":3,"role":"owner"}`, w.Body.String())
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("session cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	r := newRouter(issuer)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/optional", nil))
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	token, err := issuer.NewToken(&models.User{ID: 9, Role: "client"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"authenticated":true}`, w.Body.String())
}

func TestRequestIDHonoursHeader(t *testing.T) {
	r := newRouter(auth.NewIssuer("secret", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/intake", NewRateLimiter(2).RateLimit(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	var codes []int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/intake", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
}
