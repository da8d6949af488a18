package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"doc-catalog/internal/service"
)

func newMiddlewareRouter(tokens *service.TokenService, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTAuthMiddleware(tokens)}
	if adminOnly {
		handlers = append(handlers, RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims, _ := GetAuthClaims(c)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	tokens := service.NewTokenService("secret", 15*time.Minute)
	r := newMiddlewareRouter(tokens, false)

	token, err := tokens.Issue("user@example.com", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestJWTAuthMiddleware_MissingToken(t *testing.T) {
	tokens := service.NewTokenService("secret", 15*time.Minute)
	r := newMiddlewareRouter(tokens, false)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuthMiddleware_TamperedToken(t *testing.T) {
	tokens := service.NewTokenService("secret", 15*time.Minute)
	r := newMiddlewareRouter(tokens, false)

	token, err := tokens.Issue("user@example.com", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAdmin_ForbidsNonAdmin(t *testing.T) {
	tokens := service.NewTokenService("secret", 15*time.Minute)
	r := newMiddlewareRouter(tokens, true)

	token, err := tokens.Issue("user@example.com", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	tokens := service.NewTokenService("secret", 15*time.Minute)
	r := newMiddlewareRouter(tokens, true)

	token, err := tokens.Issue("admin@example.com", true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
