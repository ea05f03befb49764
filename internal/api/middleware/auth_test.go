package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"grievance/backend/internal/api/middleware"
	"grievance/backend/internal/auth"
	"grievance/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAdminRouter(authSvc *auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", middleware.Auth(authSvc), middleware.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"caller": middleware.CallerID(c)})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestAuth_MissingAndMalformedHeaders verifies unauthenticated callers are
// turned away before any handler runs.
func TestAuth_MissingAndMalformedHeaders(t *testing.T) {
	authSvc := auth.NewService(nil, "test-secret", time.Hour)
	r := newAdminRouter(authSvc)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "Bearer not-a-token").Code)
}

// TestAuth_AdminGate verifies a general-role token is rejected with 403 and
// an admin token passes through with its caller id.
func TestAuth_AdminGate(t *testing.T) {
	authSvc := auth.NewService(nil, "test-secret", time.Hour)
	r := newAdminRouter(authSvc)

	generalToken, err := authSvc.IssueToken(&models.User{ID: 2, Type: models.RoleGeneral})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(r, "Bearer "+generalToken).Code)

	adminToken, err := authSvc.IssueToken(&models.User{ID: 1, Type: models.RoleAdmin})
	assert.NoError(t, err)
	w := doRequest(r, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"caller": 1}`, w.Body.String())
}

// TestAuth_ForeignSignature verifies tokens signed with another secret are
// rejected.
func TestAuth_ForeignSignature(t *testing.T) {
	authSvc := auth.NewService(nil, "test-secret", time.Hour)
	other := auth.NewService(nil, "other-secret", time.Hour)
	r := newAdminRouter(authSvc)

	foreign, err := other.IssueToken(&models.User{ID: 1, Type: models.RoleAdmin})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "Bearer "+foreign).Code)
}
