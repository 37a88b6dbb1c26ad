package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/platefeed/backend/internal/middleware"
	"github.com/platefeed/backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (v *stubValidator) ValidateToken(string) (*types.TokenClaims, error) {
	return v.claims, v.err
}

func runAuth(t *testing.T, validator middleware.TokenValidator, optional bool, header string) (*httptest.ResponseRecorder, *uint) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var viewer *uint
	router := gin.New()
	handler := middleware.AuthMiddleware(validator)
	if optional {
		handler = middleware.OptionalAuthMiddleware(validator)
	}
	router.GET("/probe", handler, func(c *gin.Context) {
		viewer = middleware.ViewerID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w, viewer
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	validator := &stubValidator{claims: &types.TokenClaims{UserID: 42, TokenID: "jti"}}

	w, viewer := runAuth(t, validator, false, "Bearer token")
	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, viewer) {
		assert.EqualValues(t, 42, *viewer)
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	w, _ := runAuth(t, &stubValidator{}, false, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadHeaderFormat(t *testing.T) {
	w, _ := runAuth(t, &stubValidator{}, false, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectedToken(t *testing.T) {
	validator := &stubValidator{err: errors.New("expired")}

	w, _ := runAuth(t, validator, false, "Bearer token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthAnonymousPassesThrough(t *testing.T) {
	w, viewer := runAuth(t, &stubValidator{err: errors.New("nope")}, true, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, viewer)
}

func TestOptionalAuthResolvesViewer(t *testing.T) {
	validator := &stubValidator{claims: &types.TokenClaims{UserID: 7, TokenID: "jti"}}

	w, viewer := runAuth(t, validator, true, "Bearer token")
	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, viewer) {
		assert.EqualValues(t, 7, *viewer)
	}
}
