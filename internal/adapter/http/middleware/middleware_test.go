package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"loyalty-token-ledger/internal/adapter/http/middleware"
	"loyalty-token-ledger/internal/core/domain"
	"loyalty-token-ledger/internal/core/ports"
	"loyalty-token-ledger/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAddress(b byte) domain.Address {
	var a domain.Address
	a[19] = b
	return a
}

func TestJWTAuth(t *testing.T) {
	newRouter := func(tokenSvc ports.TokenService) *gin.Engine {
		r := gin.New()
		r.GET("/protected", middleware.JWTAuth(tokenSvc, zerolog.Nop()), func(c *gin.Context) {
			addr, ok := middleware.CallerAddress(c)
			require.True(t, ok)
			c.String(http.StatusOK, addr.Hex())
		})
		return r
	}

	t.Run("valid token resolves the caller address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokenSvc := mocks.NewMockTokenService(ctrl)
		caller := testAddress(7)
		tokenSvc.EXPECT().Validate("good-token").Return(&ports.TokenClaims{Address: caller}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		newRouter(tokenSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, caller.Hex(), w.Body.String())
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokenSvc := mocks.NewMockTokenService(ctrl)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		newRouter(tokenSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ACC_003")
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokenSvc := mocks.NewMockTokenService(ctrl)
		tokenSvc.EXPECT().Validate("bad-token").Return(nil, errors.New("expired"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		newRouter(tokenSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed scheme is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokenSvc := mocks.NewMockTokenService(ctrl)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		newRouter(tokenSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Recovery(zerolog.Nop()))
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}

func TestMaxBodySize(t *testing.T) {
	r := gin.New()
	r.Use(middleware.MaxBodySize(16))
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too large")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	t.Run("small body passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"a":1}`))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("oversized body is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"a":"`+strings.Repeat("x", 100)+`"}`))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
