package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fakeVerifier implements Verifier
type fakeVerifier struct{}

func (f *fakeVerifier) Verify(raw string) error {
	if raw == "goodtoken" {
		return nil
	}
	return fmt.Errorf("invalid token")
}

func protectedEngine() *gin.Engine {
	g := gin.New()
	g.GET("/", RequireAdmin(&fakeVerifier{}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return g
}

func TestRequireAdmin_NoHeader(t *testing.T) {
	g := protectedEngine()
	rw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestRequireAdmin_MalformedHeader(t *testing.T) {
	g := protectedEngine()
	rw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "BadHeader")

	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestRequireAdmin_InvalidToken(t *testing.T) {
	g := protectedEngine()
	rw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer badtoken")

	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestRequireAdmin_ValidToken(t *testing.T) {
	g := protectedEngine()
	rw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer goodtoken")

	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code)
}
