package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func securedHeaders(p SecurityPolicy) http.Header {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeaders(p))
	r.GET("/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	return w.Header()
}

func TestSecurityHeadersAllowConfiguredBackends(t *testing.T) {
	h := securedHeaders(SecurityPolicy{ConnectSrc: []string{"https://auth.example.com/", " ", "https://equipment.example.com"}})

	require.Equal(t, "DENY", h.Get("X-Frame-Options"))
	require.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	require.Contains(t, h.Get("Content-Security-Policy"), "connect-src 'self' https://auth.example.com https://equipment.example.com;")
	require.Empty(t, h.Get("Strict-Transport-Security"))
}

func TestSecurityHeadersHSTSOnlyWhenEnabled(t *testing.T) {
	h := securedHeaders(SecurityPolicy{HSTS: true})
	require.Equal(t, "max-age=31536000; includeSubDomains", h.Get("Strict-Transport-Security"))
	require.Contains(t, h.Get("Content-Security-Policy"), "connect-src 'self';")
}
