package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newSwaggerRouter(cfg SwaggerConfig, jwtMiddleware gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg, jwtMiddleware), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return router
}

func TestSwaggerProtection(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	requireJWT := JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
	token, _ := newTestToken(t, jwtService)

	tests := []struct {
		name       string
		cfg        SwaggerConfig
		remoteAddr string
		auth       string
		want       int
	}{
		{"disabled", SwaggerConfig{}, "127.0.0.1:5000", "", http.StatusNotFound},
		{"open", SwaggerConfig{Enabled: true}, "127.0.0.1:5000", "", http.StatusOK},
		{"listed ip", SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}}, "127.0.0.1:5000", "", http.StatusOK},
		{"unlisted ip", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.1"}}, "192.168.1.1:5000", "", http.StatusForbidden},
		{"inside cidr", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, "10.50.100.200:5000", "", http.StatusOK},
		{"outside cidr", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8", "bogus"}}, "192.168.1.1:5000", "", http.StatusForbidden},
		{"auth without token", SwaggerConfig{Enabled: true, RequireAuth: true}, "127.0.0.1:5000", "", http.StatusUnauthorized},
		{"auth with token", SwaggerConfig{Enabled: true, RequireAuth: true}, "127.0.0.1:5000", "Bearer " + token, http.StatusOK},
		{"ip checked before auth", SwaggerConfig{Enabled: true, RequireAuth: true, AllowedIPs: []string{"10.0.0.1"}}, "192.168.1.1:5000", "Bearer " + token, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newSwaggerRouter(tt.cfg, requireJWT)
			req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code, w.Body.String())
			if tt.want == http.StatusOK {
				assert.Equal(t, "docs", w.Body.String())
			}
		})
	}
}
