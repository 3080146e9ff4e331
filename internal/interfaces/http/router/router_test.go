package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	t.Run("versioned prefix", func(t *testing.T) {
		engine := gin.New()
		group := NewDomainGroup("regions", "/regions")
		group.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

		NewRouter(engine, WithAPIVersion("v1")).Register(group).Setup()

		w := serve(engine, http.MethodGet, "/api/v1/regions/ping")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
	})

	t.Run("empty version mounts at root", func(t *testing.T) {
		engine := gin.New()
		group := NewDomainGroup("regions", "/regions")
		group.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

		NewRouter(engine, WithAPIVersion("")).Register(group).Setup()

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/regions/ping").Code)
		assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/regions/ping").Code)
	})
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("license", "/license")
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
	g.GET("/items", ok).POST("/items", ok).PUT("/items/:id", ok).PATCH("/items/:id", ok).DELETE("/items/:id", ok)
	g.RegisterRoutes(engine.Group("/"))

	assert.Equal(t, "license", g.Name())
	assert.Equal(t, "/license", g.Prefix())

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/license/items"},
		{http.MethodPost, "/license/items"},
		{http.MethodPut, "/license/items/1"},
		{http.MethodPatch, "/license/items/1"},
		{http.MethodDelete, "/license/items/1"},
	} {
		w := serve(engine, tc.method, tc.path)
		assert.Equal(t, http.StatusOK, w.Code, tc.method)
		assert.Equal(t, tc.method, w.Body.String())
	}
}

type pingRegistrar struct{}

func (pingRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("guard")) })
}

func TestDomainGroup_MiddlewareAppliesToIncludesAndSubgroups(t *testing.T) {
	engine := gin.New()
	guard := func(c *gin.Context) {
		if c.GetHeader("X-Pass") == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("guard", "passed")
		c.Next()
	}

	users := NewDomainGroup("users", "/users")
	users.POST("", func(c *gin.Context) { c.Status(http.StatusCreated) })
	protected := users.Group("protected", "").Use(guard)
	protected.Include(pingRegistrar{})

	exam := NewDomainGroup("exam", "/exam").Use(guard).Include(pingRegistrar{})

	NewRouter(engine, WithAPIVersion("")).Register(users).Register(exam).Setup()

	assert.Equal(t, http.StatusCreated, serve(engine, http.MethodPost, "/users").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/users/ping").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/exam/ping").Code)

	req := httptest.NewRequest(http.MethodGet, "/exam/ping", nil)
	req.Header.Set("X-Pass", "1")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "passed", w.Body.String())
}
