package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tsvs/backend/internal/infrastructure/config"
)

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newSystemRouter(db Pinger) *gin.Engine {
	router := gin.New()
	NewSystemHandler(config.AppConfig{Name: "TSVS Portal", Version: "1.2.3"}, db).RegisterRoutes(router.Group("/"))
	return router
}

func TestSystemHandler_Root(t *testing.T) {
	router := newSystemRouter(&mockPinger{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"TSVS Portal is running"}`, w.Body.String())
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		db := &mockPinger{}
		db.On("Ping", mock.Anything).Return(nil)

		w := httptest.NewRecorder()
		newSystemRouter(db).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"healthy"`)
		db.AssertExpectations(t)
	})

	t.Run("database down", func(t *testing.T) {
		db := &mockPinger{}
		db.On("Ping", mock.Anything).Return(errors.New("connection refused"))

		w := httptest.NewRecorder()
		newSystemRouter(db).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"error"`)
	})
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	w := httptest.NewRecorder()
	newSystemRouter(&mockPinger{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/info", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	info := resp.Data.(map[string]any)
	assert.Equal(t, "TSVS Portal", info["name"])
	assert.Equal(t, "1.2.3", info["version"])
	assert.NotEmpty(t, info["go_version"])
}
