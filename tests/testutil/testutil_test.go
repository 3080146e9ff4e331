package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	mockDB := NewMockDB(t)
	defer mockDB.Close()

	assert.NotNil(t, mockDB.DB)
	assert.NotNil(t, mockDB.Mock)
	assert.NotNil(t, mockDB.SqlDB)
}

func TestMockDB_ExpectationsWereMet(t *testing.T) {
	mockDB := NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectationsWereMet(t)
}

func TestNewSQLiteDB(t *testing.T) {
	db := NewSQLiteDB(t)

	require.NoError(t, db.Ping(ContextWithTimeout(t, time.Second)))
}

func TestNewTestContext(t *testing.T) {
	tc := NewTestContext(t)

	assert.NotNil(t, tc.Context)
	assert.NotNil(t, tc.Recorder)
	assert.NotNil(t, tc.Engine)
	assert.Equal(t, http.MethodGet, tc.Context.Request.Method)
}

func TestTestContext_Setters(t *testing.T) {
	tc := NewTestContext(t)
	tc.SetRequestID("req-123")
	tc.SetUserID("user-789")
	tc.SetHeader("X-Custom", "value")

	assert.Equal(t, "req-123", tc.Context.GetString("request_id"))
	assert.Equal(t, "user-789", tc.Context.GetString("jwt_user_id"))
	assert.Equal(t, "value", tc.Context.Request.Header.Get("X-Custom"))
}

func TestNewTestUUID(t *testing.T) {
	a := NewTestUUID("seed")
	b := NewTestUUID("seed")
	c := NewTestUUID("other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, TestUserID(), NewTestUUID("test-user"))
}

func TestContextWithTimeout(t *testing.T) {
	ctx := ContextWithTimeout(t, 10*time.Millisecond)

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context did not time out")
	}
}

func TestAssertEventually(t *testing.T) {
	start := time.Now()
	AssertEventually(t, func() bool {
		return time.Since(start) > 20*time.Millisecond
	}, time.Second, 5*time.Millisecond)
}

func TestAssertNever(t *testing.T) {
	AssertNever(t, func() bool { return false }, 30*time.Millisecond, 10*time.Millisecond)
}

func newEchoEngine() *gin.Engine {
	engine := gin.New()
	engine.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"name": "portal"}})
	})
	engine.POST("/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"body": string(body), "auth": c.GetHeader("Authorization")},
		})
	})
	engine.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "NOT_FOUND"}})
	})
	engine.POST("/upload", func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"name": fh.Filename, "size": fh.Size}})
	})
	return engine
}

func TestRunHTTPTestCases(t *testing.T) {
	engine := newEchoEngine()

	RunHTTPTestCases(t, engine, []HTTPTestCase{
		{
			Name:           "success",
			Path:           "/ok",
			ExpectedStatus: http.StatusOK,
			Validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				AssertSuccessResponse(t, w)
			},
		},
		{
			Name:           "error code",
			Path:           "/fail",
			ExpectedStatus: http.StatusNotFound,
			ExpectedCode:   "NOT_FOUND",
		},
	})
}

func TestDoJSON(t *testing.T) {
	engine := newEchoEngine()

	w := DoJSON(t, engine, http.MethodPost, "/echo", map[string]string{"k": "v"}, "tok")
	data := DataAs[map[string]string](t, w)

	assert.JSONEq(t, `{"k":"v"}`, data["body"])
	assert.Equal(t, "Bearer tok", data["auth"])
}

func TestDoMultipart(t *testing.T) {
	engine := newEchoEngine()

	w := DoMultipart(t, engine, "/upload", "", MultipartFile{Field: "file", Name: "a.txt", Contents: []byte("hello")})
	data := DataAs[map[string]any](t, w)

	assert.Equal(t, "a.txt", data["name"])
	assert.Equal(t, float64(5), data["size"])
}

func TestToJSONReader(t *testing.T) {
	reader := ToJSONReader(t, map[string]string{"key": "value"})

	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"value"}`, string(body))
}
