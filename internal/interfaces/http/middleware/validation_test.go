package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsvs/backend/internal/interfaces/http/dto"
)

type signupRequest struct {
	Name     string `json:"name" binding:"required,portalname,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	assert.NoError(t, v.Var("Анна-Мария", PortalNameTag))
	assert.Error(t, v.Var("R2D2", PortalNameTag))
}

func TestFormatValidationErrors(t *testing.T) {
	router := newValidationRouter()

	t.Run("lists every rejected field by json name", func(t *testing.T) {
		w := postJSON(router, `{"name": "R2D2", "email": "invalid", "password": "123"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		assert.Equal(t, w.Header().Get(RequestIDHeader), resp.Error.RequestID)

		messages := map[string]string{}
		for _, d := range resp.Error.Details {
			messages[d.Field] = d.Message
		}
		assert.Equal(t, map[string]string{
			"name":     "Should contain only letters",
			"email":    "Invalid email format",
			"password": "Must be at least 6 characters",
		}, messages)
	})

	t.Run("malformed json gets a body detail", func(t *testing.T) {
		w := postJSON(router, `{"name":`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "body", resp.Error.Details[0].Field)
	})

	t.Run("valid input passes", func(t *testing.T) {
		w := postJSON(router, `{"name": "Ivan", "email": "ivan@example.com", "password": "secret1"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type sample struct {
		Required string `validate:"required"`
		Min      string `validate:"min=5"`
		Max      string `validate:"max=3"`
		UUID     string `validate:"omitempty,uuid"`
		OneOf    string `validate:"omitempty,oneof=a b"`
		GTE      int    `validate:"gte=10"`
	}

	v := validator.New()
	err := v.Struct(sample{Min: "ab", Max: "abcdef", UUID: "nope", OneOf: "c", GTE: 1})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	got := map[string]string{}
	for _, e := range errs {
		got[e.Field()] = getValidationMessage(e)
	}

	assert.Equal(t, map[string]string{
		"Required": "This field is required",
		"Min":      "Must be at least 5 characters",
		"Max":      "Must be at most 3 characters",
		"UUID":     "Invalid UUID format",
		"OneOf":    "Must be one of: a b",
		"GTE":      "Must be greater than or equal to 10",
	}, got)
}
