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

	"github.com/workhive/todos-backend/internal/interfaces/http/dto"
)

func TestSetupValidator(t *testing.T) {
	// Should not panic
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	type createRequest struct {
		Name   string `json:"name" binding:"required,max=100"`
		Effort string `json:"effort" binding:"required"`
	}

	SetupValidator()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
	})

	t.Run("returns per-field details for validator failures", func(t *testing.T) {
		body := strings.NewReader(`{"name": ""}`)
		req := httptest.NewRequest("POST", "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 2)

		// Field names come from the json tags, not the Go field names
		fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "effort")
	})

	t.Run("falls back to bad request for malformed JSON", func(t *testing.T) {
		body := strings.NewReader(`{not json`)
		req := httptest.NewRequest("POST", "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
	})

	t.Run("accepts valid input", func(t *testing.T) {
		body := strings.NewReader(`{"name": "Deep Work", "effort": "2"}`)
		req := httptest.NewRequest("POST", "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequestIDFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("prefers the value set by the RequestID middleware", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Set("request_id", "ctx-id")
		c.Request.Header.Set(RequestIDKey, "header-id")

		assert.Equal(t, "ctx-id", RequestIDFromContext(c))
	})

	t.Run("falls back to the inbound header", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.Header.Set(RequestIDKey, "header-id")

		assert.Equal(t, "header-id", RequestIDFromContext(c))
	})
}

func TestGetValidationMessage(t *testing.T) {
	type bounds struct {
		Name  string `json:"name" binding:"required"`
		Count int    `json:"count" binding:"min=1,max=10"`
		ID    string `json:"id" binding:"omitempty,uuid"`
	}

	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(bounds{Count: 99, ID: "not-a-uuid"})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "")
	require.NotNil(t, resp.Error)

	messages := map[string]string{}
	for _, d := range resp.Error.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", messages["name"])
	assert.Equal(t, "Must be at most 10", messages["count"])
	assert.Equal(t, "Invalid UUID format", messages["id"])
}
