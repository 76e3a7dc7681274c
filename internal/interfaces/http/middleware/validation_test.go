package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/propdesk/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type monthRequest struct {
	Kind  string  `json:"kind" binding:"required,oneof=ISSUED RECEIVED EXPENSE"`
	Month string  `json:"corresponding_month" binding:"omitempty,yearmonth"`
	Patch *string `json:"patch_month" binding:"omitempty,yearmonth"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID())
	r.POST("/test", func(c *gin.Context) {
		var req monthRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func postJSON(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidation_YearMonth(t *testing.T) {
	r := newValidationRouter()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"valid month", `{"kind":"ISSUED","corresponding_month":"2025-07"}`, http.StatusOK},
		{"empty month is optional", `{"kind":"ISSUED"}`, http.StatusOK},
		{"valid pointer month", `{"kind":"ISSUED","patch_month":"2025-12"}`, http.StatusOK},
		{"month out of range", `{"kind":"ISSUED","corresponding_month":"2025-13"}`, http.StatusBadRequest},
		{"full date rejected", `{"kind":"ISSUED","corresponding_month":"2025-07-01"}`, http.StatusBadRequest},
		{"bad pointer month", `{"kind":"ISSUED","patch_month":"July"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestHandleValidationError_Details(t *testing.T) {
	r := newValidationRouter()

	w := postJSON(r, `{"kind":"OTHER","corresponding_month":"nope"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-42", resp.Error.RequestID)

	messages := map[string]string{}
	for _, d := range resp.Error.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "Must be one of: ISSUED RECEIVED EXPENSE", messages["kind"])
	assert.Equal(t, "Must be a month in YYYY-MM format", messages["corresponding_month"])
}
