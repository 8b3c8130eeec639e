package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) StandardApiResponse {
	t.Helper()
	var body StandardApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", apperror.Invalid("phone", "invalid phone number"), http.StatusBadRequest},
		{"not found", fmt.Errorf("get: %w", apperror.NotFound("trip")), http.StatusNotFound},
		{"conflict", apperror.Conflict("coach", "license plate already used"), http.StatusConflict},
		{"forbidden", apperror.Forbidden("not allowed"), http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondError(c, tc.err)

			assert.Equal(t, tc.code, w.Code)
			body := decode(t, w)
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tc.code, body.StatusCode)
		})
	}
}

func TestRespondErrorHidesUnknownCause(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, "Internal server error", decode(t, w).Message)
}

func TestRespondErrorValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, apperror.Invalid("cvv", "cvv must have 3 digits"))

	body := decode(t, w)
	assert.Equal(t, map[string]interface{}{"cvv": "cvv must have 3 digits"}, body.Errors)
}

func TestRespondErrorFieldErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	RespondError(c, validation.FieldErrors{Fields: map[string]string{"phone": "is required"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]interface{}{"phone": "is required"}, decode(t, w).Errors)
}

func TestNewPage(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, 23, 0, 10)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(23), page.TotalElements)

	empty := NewPage[string](nil, 0, 0, 10)
	assert.NotNil(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)
}
