package params

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
)

func newContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestID(t *testing.T) {
	c := newContext("/drivers/7")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	id, err := ID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	c.Params = gin.Params{{Key: "id", Value: "-1"}}
	_, err = ID(c, "id")
	assert.True(t, apperror.IsValidation(err))
}

func TestPaging(t *testing.T) {
	page, limit := Paging(newContext("/drivers/paging?page=2&limit=20"))
	assert.Equal(t, 2, page)
	assert.Equal(t, 20, limit)

	page, limit = Paging(newContext("/drivers/paging?page=-3&limit=abc"))
	assert.Equal(t, 0, page)
	assert.Equal(t, DefaultLimit, limit)

	_, limit = Paging(newContext("/drivers/paging?limit=1000"))
	assert.Equal(t, MaxLimit, limit)
}

func TestQueryID(t *testing.T) {
	id, err := QueryID(newContext("/bookings/seatBooking?tripId=12"), "tripId")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
}
