package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
)

type cardForm struct {
	Phone      string `json:"phone" validate:"required,vnphone"`
	CardNumber string `json:"cardNumber" validate:"required,visa"`
	Expired    string `json:"expired" validate:"required,cardexpiry"`
	Cvv        string `json:"cvv" validate:"required,len=3,numeric"`
}

func TestVNPhone(t *testing.T) {
	assert.True(t, IsVNPhone("0912345678"))
	assert.True(t, IsVNPhone("0381234567"))
	assert.True(t, IsVNPhone("84912345678"))
	assert.False(t, IsVNPhone("0212345678"))
	assert.False(t, IsVNPhone("091234567"))
	assert.False(t, IsVNPhone("09123456789"))
}

func TestIsFutureExpiry(t *testing.T) {
	now := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsFutureExpiry("05/24", now))
	assert.True(t, IsFutureExpiry("01/25", now))
	assert.False(t, IsFutureExpiry("04/24", now))
	assert.False(t, IsFutureExpiry("13/25", now))
	assert.False(t, IsFutureExpiry("5/25", now))
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	Now = func() time.Time { return time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { Now = time.Now })
	v := New()

	err := Struct(v, cardForm{Phone: "123", CardNumber: "5111111111111111", Expired: "01/20", Cvv: "12a"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "must be a valid Vietnamese phone number", fields.Fields["phone"])
	assert.Equal(t, "must be a valid VISA card number", fields.Fields["cardNumber"])
	assert.Equal(t, "must be a future date in MM/yy format", fields.Fields["expired"])
	assert.Contains(t, fields.Fields, "cvv")

	assert.NoError(t, Struct(v, cardForm{Phone: "0912345678", CardNumber: "4111111111111", Expired: "12/30", Cvv: "123"}))
}
