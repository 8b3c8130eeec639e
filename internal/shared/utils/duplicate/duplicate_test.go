package duplicate

import (
	"context"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
)

type coach struct {
	ID           int64
	LicensePlate string
}

func contextWith(params gin.Params) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = params
	return c
}

func TestParse(t *testing.T) {
	columns := map[string]string{"licensePlate": "license_plate"}

	chk, err := Parse(contextWith(gin.Params{
		{Key: "mode", Value: "update"},
		{Key: "id", Value: "4"},
		{Key: "field", Value: "licensePlate"},
		{Key: "value", Value: "29B-12345"},
	}), columns)
	require.NoError(t, err)
	assert.Equal(t, Check{Mode: ModeUpdate, ID: 4, Field: "licensePlate", Column: "license_plate", Value: "29B-12345"}, chk)

	_, err = Parse(contextWith(gin.Params{
		{Key: "mode", Value: "add"},
		{Key: "id", Value: "-1"},
		{Key: "field", Value: "name"},
		{Key: "value", Value: "x"},
	}), columns)
	assert.True(t, apperror.IsValidation(err))

	_, err = Parse(contextWith(gin.Params{
		{Key: "mode", Value: "upsert"},
		{Key: "id", Value: "1"},
		{Key: "field", Value: "licensePlate"},
		{Key: "value", Value: "x"},
	}), columns)
	assert.True(t, apperror.IsValidation(err))
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestIsFreeAddMode(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "coaches" WHERE license_plate = $1`)).
		WithArgs("29B-12345").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	free, err := IsFree(context.Background(), db, &coach{}, ForAdd("license_plate", "29B-12345"))
	require.NoError(t, err)
	assert.False(t, free)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsFreeUpdateModeIgnoresOwnRow(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "coaches" WHERE license_plate = $1 AND id <> $2`)).
		WithArgs("29B-12345", int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	free, err := IsFree(context.Background(), db, &coach{}, ForUpdate(4, "license_plate", "29B-12345"))
	require.NoError(t, err)
	assert.True(t, free)
	assert.NoError(t, mock.ExpectationsWereMet())
}
