package database

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMigrateConstraints(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	for _, stmt := range constraintStatements {
		mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, MigrateConstraints(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatIndexIgnoresReleasedRows(t *testing.T) {
	assert.Contains(t, constraintStatements[0], "WHERE released = false")
	assert.Contains(t, constraintStatements[0], "(trip_id, travel_date, seat_number)")
}

func TestModelsCoverBookingTables(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	var tables []string
	for _, m := range Models() {
		stmt := &gorm.Statement{DB: db}
		require.NoError(t, stmt.Parse(m))
		tables = append(tables, stmt.Schema.Table)
	}
	assert.Subset(t, tables, []string{"trips", "bookings", "booking_seats", "payments", "user_permissions"})
}
