package tripsearch

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var summaryColumns = []string{
	"id", "source_id", "source_name", "destination_id", "destination_name",
	"departure_date_time", "duration", "price", "discount_id", "discount_amount",
	"coach_id", "coach_name", "coach_type", "capacity", "license_plate",
}

func TestRepositoryFindTrips(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)
	dep := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM "trips" JOIN coaches .* WHERE trips.source_id = \$1 AND trips.destination_id = \$2`).
		WillReturnRows(sqlmock.NewRows(summaryColumns).
			AddRow(10, 1, "Ha Noi", 2, "Ho Chi Minh", dep, 30, 200000, 3, 20000, 4, "Sleeper 01", "BED", 36, "29B-12345"))

	trips, err := repo.FindTrips(context.Background(), Criteria{SourceID: 1, DestinationID: 2, From: dep, To: dep})
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "Ha Noi", trips[0].SourceName)
	assert.Equal(t, int64(20000), trips[0].DiscountAmount)
	require.NotNil(t, trips[0].DiscountID)
	assert.Equal(t, int64(3), *trips[0].DiscountID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetTripNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`FROM "trips" JOIN coaches .* WHERE trips.id = \$1`).
		WillReturnRows(sqlmock.NewRows(summaryColumns))

	_, err := repo.GetTrip(context.Background(), 77)
	assert.ErrorIs(t, err, ErrTripNotFound)
}
