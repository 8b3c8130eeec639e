package seats

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

func TestRepositoryOrderedSeats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .*seat_number.* FROM "booking_seats" JOIN bookings`).
		WithArgs(int64(3), "2024-05-01", "CONFIRMED").
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow(4).AddRow(11))

	seats, err := repo.OrderedSeats(context.Background(), 3, day)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 11}, seats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCountOrdered(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "booking_seats" JOIN bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountOrdered(context.Background(), 3, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestRepositoryGetTripCoachNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT trips.id AS trip_id, coaches.coach_type, coaches.capacity FROM "trips"`).
		WillReturnRows(sqlmock.NewRows([]string{"trip_id", "coach_type", "capacity"}))

	_, err := repo.GetTripCoach(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestRepositoryGetTripCoach(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`FROM "trips" JOIN coaches`).
		WillReturnRows(sqlmock.NewRows([]string{"trip_id", "coach_type", "capacity"}).AddRow(2, "LIMOUSINE", 36))

	tc, err := repo.GetTripCoach(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, CoachTypeLimousine, tc.CoachType)
	assert.Equal(t, 36, tc.Capacity)
}
