package provinces

import (
	"context"
	"errors"
	"regexp"
	"testing"

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

func TestGetAllWithoutCache(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "provinces" ORDER BY name`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "Da Nang").AddRow(1, "Ha Noi"))

	svc := NewService(NewRepository(db), nil)
	got, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ProvinceResponse{{ID: 2, Name: "Da Nang"}, {ID: 1, Name: "Ha Noi"}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllDatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "provinces"`)).WillReturnError(errors.New("boom"))

	_, err := NewService(NewRepository(db), nil).GetAll(context.Background())
	assert.Error(t, err)
}

func TestUpsertSkipsEmpty(t *testing.T) {
	db, mock := newMockDB(t)

	n, err := NewRepository(db).Upsert(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
