package discounts

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/duplicate"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindAll(ctx context.Context) ([]Discount, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).([]Discount)
	return d, args.Error(1)
}

func (m *MockRepository) FindAvailable(ctx context.Context, now time.Time) ([]Discount, error) {
	args := m.Called(ctx, now)
	d, _ := args.Get(0).([]Discount)
	return d, args.Error(1)
}

func (m *MockRepository) FindPage(ctx context.Context, page, limit int) ([]Discount, int64, error) {
	args := m.Called(ctx, page, limit)
	d, _ := args.Get(0).([]Discount)
	return d, args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (*Discount, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*Discount)
	return d, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, discount *Discount) error {
	return m.Called(ctx, discount).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, discount *Discount) error {
	return m.Called(ctx, discount).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) IsFree(ctx context.Context, chk duplicate.Check) (bool, error) {
	args := m.Called(ctx, chk)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) CountTrips(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

var (
	start = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end   = time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)
)

func TestIsAvailableIncludesBounds(t *testing.T) {
	d := Discount{StartDateTime: start, EndDateTime: end}

	assert.True(t, d.IsAvailable(start))
	assert.True(t, d.IsAvailable(end))
	assert.False(t, d.IsAvailable(start.Add(-time.Second)))
	assert.False(t, d.IsAvailable(end.Add(time.Second)))
}

func TestCreateDiscountNormalisesCode(t *testing.T) {
	repo := new(MockRepository)
	repo.On("IsFree", mock.Anything, duplicate.ForAdd("code", "SUMMER20")).Return(true, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(d *Discount) bool { return d.Code == "SUMMER20" })).Return(nil)

	res, err := NewService(repo, nil).Create(context.Background(), DiscountRequest{
		Code: " summer20 ", Amount: 20000, StartDateTime: start, EndDateTime: end,
	})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER20", res.Code)
}

func TestCreateDiscountEndBeforeStart(t *testing.T) {
	_, err := NewService(new(MockRepository), nil).Create(context.Background(), DiscountRequest{
		Code: "X", Amount: 1, StartDateTime: end, EndDateTime: start,
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestCreateDiscountDuplicateCode(t *testing.T) {
	repo := new(MockRepository)
	repo.On("IsFree", mock.Anything, mock.Anything).Return(false, nil)

	_, err := NewService(repo, nil).Create(context.Background(), DiscountRequest{
		Code: "SUMMER20", Amount: 1, StartDateTime: start, EndDateTime: end,
	})
	assert.True(t, apperror.IsConflict(err))
}

func TestGetAvailableUsesClock(t *testing.T) {
	repo := new(MockRepository)
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	repo.On("FindAvailable", mock.Anything, now).Return([]Discount{{ID: 1, Code: "MAY"}}, nil)

	svc := NewService(repo, nil).(*service)
	svc.now = func() time.Time { return now }

	got, err := svc.GetAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "MAY", got[0].Code)
}

func TestDeleteDiscountInUse(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CountTrips", mock.Anything, int64(1)).Return(int64(3), nil)

	err := NewService(repo, nil).Delete(context.Background(), 1)
	assert.True(t, apperror.IsConflict(err))
}

func TestRepositoryFindAvailable(t *testing.T) {
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "discounts" WHERE start_date_time <= $1 AND end_date_time >= $2 ORDER BY end_date_time`)).
		WithArgs(now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "amount"}).AddRow(1, "MAY", 10000))

	got, err := NewRepository(db).FindAvailable(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(10000), got[0].Amount)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
