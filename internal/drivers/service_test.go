package drivers

import (
	"context"
	"regexp"
	"testing"

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

func (m *MockRepository) FindAll(ctx context.Context) ([]Driver, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).([]Driver)
	return d, args.Error(1)
}

func (m *MockRepository) FindPage(ctx context.Context, page, limit int) ([]Driver, int64, error) {
	args := m.Called(ctx, page, limit)
	d, _ := args.Get(0).([]Driver)
	return d, args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (*Driver, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*Driver)
	return d, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, driver *Driver) error {
	return m.Called(ctx, driver).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, driver *Driver) error {
	return m.Called(ctx, driver).Error(0)
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

func (m *MockRepository) CountAvailable(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func validRequest() DriverRequest {
	return DriverRequest{
		FirstName:     "Binh",
		LastName:      "Tran",
		LicenseNumber: "790123456789",
		Phone:         "0987654321",
		Email:         "binh@example.com",
		Dob:           "1985-02-14",
		Gender:        true,
		Address:       "Hai Phong",
	}
}

func TestCreateDriver(t *testing.T) {
	repo := new(MockRepository)
	repo.On("IsFree", mock.Anything, mock.MatchedBy(func(c duplicate.Check) bool { return c.Mode == duplicate.ModeAdd })).Return(true, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*drivers.Driver")).Return(nil)

	res, err := NewService(repo).Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "1985-02-14", res.Dob)
	assert.False(t, res.Quit)
	repo.AssertNumberOfCalls(t, "IsFree", 3)
}

func TestCreateDriverReportsTakenFields(t *testing.T) {
	repo := new(MockRepository)
	repo.On("IsFree", mock.Anything, duplicate.ForAdd("phone", "0987654321")).Return(false, nil)
	repo.On("IsFree", mock.Anything, duplicate.ForAdd("email", "binh@example.com")).Return(false, nil)
	repo.On("IsFree", mock.Anything, duplicate.ForAdd("license_number", "790123456789")).Return(true, nil)

	_, err := NewService(repo).Create(context.Background(), validRequest())
	require.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), "email, phone")
}

func TestCreateDriverBadInput(t *testing.T) {
	req := validRequest()
	req.Phone = "12345"
	_, err := NewService(new(MockRepository)).Create(context.Background(), req)
	assert.True(t, apperror.IsValidation(err))

	req = validRequest()
	req.Dob = "14/02/1985"
	_, err = NewService(new(MockRepository)).Create(context.Background(), req)
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateDriverUsesUpdateMode(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, int64(2)).Return(&Driver{ID: 2}, nil)
	repo.On("IsFree", mock.Anything, mock.MatchedBy(func(c duplicate.Check) bool {
		return c.Mode == duplicate.ModeUpdate && c.ID == 2
	})).Return(true, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.ID = 2
	req.Quit = true
	res, err := NewService(repo).Update(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.Quit)
}

func TestDeleteDriverWithTrips(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CountTrips", mock.Anything, int64(2)).Return(int64(4), nil)

	err := NewService(repo).Delete(context.Background(), 2)
	assert.True(t, apperror.IsConflict(err))
}

func TestDeleteMissingDriver(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CountTrips", mock.Anything, int64(2)).Return(int64(0), nil)
	repo.On("Delete", mock.Anything, int64(2)).Return(ErrDriverNotFound)

	err := NewService(repo).Delete(context.Background(), 2)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRepositoryCountAvailable(t *testing.T) {
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "drivers" WHERE quit = $1`)).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

	n, err := NewRepository(db).CountAvailable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
