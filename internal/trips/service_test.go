package trips

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/constants"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/tripsearch"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindAll(ctx context.Context) ([]TripDetail, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).([]TripDetail)
	return t, args.Error(1)
}

func (m *MockRepository) FindPage(ctx context.Context, page, limit int) ([]TripDetail, int64, error) {
	args := m.Called(ctx, page, limit)
	t, _ := args.Get(0).([]TripDetail)
	return t, args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) FindDetail(ctx context.Context, id int64) (*TripDetail, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*TripDetail)
	return t, args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (*Trip, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*Trip)
	return t, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, trip *Trip) error {
	args := m.Called(ctx, trip)
	trip.ID = 3
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, trip *Trip) error {
	return m.Called(ctx, trip).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) CountBookings(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Exists(ctx context.Context, table string, id int64) (bool, error) {
	args := m.Called(ctx, table, id)
	return args.Bool(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) error {
	return m.Called(ctx, key, dest).Error(0)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCache) DeletePattern(ctx context.Context, patterns ...string) error {
	return m.Called(ctx, patterns).Error(0)
}

func (m *MockCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	return m.Called(ctx, key, ttl, fetcher, dest).Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func validRequest() TripRequest {
	return TripRequest{
		DriverID:          1,
		CoachID:           2,
		SourceID:          10,
		DestinationID:     20,
		Price:             200000,
		DepartureDateTime: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		Duration:          6,
	}
}

func allExist(repo *MockRepository) {
	repo.On("Exists", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
}

func detail(id int64) *TripDetail {
	return &TripDetail{
		TripSummary: tripsearch.TripSummary{ID: id, SourceName: "Ha Noi", DestinationName: "Hai Phong", Price: 200000},
		DriverID:    1,
		DriverName:  "Van Nam",
	}
}

func TestCreateTripInvalidatesCache(t *testing.T) {
	repo := new(MockRepository)
	allExist(repo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*trips.Trip")).Return(nil)
	repo.On("FindDetail", mock.Anything, int64(3)).Return(detail(3), nil)

	c := new(MockCache)
	c.On("DeletePattern", mock.Anything, []string{constants.PATTERN_INVALIDATE_TRIPS_ALL}).Return(nil)

	res, err := NewService(repo, c).Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.ID)
	assert.Equal(t, "Van Nam", res.DriverName)
	c.AssertExpectations(t)
}

func TestCreateTripSameSourceAndDestination(t *testing.T) {
	req := validRequest()
	req.DestinationID = req.SourceID

	_, err := NewService(new(MockRepository), nil).Create(context.Background(), req)
	assert.True(t, apperror.IsValidation(err))
}

func TestCreateTripUnknownCoach(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Exists", mock.Anything, "coaches", int64(2)).Return(false, nil)
	allExist(repo)

	_, err := NewService(repo, nil).Create(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTripChecksDiscount(t *testing.T) {
	discount := int64(4)
	req := validRequest()
	req.DiscountID = &discount

	repo := new(MockRepository)
	repo.On("Exists", mock.Anything, "discounts", int64(4)).Return(false, nil)
	allExist(repo)

	_, err := NewService(repo, nil).Create(context.Background(), req)
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateMissingTrip(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, int64(8)).Return(nil, ErrTripNotFound)

	req := validRequest()
	req.ID = 8
	_, err := NewService(repo, nil).Update(context.Background(), req)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateTripAppliesChanges(t *testing.T) {
	existing := &Trip{ID: 3, Price: 150000}
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, int64(3)).Return(existing, nil)
	allExist(repo)
	repo.On("Update", mock.Anything, existing).Return(nil)
	repo.On("FindDetail", mock.Anything, int64(3)).Return(detail(3), nil)

	req := validRequest()
	req.ID = 3
	_, err := NewService(repo, nil).Update(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(200000), existing.Price)
	assert.Equal(t, 6, existing.Duration)
}

func TestDeleteTripWithBookings(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CountBookings", mock.Anything, int64(3)).Return(int64(1), nil)

	err := NewService(repo, nil).Delete(context.Background(), 3)
	assert.True(t, apperror.IsConflict(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGetByIDUsesCache(t *testing.T) {
	c := new(MockCache)
	c.On("GetOrSet", mock.Anything, constants.BuildTripDetailKey(3), constants.TTL_TRIP_DETAIL, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(4).(*TripDetail).DriverName = "cached"
		}).
		Return(nil)

	res, err := NewService(new(MockRepository), c).GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "cached", res.DriverName)
}

func TestGetByIDNotFoundWithoutCache(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindDetail", mock.Anything, int64(9)).Return(nil, ErrTripNotFound)

	_, err := NewService(repo, nil).GetByID(context.Background(), 9)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetPageWithoutCache(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindPage", mock.Anything, 0, 10).Return([]TripDetail{*detail(1), *detail(2)}, int64(12), nil)

	p, err := NewService(repo, nil).GetPage(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Len(t, p.Content, 2)
	assert.Equal(t, int64(12), p.TotalElements)
	assert.Equal(t, 2, p.TotalPages)
}

func TestArrivalDateTime(t *testing.T) {
	trip := Trip{DepartureDateTime: time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC), Duration: 5}
	assert.Equal(t, time.Date(2024, 5, 2, 3, 0, 0, 0, time.UTC), trip.ArrivalDateTime())
}
