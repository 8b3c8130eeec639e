package seats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) OrderedSeats(ctx context.Context, tripID int64, date time.Time) ([]int, error) {
	args := m.Called(ctx, tripID, date)
	seats, _ := args.Get(0).([]int)
	return seats, args.Error(1)
}

func (m *MockRepository) OrderedSeatsExcluding(ctx context.Context, tripID int64, date time.Time, bookingID int64) ([]int, error) {
	args := m.Called(ctx, tripID, date, bookingID)
	seats, _ := args.Get(0).([]int)
	return seats, args.Error(1)
}

func (m *MockRepository) CountOrdered(ctx context.Context, tripID int64, date time.Time) (int, error) {
	args := m.Called(ctx, tripID, date)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetTripCoach(ctx context.Context, tripID int64) (*TripCoach, error) {
	args := m.Called(ctx, tripID)
	tc, _ := args.Get(0).(*TripCoach)
	return tc, args.Error(1)
}

func TestGetSeatMap(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetTripCoach", mock.Anything, int64(5)).Return(&TripCoach{TripID: 5, CoachType: CoachTypeChair, Capacity: 45}, nil)
	repo.On("OrderedSeats", mock.Anything, int64(5), mock.AnythingOfType("time.Time")).Return([]int{1, 44}, nil)

	res, err := svc.GetSeatMap(context.Background(), 5, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, CoachTypeChair, res.CoachType)
	require.Len(t, res.Floors, 1)
	assert.True(t, res.Floors[0].Seats[0].Ordered)
	assert.False(t, res.Floors[0].Seats[1].Ordered)
	assert.Equal(t, []int{1, 44}, res.OrderedSeats)
}

func TestGetSeatMapUnknownTrip(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetTripCoach", mock.Anything, int64(9)).Return(nil, ErrTripNotFound)

	_, err := NewService(repo).GetSeatMap(context.Background(), 9, "2024-05-01")
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetSeatBookingsBadDate(t *testing.T) {
	_, err := NewService(new(MockRepository)).GetSeatBookings(context.Background(), 1, "May 1st")
	assert.True(t, apperror.IsValidation(err))
}

func TestGetSeatBookings(t *testing.T) {
	repo := new(MockRepository)
	repo.On("OrderedSeats", mock.Anything, int64(2), mock.AnythingOfType("time.Time")).Return([]int{3, 4}, nil)

	res, err := NewService(repo).GetSeatBookings(context.Background(), 2, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, []SeatBookingResponse{{SeatNumber: 3}, {SeatNumber: 4}}, res)
}
