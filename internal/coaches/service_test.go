package coaches

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/seats"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/duplicate"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindAll(ctx context.Context) ([]Coach, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]Coach)
	return c, args.Error(1)
}

func (m *MockRepository) FindPage(ctx context.Context, page, limit int) ([]Coach, int64, error) {
	args := m.Called(ctx, page, limit)
	c, _ := args.Get(0).([]Coach)
	return c, args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (*Coach, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*Coach)
	return c, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, coach *Coach) error {
	args := m.Called(ctx, coach)
	coach.ID = 10
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, coach *Coach) error {
	return m.Called(ctx, coach).Error(0)
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

func (m *MockRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func validRequest() CoachRequest {
	return CoachRequest{Name: "Thaco Mobihome", Capacity: 34, LicensePlate: "29B-12345", CoachType: seats.CoachTypeBed}
}

func TestCreateCoach(t *testing.T) {
	repo := new(MockRepository)
	repo.On("IsFree", mock.Anything, duplicate.ForAdd("license_plate", "29B-12345")).Return(true, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*coaches.Coach")).Return(nil)

	res, err := NewService(repo, nil).Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.ID)
	assert.Equal(t, seats.CoachTypeBed, res.CoachType)
	repo.AssertExpectations(t)
}

func TestCreateCoachDuplicatePlate(t *testing.T) {
	repo := new(MockRepository)
	repo.On("IsFree", mock.Anything, mock.Anything).Return(false, nil)

	_, err := NewService(repo, nil).Create(context.Background(), validRequest())
	assert.True(t, apperror.IsConflict(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCoachCapacityAboveLayout(t *testing.T) {
	repo := new(MockRepository)
	req := validRequest()
	req.Capacity = seats.LayoutSize(seats.CoachTypeBed) + 1

	_, err := NewService(repo, nil).Create(context.Background(), req)
	assert.True(t, apperror.IsValidation(err))
}

func TestCreateCoachInvalidType(t *testing.T) {
	repo := new(MockRepository)
	req := validRequest()
	req.CoachType = "BOAT"

	_, err := NewService(repo, nil).Create(context.Background(), req)
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateCoachIgnoresOwnPlate(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, int64(4)).Return(&Coach{ID: 4, Name: "old", LicensePlate: "29B-12345", CoachType: seats.CoachTypeBed}, nil)
	repo.On("IsFree", mock.Anything, duplicate.ForUpdate(4, "license_plate", "29B-12345")).Return(true, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *Coach) bool { return c.Name == "Thaco Mobihome" })).Return(nil)

	req := validRequest()
	req.ID = 4
	res, err := NewService(repo, nil).Update(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Thaco Mobihome", res.Name)
}

func TestUpdateMissingCoach(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, int64(99)).Return(nil, ErrCoachNotFound)

	req := validRequest()
	req.ID = 99
	_, err := NewService(repo, nil).Update(context.Background(), req)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteCoachInUse(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CountTrips", mock.Anything, int64(4)).Return(int64(2), nil)

	err := NewService(repo, nil).Delete(context.Background(), 4)
	assert.True(t, apperror.IsConflict(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteCoach(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CountTrips", mock.Anything, int64(4)).Return(int64(0), nil)
	repo.On("Delete", mock.Anything, int64(4)).Return(nil)

	require.NoError(t, NewService(repo, nil).Delete(context.Background(), 4))
}

func TestGetPage(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindPage", mock.Anything, 1, 2).Return([]Coach{{ID: 3}, {ID: 4}}, int64(5), nil)

	page, err := NewService(repo, nil).GetPage(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.Page)
}
