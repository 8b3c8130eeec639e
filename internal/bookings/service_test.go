package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/notifications"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/seats"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/trips"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/tripsearch"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindAll(ctx context.Context, query ListQuery) ([]Booking, error) {
	args := m.Called(ctx, query)
	b, _ := args.Get(0).([]Booking)
	return b, args.Error(1)
}

func (m *MockRepository) FindPage(ctx context.Context, query ListQuery, page, limit int) ([]Booking, int64, error) {
	args := m.Called(ctx, query, page, limit)
	b, _ := args.Get(0).([]Booking)
	return b, args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (*Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*Booking)
	return b, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, booking *Booking) error {
	args := m.Called(ctx, booking)
	if args.Error(0) == nil {
		booking.ID = 42
	}
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, booking *Booking, seatNumbers []int) error {
	args := m.Called(ctx, booking, seatNumbers)
	booking.Seats = nil
	for _, n := range seatNumbers {
		booking.Seats = append(booking.Seats, BookingSeat{BookingID: booking.ID, SeatNumber: n})
	}
	return args.Error(0)
}

func (m *MockRepository) Cancel(ctx context.Context, booking *Booking) error {
	return m.Called(ctx, booking).Error(0)
}

type fakeTrips struct {
	trip *trips.TripDetail
}

func (f *fakeTrips) GetByID(ctx context.Context, id int64) (*trips.TripDetail, error) {
	if f.trip == nil || f.trip.ID != id {
		return nil, apperror.NotFoundError{Resource: "trip", Err: trips.ErrTripNotFound}
	}
	return f.trip, nil
}

type fakeOrdered struct {
	seats    []int
	excluded int64
}

func (f *fakeOrdered) OrderedSeats(ctx context.Context, tripID int64, date time.Time) ([]int, error) {
	return f.seats, nil
}

func (f *fakeOrdered) OrderedSeatsExcluding(ctx context.Context, tripID int64, date time.Time, bookingID int64) ([]int, error) {
	f.excluded = bookingID
	return f.seats, nil
}

type fakeLocker struct {
	err      error
	locked   []int
	unlocked bool
	date     string
}

func (f *fakeLocker) Lock(ctx context.Context, tripID int64, date string, seatNumbers []int, owner string) error {
	if f.err != nil {
		return f.err
	}
	f.locked = seatNumbers
	f.date = date
	return nil
}

func (f *fakeLocker) Unlock(ctx context.Context, tripID int64, date string, seatNumbers []int, owner string) error {
	f.unlocked = true
	return nil
}

type fakeEvents struct {
	created   []notifications.BookingNotice
	cancelled []notifications.BookingNotice
	err       error
}

func (f *fakeEvents) BookingCreated(ctx context.Context, n notifications.BookingNotice) error {
	f.created = append(f.created, n)
	return f.err
}

func (f *fakeEvents) BookingCancelled(ctx context.Context, n notifications.BookingNotice) error {
	f.cancelled = append(f.cancelled, n)
	return f.err
}

var fixedNow = time.Date(2024, 4, 20, 9, 30, 0, 0, time.UTC)

func testTrip() *trips.TripDetail {
	return &trips.TripDetail{
		TripSummary: tripsearch.TripSummary{
			ID:                7,
			SourceName:        "Ha Noi",
			DestinationName:   "Hai Phong",
			DepartureDateTime: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
			Duration:          3,
			Price:             200000,
			DiscountAmount:    20000,
			CoachName:         "Limousine 01",
			Capacity:          16,
			LicensePlate:      "29B-123.45",
		},
		DriverName: "Van Nam",
	}
}

type fixture struct {
	repo    *MockRepository
	ordered *fakeOrdered
	locker  *fakeLocker
	events  *fakeEvents
	svc     *service
}

func newFixture() *fixture {
	f := &fixture{
		repo:    new(MockRepository),
		ordered: &fakeOrdered{},
		locker:  &fakeLocker{},
		events:  &fakeEvents{},
	}
	svc := NewService(f.repo, &fakeTrips{trip: testTrip()}, f.ordered, f.locker, f.events, nil, Options{}).(*service)
	svc.now = func() time.Time { return fixedNow }
	f.svc = svc
	return f
}

func validRequest() BookingRequest {
	return BookingRequest{
		TripID:        7,
		SeatNumber:    []int{3, 4},
		PickUpAddress: "12 Tran Hung Dao",
		CustFirstName: "Lan",
		CustLastName:  "Nguyen",
		Phone:         "0912345678",
		Email:         "lan@example.com",
		PaymentMethod: PaymentMethodCard,
	}
}

func TestCreateComputesTotalAndPaysByCard(t *testing.T) {
	f := newFixture()
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*bookings.Booking")).Return(nil)

	res, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), res.ID)
	assert.Equal(t, int64(360000), res.TotalPayment)
	assert.Equal(t, PaymentStatusPaid, res.PaymentStatus)
	require.NotNil(t, res.PaymentDateTime)
	assert.Equal(t, []int{3, 4}, res.SeatNumber)
	assert.Equal(t, "2024-05-01", res.TravelDate)
	assert.Regexp(t, `^BUS-20240420-[A-Z]{6}$`, res.BookingRef)
	require.NotNil(t, res.Trip)
	assert.Equal(t, "Van Nam", res.Trip.DriverName)

	saved := f.repo.Calls[0].Arguments.Get(1).(*Booking)
	require.Len(t, saved.Payments, 1)
	assert.Equal(t, TxCompleted, saved.Payments[0].Status)
	assert.Equal(t, BookingTypeOneWay, saved.BookingType)

	assert.Equal(t, []int{3, 4}, f.locker.locked)
	assert.Equal(t, "2024-05-01", f.locker.date)
	assert.True(t, f.locker.unlocked)
	require.Len(t, f.events.created, 1)
	assert.Equal(t, "Ha Noi - Hai Phong", f.events.created[0].Route)
}

func TestCreateCashStaysUnpaid(t *testing.T) {
	f := newFixture()
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.PaymentMethod = PaymentMethodCash
	res, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, PaymentStatusUnpaid, res.PaymentStatus)
	assert.Nil(t, res.PaymentDateTime)
	saved := f.repo.Calls[0].Arguments.Get(1).(*Booking)
	assert.Equal(t, TxPending, saved.Payments[0].Status)
}

func TestCreateRejectsWrongTotal(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.TotalPayment = 400000
	_, err := f.svc.Create(context.Background(), req)

	assert.True(t, apperror.IsValidation(err))
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRejectsOrderedSeats(t *testing.T) {
	f := newFixture()
	f.ordered.seats = []int{4, 9, 3}

	_, err := f.svc.Create(context.Background(), validRequest())

	require.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), "3, 4")
	assert.Nil(t, f.locker.locked)
}

func TestCreateRejectsSeatOutsideCoach(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.SeatNumber = []int{17}
	_, err := f.svc.Create(context.Background(), req)

	assert.True(t, apperror.IsValidation(err))
}

func TestCreateSeatLimitComesFromOptions(t *testing.T) {
	f := newFixture()
	f.svc.maxSeats = 1

	_, err := f.svc.Create(context.Background(), validRequest())
	require.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "at most 1")

	f.svc.maxSeats = 6
	f.ordered.seats = []int{1}
	req := validRequest()
	req.SeatNumber = []int{1, 2, 3, 4, 5, 6}
	req.TotalPayment = 0
	_, err = f.svc.Create(context.Background(), req)
	assert.True(t, apperror.IsConflict(err))
}

func TestCreateRejectsUnknownTrip(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.TripID = 99
	_, err := f.svc.Create(context.Background(), req)

	assert.True(t, apperror.IsValidation(err))
}

func TestCreateSeatLockedByAnotherRequest(t *testing.T) {
	f := newFixture()
	f.locker.err = seats.ErrSeatLocked

	_, err := f.svc.Create(context.Background(), validRequest())

	assert.True(t, apperror.IsConflict(err))
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateFallsBackWhenLockerIsDown(t *testing.T) {
	f := newFixture()
	f.locker.err = errors.New("dial tcp: connection refused")
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Create(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestCreateSeatTakenAtCommit(t *testing.T) {
	f := newFixture()
	f.repo.On("Create", mock.Anything, mock.Anything).Return(ErrSeatTaken)

	_, err := f.svc.Create(context.Background(), validRequest())

	assert.True(t, apperror.IsConflict(err))
	assert.True(t, f.locker.unlocked)
	assert.Empty(t, f.events.created)
}

func TestCreatePublishFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.events.err = errors.New("broker down")
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Create(context.Background(), validRequest())
	assert.NoError(t, err)
}

func confirmedBooking() *Booking {
	paidAt := fixedNow.Add(-time.Hour)
	return &Booking{
		ID:              42,
		BookingRef:      "BUS-20240420-ABCDEF",
		TripID:          7,
		TravelDate:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		BookingType:     BookingTypeOneWay,
		CustFirstName:   "Lan",
		CustLastName:    "Nguyen",
		Email:           "lan@example.com",
		TotalPayment:    360000,
		PaymentMethod:   PaymentMethodCard,
		PaymentStatus:   PaymentStatusPaid,
		PaymentDateTime: &paidAt,
		Status:          StatusConfirmed,
		Seats:           []BookingSeat{{SeatNumber: 3}, {SeatNumber: 4}},
		Payments:        []Payment{{ID: 1, Amount: 360000, Status: TxCompleted}},
	}
}

func TestUpdateExcludesOwnSeats(t *testing.T) {
	f := newFixture()
	f.repo.On("FindByID", mock.Anything, int64(42)).Return(confirmedBooking(), nil)
	f.repo.On("Update", mock.Anything, mock.Anything, []int{4, 5}).Return(nil)

	req := validRequest()
	req.ID = 42
	req.SeatNumber = []int{4, 5}
	res, err := f.svc.Update(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(42), f.ordered.excluded)
	assert.Equal(t, []int{4, 5}, res.SeatNumber)
	assert.Equal(t, int64(360000), res.TotalPayment)
}

func TestUpdateCancelledBooking(t *testing.T) {
	f := newFixture()
	b := confirmedBooking()
	b.Status = StatusCancelled
	f.repo.On("FindByID", mock.Anything, int64(42)).Return(b, nil)

	req := validRequest()
	req.ID = 42
	_, err := f.svc.Update(context.Background(), req)

	assert.True(t, apperror.IsConflict(err))
}

func TestCancelRefundsPaidBooking(t *testing.T) {
	f := newFixture()
	b := confirmedBooking()
	f.repo.On("FindByID", mock.Anything, int64(42)).Return(b, nil)
	f.repo.On("Cancel", mock.Anything, b).Return(nil)

	require.NoError(t, f.svc.Cancel(context.Background(), 42))

	assert.Equal(t, StatusCancelled, b.Status)
	assert.Equal(t, TxRefunded, b.Payments[0].Status)
	assert.Empty(t, b.SeatNumbers())
	require.Len(t, f.events.cancelled, 1)
	assert.Equal(t, []int{3, 4}, f.events.cancelled[0].Seats)
}

func TestCancelTwice(t *testing.T) {
	f := newFixture()
	b := confirmedBooking()
	b.Status = StatusCancelled
	f.repo.On("FindByID", mock.Anything, int64(42)).Return(b, nil)

	err := f.svc.Cancel(context.Background(), 42)

	assert.True(t, apperror.IsConflict(err))
	f.repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}

func TestGetByIDNotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("FindByID", mock.Anything, int64(8)).Return(nil, ErrBookingNotFound)

	_, err := f.svc.GetByID(context.Background(), 8)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetAllLoadsEachTripOnce(t *testing.T) {
	f := newFixture()
	list := []Booking{*confirmedBooking(), *confirmedBooking()}
	list[1].ID = 43
	f.repo.On("FindAll", mock.Anything, ListQuery{Status: StatusConfirmed}).Return(list, nil)

	res, err := f.svc.GetAll(context.Background(), ListQuery{Status: StatusConfirmed})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Same(t, res[0].Trip, res[1].Trip)
}

func TestTicketRendersPDF(t *testing.T) {
	f := newFixture()
	f.repo.On("FindByID", mock.Anything, int64(42)).Return(confirmedBooking(), nil)

	pdf, res, err := f.svc.Ticket(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "BUS-20240420-ABCDEF", res.BookingRef)
	assert.True(t, len(pdf) > 4)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "360.000 VND", formatMoney(360000, "VND"))
	assert.Equal(t, "0 VND", formatMoney(0, "VND"))
	assert.Equal(t, "1.200.000 VND", formatMoney(1200000, "VND"))
}
