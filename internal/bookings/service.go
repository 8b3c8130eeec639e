package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/notifications"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/seats"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/constants"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/dates"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/response"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/validation"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/trips"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/cache"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

type Service interface {
	GetAll(ctx context.Context, query ListQuery) ([]BookingResponse, error)
	GetPage(ctx context.Context, query ListQuery, page, limit int) (*response.Page[BookingResponse], error)
	GetByID(ctx context.Context, id int64) (*BookingResponse, error)
	Create(ctx context.Context, req BookingRequest) (*BookingResponse, error)
	Update(ctx context.Context, req BookingRequest) (*BookingResponse, error)
	// Cancel marks the booking CANCELLED, frees its seats and refunds a
	// paid booking.
	Cancel(ctx context.Context, id int64) error
	Ticket(ctx context.Context, id int64) ([]byte, *BookingResponse, error)
}

// TripDetails loads the trip a booking is made on.
type TripDetails interface {
	GetByID(ctx context.Context, id int64) (*trips.TripDetail, error)
}

// OrderedSeatSource reports seats already sold for a trip and travel date.
type OrderedSeatSource interface {
	OrderedSeats(ctx context.Context, tripID int64, date time.Time) ([]int, error)
	OrderedSeatsExcluding(ctx context.Context, tripID int64, date time.Time, bookingID int64) ([]int, error)
}

// EventPublisher announces committed booking changes.
type EventPublisher interface {
	BookingCreated(ctx context.Context, notice notifications.BookingNotice) error
	BookingCancelled(ctx context.Context, notice notifications.BookingNotice) error
}

type Options struct {
	MaxSeats int
	Currency string
}

type service struct {
	repo     Repository
	trips    TripDetails
	ordered  OrderedSeatSource
	locker   seats.SeatLocker
	events   EventPublisher
	cache    cache.Service
	maxSeats int
	currency string
	now      func() time.Time
}

var validate = validation.New()

// NewService wires the booking service. locker, events and c may be nil.
func NewService(
	repo Repository,
	tripDetails TripDetails,
	ordered OrderedSeatSource,
	locker seats.SeatLocker,
	events EventPublisher,
	c cache.Service,
	opts Options,
) Service {
	if opts.MaxSeats <= 0 {
		opts.MaxSeats = seats.MaxSeatSelect
	}
	if opts.Currency == "" {
		opts.Currency = "VND"
	}
	return &service{
		repo:     repo,
		trips:    tripDetails,
		ordered:  ordered,
		locker:   locker,
		events:   events,
		cache:    c,
		maxSeats: opts.MaxSeats,
		currency: opts.Currency,
		now:      time.Now,
	}
}

func (s *service) GetAll(ctx context.Context, query ListQuery) ([]BookingResponse, error) {
	list, err := s.repo.FindAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return s.toResponses(ctx, list), nil
}

func (s *service) GetPage(ctx context.Context, query ListQuery, page, limit int) (*response.Page[BookingResponse], error) {
	list, total, err := s.repo.FindPage(ctx, query, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	p := response.NewPage(s.toResponses(ctx, list), total, page, limit)
	return &p, nil
}

// toResponses attaches trip info, loading each trip once.
func (s *service) toResponses(ctx context.Context, list []Booking) []BookingResponse {
	infos := map[int64]*TripInfo{}
	out := make([]BookingResponse, 0, len(list))
	for i := range list {
		info, seen := infos[list[i].TripID]
		if !seen {
			if detail, err := s.trips.GetByID(ctx, list[i].TripID); err == nil {
				info = tripInfo(detail)
			}
			infos[list[i].TripID] = info
		}
		out = append(out, list[i].ToResponse(info))
	}
	return out
}

func (s *service) GetByID(ctx context.Context, id int64) (*BookingResponse, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	var info *TripInfo
	if detail, err := s.trips.GetByID(ctx, booking.TripID); err == nil {
		info = tripInfo(detail)
	}
	res := booking.ToResponse(info)
	return &res, nil
}

func (s *service) find(ctx context.Context, id int64) (*Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, apperror.NotFoundError{Resource: "booking", Err: err}
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// quote is a checked request: the trip it targets, the travel date and the
// total the server computed.
type quote struct {
	trip       *trips.TripDetail
	travelDate time.Time
	total      int64
}

// check validates req against its trip and the seats already sold.
// bookingID is 0 for a new booking.
func (s *service) check(ctx context.Context, bookingID int64, req BookingRequest) (*quote, error) {
	if err := validation.Struct(validate, req); err != nil {
		return nil, err
	}
	if len(req.SeatNumber) > s.maxSeats {
		return nil, apperror.Invalid("seatNumber", fmt.Sprintf("at most %d seats per booking", s.maxSeats))
	}

	trip, err := s.trips.GetByID(ctx, req.TripID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Invalid("tripId", "trip does not exist")
		}
		return nil, fmt.Errorf("failed to load trip: %w", err)
	}
	for _, n := range req.SeatNumber {
		if n > trip.Capacity {
			return nil, apperror.Invalid("seatNumber", fmt.Sprintf("seat %d does not exist on this coach", n))
		}
	}

	total := tripInfo(trip).UnitPrice() * int64(len(req.SeatNumber))
	if req.TotalPayment != 0 && req.TotalPayment != total {
		return nil, apperror.Invalid("totalPayment", fmt.Sprintf("expected %d", total))
	}

	travelDate := dates.StartOfDay(trip.DepartureDateTime)
	var ordered []int
	if bookingID > 0 {
		ordered, err = s.ordered.OrderedSeatsExcluding(ctx, trip.ID, travelDate, bookingID)
	} else {
		ordered, err = s.ordered.OrderedSeats(ctx, trip.ID, travelDate)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ordered seats: %w", err)
	}

	var taken []int
	for _, n := range req.SeatNumber {
		if slices.Contains(ordered, n) {
			taken = append(taken, n)
		}
	}
	if len(taken) > 0 {
		slices.Sort(taken)
		return nil, apperror.Conflict("seat", "already ordered: "+joinInts(taken))
	}

	return &quote{trip: trip, travelDate: travelDate, total: total}, nil
}

// lock takes the Redis seat locks for the duration of a write. The returned
// func releases them.
func (s *service) lock(ctx context.Context, q *quote, seatNumbers []int) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}

	owner := uuid.NewString()
	date := dates.Format(q.travelDate)
	if err := s.locker.Lock(ctx, q.trip.ID, date, seatNumbers, owner); err != nil {
		if errors.Is(err, seats.ErrSeatLocked) {
			return nil, apperror.ConflictError{Resource: "seat", Msg: "seat is being booked by another user", Err: err}
		}
		// The unique seat index still guards the commit.
		logger.GetDefault().Warn("Seat lock unavailable", "trip_id", q.trip.ID, "error", err)
		return func() {}, nil
	}

	return func() {
		if err := s.locker.Unlock(context.WithoutCancel(ctx), q.trip.ID, date, seatNumbers, owner); err != nil {
			logger.GetDefault().Warn("Failed to release seat locks", "trip_id", q.trip.ID, "error", err)
		}
	}, nil
}

func (s *service) Create(ctx context.Context, req BookingRequest) (*BookingResponse, error) {
	q, err := s.check(ctx, 0, req)
	if err != nil {
		return nil, err
	}
	unlock, err := s.lock(ctx, q, req.SeatNumber)
	if err != nil {
		return nil, err
	}
	defer unlock()

	ref, err := generateBookingReference(s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking reference: %w", err)
	}

	now := s.now()
	booking := &Booking{
		BookingRef:      ref,
		UserID:          req.UserID,
		TripID:          q.trip.ID,
		TravelDate:      q.travelDate,
		BookingDateTime: req.BookingDateTime,
		BookingType:     req.BookingType,
		Status:          StatusConfirmed,
	}
	if booking.BookingDateTime.IsZero() {
		booking.BookingDateTime = now
	}
	if booking.BookingType == "" {
		booking.BookingType = BookingTypeOneWay
	}
	s.applyCustomer(booking, req)
	s.applyPayment(booking, req, q.total, now)
	for _, n := range req.SeatNumber {
		booking.Seats = append(booking.Seats, BookingSeat{TripID: q.trip.ID, TravelDate: q.travelDate, SeatNumber: n})
	}
	booking.Payments = []Payment{s.newPayment(booking, now)}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, ErrSeatTaken) {
			return nil, apperror.ConflictError{Resource: "seat", Msg: "seat was sold to another booking", Err: err}
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.GetDefault().LogBookingCreated(ctx, booking.BookingRef, booking.TripID, booking.SeatNumbers())
	s.changed(ctx)
	info := tripInfo(q.trip)
	s.publish(ctx, booking, info, false)

	res := booking.ToResponse(info)
	return &res, nil
}

func (s *service) Update(ctx context.Context, req BookingRequest) (*BookingResponse, error) {
	booking, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if !booking.IsConfirmed() {
		return nil, apperror.Conflict("booking", "a cancelled booking cannot be edited")
	}

	q, err := s.check(ctx, booking.ID, req)
	if err != nil {
		return nil, err
	}
	unlock, err := s.lock(ctx, q, req.SeatNumber)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.now()
	booking.TripID = q.trip.ID
	booking.TravelDate = q.travelDate
	if req.BookingType != "" {
		booking.BookingType = req.BookingType
	}
	s.applyCustomer(booking, req)
	s.applyPayment(booking, req, q.total, now)
	if len(booking.Payments) == 0 {
		booking.Payments = []Payment{s.newPayment(booking, now)}
	} else {
		p := &booking.Payments[len(booking.Payments)-1]
		p.Amount = booking.TotalPayment
		p.Method = string(booking.PaymentMethod)
		if booking.PaymentStatus == PaymentStatusPaid && p.Status == TxPending {
			p.MarkCompleted(now)
		}
	}

	if err := s.repo.Update(ctx, booking, req.SeatNumber); err != nil {
		if errors.Is(err, ErrSeatTaken) {
			return nil, apperror.ConflictError{Resource: "seat", Msg: "seat was sold to another booking", Err: err}
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	s.changed(ctx)

	res := booking.ToResponse(tripInfo(q.trip))
	return &res, nil
}

func (s *service) Cancel(ctx context.Context, id int64) error {
	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !booking.Status.CanBeCancelled() {
		return apperror.Conflict("booking", "booking is already cancelled")
	}

	now := s.now()
	booking.Cancel(now)
	if booking.PaymentStatus == PaymentStatusPaid {
		for i := range booking.Payments {
			if booking.Payments[i].Status == TxCompleted {
				booking.Payments[i].MarkRefunded(now)
			}
		}
	}

	if err := s.repo.Cancel(ctx, booking); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	logger.GetDefault().LogBookingCancelled(ctx, booking.BookingRef, booking.TripID)
	s.changed(ctx)

	var info *TripInfo
	if detail, err := s.trips.GetByID(ctx, booking.TripID); err == nil {
		info = tripInfo(detail)
	}
	s.publish(ctx, booking, info, true)
	return nil
}

func (s *service) Ticket(ctx context.Context, id int64) ([]byte, *BookingResponse, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := RenderTicket(*booking, s.currency)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render ticket: %w", err)
	}
	return pdf, booking, nil
}

func (s *service) applyCustomer(b *Booking, req BookingRequest) {
	b.PickUpAddress = strings.TrimSpace(req.PickUpAddress)
	b.CustFirstName = strings.TrimSpace(req.CustFirstName)
	b.CustLastName = strings.TrimSpace(req.CustLastName)
	b.Phone = req.Phone
	b.Email = req.Email
}

// applyPayment sets the payment fields. A paid booking keeps its first
// payment time.
func (s *service) applyPayment(b *Booking, req BookingRequest, total int64, now time.Time) {
	b.TotalPayment = total
	b.PaymentMethod = req.PaymentMethod
	b.PaymentStatus = req.PaymentStatus
	if b.PaymentStatus == "" {
		b.PaymentStatus = StatusFor(req.PaymentMethod)
	}
	switch {
	case b.PaymentStatus == PaymentStatusPaid && b.PaymentDateTime == nil:
		b.PaymentDateTime = &now
	case b.PaymentStatus == PaymentStatusUnpaid:
		b.PaymentDateTime = nil
	}
}

func (s *service) newPayment(b *Booking, now time.Time) Payment {
	p := Payment{
		Amount:        b.TotalPayment,
		Currency:      s.currency,
		Method:        string(b.PaymentMethod),
		Status:        TxPending,
		TransactionID: generateTransactionID(now),
	}
	if b.PaymentStatus == PaymentStatusPaid {
		p.MarkCompleted(now)
	}
	return p
}

// changed drops caches that count sold seats or revenue.
func (s *service) changed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.CACHE_KEY_TRIPS_SEARCH+"*", constants.PATTERN_INVALIDATE_REPORTS); err != nil {
		logger.GetDefault().Warn("Failed to invalidate cache", "error", err)
	}
}

func (s *service) publish(ctx context.Context, b *Booking, info *TripInfo, cancelled bool) {
	if s.events == nil {
		return
	}

	notice := notifications.BookingNotice{
		BookingRef:    b.BookingRef,
		Email:         b.Email,
		CustomerName:  b.CustFirstName + " " + b.CustLastName,
		Seats:         b.TicketSeats(),
		TotalPayment:  b.TotalPayment,
		Currency:      s.currency,
		PaymentStatus: string(b.PaymentStatus),
	}
	if info != nil {
		notice.Route = info.SourceName + " - " + info.DestinationName
		notice.Departure = info.DepartureDateTime
	}

	var err error
	if cancelled {
		err = s.events.BookingCancelled(ctx, notice)
	} else {
		err = s.events.BookingCreated(ctx, notice)
	}
	if err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "Failed to publish booking event", err, map[string]interface{}{
			"booking_ref": b.BookingRef,
			"cancelled":   cancelled,
		})
	}
}

func tripInfo(t *trips.TripDetail) *TripInfo {
	if t == nil {
		return nil
	}
	return &TripInfo{
		ID:                t.ID,
		SourceName:        t.SourceName,
		DestinationName:   t.DestinationName,
		DepartureDateTime: t.DepartureDateTime,
		Duration:          t.Duration,
		Price:             t.Price,
		DiscountAmount:    t.DiscountAmount,
		CoachName:         t.CoachName,
		CoachType:         t.CoachType,
		Capacity:          t.Capacity,
		LicensePlate:      t.LicensePlate,
		DriverName:        t.DriverName,
	}
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// generateBookingReference -> "BUS-20240501-QWERTY"
func generateBookingReference(now time.Time) (string, error) {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)
	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}
	return fmt.Sprintf("BUS-%s-%s", now.Format("20060102"), string(randomPart)), nil
}

func generateTransactionID(now time.Time) string {
	shortUUID := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("TXN_%d_%s", now.Unix(), strings.ToUpper(shortUUID))
}
