package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/bookings"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/seats"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/dates"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/tripsearch"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

// Owner is the staff member driving a wizard.
type Owner struct {
	UserID   int64
	Username string
}

// BookingWriter is the part of the booking service the wizard submits to.
type BookingWriter interface {
	Create(ctx context.Context, req bookings.BookingRequest) (*bookings.BookingResponse, error)
	Update(ctx context.Context, req bookings.BookingRequest) (*bookings.BookingResponse, error)
	GetByID(ctx context.Context, id int64) (*bookings.BookingResponse, error)
}

// OrderedSeatSource reports seats already sold for a trip and travel date.
type OrderedSeatSource interface {
	OrderedSeats(ctx context.Context, tripID int64, date time.Time) ([]int, error)
	OrderedSeatsExcluding(ctx context.Context, tripID int64, date time.Time, bookingID int64) ([]int, error)
}

type Service interface {
	Start(ctx context.Context, owner Owner) (*State, error)
	Edit(ctx context.Context, owner Owner, bookingID int64) (*State, error)
	Get(ctx context.Context, owner Owner, id string) (*State, error)
	Discard(ctx context.Context, owner Owner, id string) error

	Search(ctx context.Context, owner Owner, id string, req tripsearch.SearchRequest) (*tripsearch.SearchResponse, error)
	Swap(ctx context.Context, owner Owner, id string) (*tripsearch.SearchResponse, error)
	SelectTrip(ctx context.Context, owner Owner, id string, tripID int64) (*State, error)

	SeatMap(ctx context.Context, owner Owner, id string) (*seats.SeatMapResponse, error)
	ChooseSeat(ctx context.Context, owner Owner, id string, seatNumber int, selected bool) (*State, error)

	UpdatePayment(ctx context.Context, owner Owner, id string, patch UpdatePayment) (*State, error)
	Next(ctx context.Context, owner Owner, id string) (*State, error)
	Back(ctx context.Context, owner Owner, id string) (*State, error)
	Submit(ctx context.Context, owner Owner, id string) (*SubmitResult, error)
}

// SubmitResult carries the saved booking and the reset wizard.
type SubmitResult struct {
	Booking *bookings.BookingResponse `json:"booking"`
	Wizard  *State                    `json:"wizard"`
}

type service struct {
	store    Store
	searches tripsearch.Service
	trips    tripsearch.TripLookup
	seats    OrderedSeatSource
	bookings BookingWriter
	maxSeats int
	now      func() time.Time
}

func NewService(
	store Store,
	searches tripsearch.Service,
	trips tripsearch.TripLookup,
	orderedSeats OrderedSeatSource,
	bookingWriter BookingWriter,
	maxSeats int,
) Service {
	if maxSeats <= 0 {
		maxSeats = seats.MaxSeatSelect
	}
	return &service{
		store:    store,
		searches: searches,
		trips:    trips,
		seats:    orderedSeats,
		bookings: bookingWriter,
		maxSeats: maxSeats,
		now:      time.Now,
	}
}

func searchKey(id string) string {
	return "wizard:" + id
}

func (s *service) Start(ctx context.Context, owner Owner) (*State, error) {
	st := NewState(uuid.NewString(), owner.Username, s.maxSeats, s.now())
	if err := s.store.Save(ctx, &st); err != nil {
		return nil, fmt.Errorf("start wizard: %w", err)
	}
	return &st, nil
}

func (s *service) Edit(ctx context.Context, owner Owner, bookingID int64) (*State, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == bookings.StatusCancelled {
		return nil, apperror.Conflict("booking", "a cancelled booking cannot be edited")
	}
	trip, err := s.lookupTrip(ctx, booking.TripID)
	if err != nil {
		return nil, err
	}

	st := NewState(uuid.NewString(), owner.Username, s.maxSeats, s.now())
	d := &st.Draft
	d.ID = booking.ID
	d.Trip = trip
	d.BookingDateTime = booking.BookingDateTime
	d.BookingType = booking.BookingType
	d.SeatNumber = append([]int{}, booking.SeatNumber...)
	d.PickUpAddress = booking.PickUpAddress
	d.CustFirstName = booking.CustFirstName
	d.CustLastName = booking.CustLastName
	d.Phone = booking.Phone
	d.Email = booking.Email
	d.PaymentMethod = booking.PaymentMethod
	d.PaymentStatus = booking.PaymentStatus
	d.TotalPayment = booking.TotalPayment
	d.SourceID = trip.SourceID
	d.DestinationID = trip.DestinationID
	d.IsEditMode = true

	if err := s.store.Save(ctx, &st); err != nil {
		return nil, fmt.Errorf("start wizard: %w", err)
	}
	return &st, nil
}

func (s *service) Get(ctx context.Context, owner Owner, id string) (*State, error) {
	return s.load(ctx, owner, id)
}

func (s *service) Discard(ctx context.Context, owner Owner, id string) error {
	if _, err := s.load(ctx, owner, id); err != nil {
		return err
	}
	s.searches.Forget(searchKey(id))
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("discard wizard: %w", err)
	}
	return nil
}

func (s *service) Search(ctx context.Context, owner Owner, id string, req tripsearch.SearchRequest) (*tripsearch.SearchResponse, error) {
	criteria, err := tripsearch.ParseRequest(req)
	if err != nil {
		return nil, err
	}
	_, err = s.mutate(ctx, owner, id, SetSearch{
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		From:          dates.Format(criteria.From),
		To:            dates.Format(criteria.To),
	})
	if err != nil {
		return nil, err
	}
	return s.searches.Search(ctx, searchKey(id), criteria)
}

func (s *service) Swap(ctx context.Context, owner Owner, id string) (*tripsearch.SearchResponse, error) {
	st, err := s.mutate(ctx, owner, id, SwapEndpoints{})
	if err != nil {
		return nil, err
	}

	res, err := s.searches.Swap(ctx, searchKey(id))
	if err != nil {
		return nil, err
	}
	// the draft is authoritative when the search was never run in this process
	res.Criteria.SourceID = st.Draft.SourceID
	res.Criteria.DestinationID = st.Draft.DestinationID
	return res, nil
}

func (s *service) SelectTrip(ctx context.Context, owner Owner, id string, tripID int64) (*State, error) {
	trip, err := s.lookupTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, owner, id, SelectTrip{Trip: *trip})
}

// SeatMap draws the trip's grid and drops drafted seats that were sold in
// the meantime.
func (s *service) SeatMap(ctx context.Context, owner Owner, id string) (*seats.SeatMapResponse, error) {
	var ordered []int
	st, err := s.mutateWith(ctx, owner, id, func(st State) (Action, error) {
		if st.Draft.Trip == nil {
			return nil, ErrTripRequired
		}
		var err error
		ordered, err = s.orderedSeats(ctx, st.Draft)
		if err != nil {
			return nil, err
		}
		return ReconcileSeats{Ordered: ordered}, nil
	})
	if err != nil {
		return nil, err
	}

	trip := st.Draft.Trip
	seatMap := tripSeatMap(trip, ordered)
	sel := seats.NewSelection(seatMap, st.MaxSeats, seats.UnitPrice(trip.Price, trip.DiscountAmount), nil)
	if err := sel.Restore(st.Draft.SeatNumber); err != nil {
		return nil, err
	}

	if ordered == nil {
		ordered = []int{}
	}
	return &seats.SeatMapResponse{
		TripID:       trip.ID,
		Date:         dates.Format(travelDate(trip)),
		CoachType:    seatMap.CoachType(),
		Capacity:     trip.Capacity,
		OrderedSeats: ordered,
		Floors:       seatMap.Floors(),
	}, nil
}

func (s *service) ChooseSeat(ctx context.Context, owner Owner, id string, seatNumber int, selected bool) (*State, error) {
	return s.mutateWith(ctx, owner, id, func(st State) (Action, error) {
		if st.Draft.Trip == nil {
			return ChooseSeat{SeatNumber: seatNumber, Select: selected}, nil
		}
		ordered, err := s.orderedSeats(ctx, st.Draft)
		if err != nil {
			return nil, err
		}
		return ChooseSeat{SeatNumber: seatNumber, Select: selected, Ordered: ordered}, nil
	})
}

func (s *service) UpdatePayment(ctx context.Context, owner Owner, id string, patch UpdatePayment) (*State, error) {
	return s.mutate(ctx, owner, id, patch)
}

func (s *service) Next(ctx context.Context, owner Owner, id string) (*State, error) {
	return s.mutateWith(ctx, owner, id, func(st State) (Action, error) {
		if st.Step != StepSeatSelect || st.Draft.Trip == nil {
			return Next{}, nil
		}
		ordered, err := s.orderedSeats(ctx, st.Draft)
		if err != nil {
			return nil, err
		}
		return Next{Ordered: ordered}, nil
	})
}

func (s *service) Back(ctx context.Context, owner Owner, id string) (*State, error) {
	return s.mutate(ctx, owner, id, Back{})
}

// Submit sends the draft to the booking service exactly once. On failure the
// wizard stays at PAYMENT_INFO with the draft intact.
func (s *service) Submit(ctx context.Context, owner Owner, id string) (*SubmitResult, error) {
	unlock, err := s.store.Lock(ctx, id)
	if err != nil {
		return nil, lockError(err)
	}
	defer unlock()

	st, err := s.load(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	submitted, err := Reduce(*st, Submit{})
	if err != nil {
		return nil, err
	}

	req := submitted.Draft.Payload()
	if owner.UserID > 0 {
		userID := owner.UserID
		req.UserID = &userID
	}

	var booking *bookings.BookingResponse
	if submitted.Draft.IsEditMode {
		booking, err = s.bookings.Update(ctx, req)
	} else {
		booking, err = s.bookings.Create(ctx, req)
	}
	logger.GetDefault().LogWizardSubmitted(ctx, id, owner.Username, err)

	if err != nil {
		failed, _ := Reduce(submitted, SubmitFailed{Err: err.Error()})
		if saveErr := s.save(ctx, &failed); saveErr != nil {
			logger.GetDefault().ErrorWithContext(ctx, "Failed to save wizard after submit error", saveErr, map[string]interface{}{
				"wizard_id": id,
			})
		}
		return nil, err
	}

	reset, err := Reduce(submitted, SubmitSucceeded{Now: s.now()})
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, &reset); err != nil {
		return nil, err
	}
	s.searches.Forget(searchKey(id))

	return &SubmitResult{Booking: booking, Wizard: &reset}, nil
}

func (s *service) mutate(ctx context.Context, owner Owner, id string, action Action) (*State, error) {
	return s.mutateWith(ctx, owner, id, func(State) (Action, error) {
		return action, nil
	})
}

// mutateWith runs one locked read-reduce-write cycle. build sees the stored
// state before the action is created.
func (s *service) mutateWith(ctx context.Context, owner Owner, id string, build func(State) (Action, error)) (*State, error) {
	unlock, err := s.store.Lock(ctx, id)
	if err != nil {
		return nil, lockError(err)
	}
	defer unlock()

	st, err := s.load(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	action, err := build(*st)
	if err != nil {
		return nil, err
	}
	next, err := Reduce(*st, action)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *service) load(ctx context.Context, owner Owner, id string) (*State, error) {
	st, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrWizardNotFound) {
			// expired wizards leave their search behind
			s.searches.Forget(searchKey(id))
			return nil, apperror.NotFoundError{Resource: "wizard", Err: err}
		}
		return nil, fmt.Errorf("load wizard: %w", err)
	}
	// another user's wizard is reported as missing
	if st.Owner != owner.Username {
		return nil, apperror.NotFoundError{Resource: "wizard", Err: ErrWizardNotFound}
	}
	return st, nil
}

func (s *service) save(ctx context.Context, st *State) error {
	st.UpdatedAt = s.now()
	if err := s.store.Save(ctx, st); err != nil {
		return fmt.Errorf("save wizard: %w", err)
	}
	return nil
}

func (s *service) lookupTrip(ctx context.Context, tripID int64) (*tripsearch.TripSummary, error) {
	trip, err := s.trips.GetTrip(ctx, tripID)
	if err != nil {
		if errors.Is(err, tripsearch.ErrTripNotFound) {
			return nil, apperror.NotFoundError{Resource: "trip", Err: err}
		}
		return nil, fmt.Errorf("load trip: %w", err)
	}
	return trip, nil
}

// orderedSeats leaves out the seats of the booking being edited.
func (s *service) orderedSeats(ctx context.Context, d Draft) ([]int, error) {
	day := travelDate(d.Trip)
	var (
		ordered []int
		err     error
	)
	if d.IsEditMode && d.ID > 0 {
		ordered, err = s.seats.OrderedSeatsExcluding(ctx, d.Trip.ID, day, d.ID)
	} else {
		ordered, err = s.seats.OrderedSeats(ctx, d.Trip.ID, day)
	}
	if err != nil {
		return nil, fmt.Errorf("load ordered seats: %w", err)
	}
	return ordered, nil
}

func travelDate(trip *tripsearch.TripSummary) time.Time {
	return dates.StartOfDay(trip.DepartureDateTime)
}

func lockError(err error) error {
	if errors.Is(err, ErrWizardBusy) {
		return apperror.ConflictError{Resource: "wizard", Msg: err.Error(), Err: err}
	}
	return fmt.Errorf("lock wizard: %w", err)
}
