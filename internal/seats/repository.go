package seats

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository reads seat occupancy from the booking tables.
type Repository interface {
	// OrderedSeats lists seats held by confirmed bookings of the trip on date.
	OrderedSeats(ctx context.Context, tripID int64, date time.Time) ([]int, error)
	// OrderedSeatsExcluding is OrderedSeats minus the seats of one booking,
	// used when that booking is being edited.
	OrderedSeatsExcluding(ctx context.Context, tripID int64, date time.Time, bookingID int64) ([]int, error)
	CountOrdered(ctx context.Context, tripID int64, date time.Time) (int, error)
	GetTripCoach(ctx context.Context, tripID int64) (*TripCoach, error)
}

var ErrTripNotFound = errors.New("trip not found")

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) orderedQuery(ctx context.Context, tripID int64, date time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("booking_seats").
		Joins("JOIN bookings ON bookings.id = booking_seats.booking_id").
		Where("booking_seats.trip_id = ? AND booking_seats.travel_date = ? AND bookings.status = ?",
			tripID, date.Format("2006-01-02"), "CONFIRMED")
}

func (r *repository) OrderedSeats(ctx context.Context, tripID int64, date time.Time) ([]int, error) {
	var seats []int
	err := r.orderedQuery(ctx, tripID, date).
		Order("booking_seats.seat_number").
		Pluck("booking_seats.seat_number", &seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func (r *repository) OrderedSeatsExcluding(ctx context.Context, tripID int64, date time.Time, bookingID int64) ([]int, error) {
	var seats []int
	err := r.orderedQuery(ctx, tripID, date).
		Where("booking_seats.booking_id <> ?", bookingID).
		Order("booking_seats.seat_number").
		Pluck("booking_seats.seat_number", &seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func (r *repository) CountOrdered(ctx context.Context, tripID int64, date time.Time) (int, error) {
	var count int64
	if err := r.orderedQuery(ctx, tripID, date).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *repository) GetTripCoach(ctx context.Context, tripID int64) (*TripCoach, error) {
	var row struct {
		TripID    int64
		CoachType string
		Capacity  int
	}
	err := r.db.WithContext(ctx).
		Table("trips").
		Select("trips.id AS trip_id, coaches.coach_type, coaches.capacity").
		Joins("JOIN coaches ON coaches.id = trips.coach_id").
		Where("trips.id = ?", tripID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &TripCoach{TripID: row.TripID, CoachType: CoachType(row.CoachType), Capacity: row.Capacity}, nil
}
