package tripsearch

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// TripFinder lists the trips of a route departing within a date range.
type TripFinder interface {
	FindTrips(ctx context.Context, c Criteria) ([]TripSummary, error)
}

// TripLookup loads one trip with its route, coach and discount.
type TripLookup interface {
	GetTrip(ctx context.Context, tripID int64) (*TripSummary, error)
}

// SeatCounter counts ordered seats of a trip on a travel date.
type SeatCounter interface {
	CountOrdered(ctx context.Context, tripID int64, date time.Time) (int, error)
}

// Repository is the gorm implementation of TripFinder and TripLookup.
type Repository interface {
	TripFinder
	TripLookup
}

var ErrTripNotFound = errors.New("trip not found")

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("trips").
		Select(`trips.id, trips.source_id, src.name AS source_name,
			trips.destination_id, dst.name AS destination_name,
			trips.departure_date_time, trips.duration, trips.price,
			trips.discount_id, COALESCE(discounts.amount, 0) AS discount_amount,
			coaches.id AS coach_id, coaches.name AS coach_name, coaches.coach_type,
			coaches.capacity, coaches.license_plate`).
		Joins("JOIN coaches ON coaches.id = trips.coach_id").
		Joins("JOIN provinces src ON src.id = trips.source_id").
		Joins("JOIN provinces dst ON dst.id = trips.destination_id").
		Joins("LEFT JOIN discounts ON discounts.id = trips.discount_id")
}

func (r *repository) FindTrips(ctx context.Context, c Criteria) ([]TripSummary, error) {
	var trips []TripSummary
	err := r.baseQuery(ctx).
		Where("trips.source_id = ? AND trips.destination_id = ?", c.SourceID, c.DestinationID).
		Where("trips.departure_date_time >= ? AND trips.departure_date_time < ?", c.From, c.To.AddDate(0, 0, 1)).
		Order("trips.departure_date_time").
		Scan(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *repository) GetTrip(ctx context.Context, tripID int64) (*TripSummary, error) {
	var trips []TripSummary
	if err := r.baseQuery(ctx).Where("trips.id = ?", tripID).Limit(1).Scan(&trips).Error; err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return nil, ErrTripNotFound
	}
	return &trips[0], nil
}
