package trips

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	FindAll(ctx context.Context) ([]TripDetail, error)
	FindPage(ctx context.Context, page, limit int) ([]TripDetail, int64, error)
	FindDetail(ctx context.Context, id int64) (*TripDetail, error)
	FindByID(ctx context.Context, id int64) (*Trip, error)
	Create(ctx context.Context, trip *Trip) error
	Update(ctx context.Context, trip *Trip) error
	Delete(ctx context.Context, id int64) error
	CountBookings(ctx context.Context, id int64) (int64, error)
	// Exists reports whether table holds a row with id.
	Exists(ctx context.Context, table string, id int64) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("trips").
		Select(`trips.id, trips.source_id, src.name AS source_name,
			trips.destination_id, dst.name AS destination_name,
			trips.departure_date_time, trips.duration, trips.price,
			trips.discount_id, COALESCE(discounts.amount, 0) AS discount_amount,
			coaches.id AS coach_id, coaches.name AS coach_name, coaches.coach_type,
			coaches.capacity, coaches.license_plate,
			drivers.id AS driver_id, drivers.first_name || ' ' || drivers.last_name AS driver_name`).
		Joins("JOIN coaches ON coaches.id = trips.coach_id").
		Joins("JOIN drivers ON drivers.id = trips.driver_id").
		Joins("JOIN provinces src ON src.id = trips.source_id").
		Joins("JOIN provinces dst ON dst.id = trips.destination_id").
		Joins("LEFT JOIN discounts ON discounts.id = trips.discount_id")
}

func (r *repository) FindAll(ctx context.Context) ([]TripDetail, error) {
	var trips []TripDetail
	if err := r.detailQuery(ctx).Order("trips.departure_date_time DESC").Scan(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *repository) FindPage(ctx context.Context, page, limit int) ([]TripDetail, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Trip{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trips []TripDetail
	err := r.detailQuery(ctx).
		Order("trips.departure_date_time DESC").
		Offset(page * limit).
		Limit(limit).
		Scan(&trips).Error
	if err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

func (r *repository) FindDetail(ctx context.Context, id int64) (*TripDetail, error) {
	var trips []TripDetail
	if err := r.detailQuery(ctx).Where("trips.id = ?", id).Limit(1).Scan(&trips).Error; err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return nil, ErrTripNotFound
	}
	return &trips[0], nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Trip, error) {
	var trip Trip
	if err := r.db.WithContext(ctx).First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *repository) Create(ctx context.Context, trip *Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *repository) Update(ctx context.Context, trip *Trip) error {
	return r.db.WithContext(ctx).Save(trip).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Trip{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTripNotFound
	}
	return nil
}

func (r *repository) CountBookings(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("bookings").Where("trip_id = ?", id).Count(&count).Error
	return count, err
}

func (r *repository) Exists(ctx context.Context, table string, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
