package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	// ErrSeatTaken is returned when the unique index on booking seats
	// rejects a row.
	ErrSeatTaken = errors.New("seat already sold")
)

type Repository interface {
	FindAll(ctx context.Context, query ListQuery) ([]Booking, error)
	FindPage(ctx context.Context, query ListQuery, page, limit int) ([]Booking, int64, error)
	FindByID(ctx context.Context, id int64) (*Booking, error)
	// Create inserts the booking with its seats and payment.
	Create(ctx context.Context, booking *Booking) error
	// Update saves the booking, replaces its live seats and syncs its payment.
	Update(ctx context.Context, booking *Booking, seatNumbers []int) error
	// Cancel stores a cancelled booking, its released seats and payments.
	Cancel(ctx context.Context, booking *Booking) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Seats", func(db *gorm.DB) *gorm.DB { return db.Order("seat_number") }).
		Preload("Payments")
}

// applyFilters applies list filters to a bookings query.
func applyFilters(query *gorm.DB, filters ListQuery) *gorm.DB {
	if filters.TripID > 0 {
		query = query.Where("trip_id = ?", filters.TripID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if s := strings.TrimSpace(filters.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where(
			"LOWER(booking_ref) LIKE ? OR LOWER(cust_first_name || ' ' || cust_last_name) LIKE ? OR phone LIKE ?",
			like, like, like,
		)
	}
	return query
}

func (r *repository) FindAll(ctx context.Context, query ListQuery) ([]Booking, error) {
	var bookings []Booking
	err := applyFilters(r.withRelations(ctx), query).
		Order("booking_date_time DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) FindPage(ctx context.Context, query ListQuery, page, limit int) ([]Booking, int64, error) {
	var total int64
	if err := applyFilters(r.db.WithContext(ctx).Model(&Booking{}), query).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []Booking
	err := applyFilters(r.withRelations(ctx), query).
		Order("booking_date_time DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Booking, error) {
	var booking Booking
	if err := r.withRelations(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func seatTaken(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSeatTaken
	}
	return err
}

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return seatTaken(tx.Create(booking).Error)
	})
}

func (r *repository) Update(ctx context.Context, booking *Booking, seatNumbers []int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Seats", "Payments").Save(booking).Error; err != nil {
			return err
		}

		// Live seats are replaced. Released rows stay as history.
		err := tx.Where("booking_id = ? AND released = ?", booking.ID, false).Delete(&BookingSeat{}).Error
		if err != nil {
			return err
		}
		seats := make([]BookingSeat, len(seatNumbers))
		for i, n := range seatNumbers {
			seats[i] = BookingSeat{
				BookingID:  booking.ID,
				TripID:     booking.TripID,
				TravelDate: booking.TravelDate,
				SeatNumber: n,
			}
		}
		if len(seats) > 0 {
			if err := tx.Create(&seats).Error; err != nil {
				return seatTaken(err)
			}
		}
		booking.Seats = seats

		for i := range booking.Payments {
			if err := tx.Save(&booking.Payments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) Cancel(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"status":       booking.Status,
				"cancelled_at": booking.CancelledAt,
				"updated_at":   time.Now(),
			}).Error
		if err != nil {
			return err
		}

		err = tx.Model(&BookingSeat{}).
			Where("booking_id = ?", booking.ID).
			Update("released", true).Error
		if err != nil {
			return err
		}

		for i := range booking.Payments {
			if err := tx.Save(&booking.Payments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
