package reports

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// to_char layouts for revenue buckets.
const (
	bucketDay   = "YYYY-MM-DD"
	bucketMonth = "YYYY-MM"
	bucketYear  = "YYYY"
)

// Only paid, confirmed bookings count as revenue.
const (
	statusConfirmed = "CONFIRMED"
	paymentPaid     = "PAID"
)

type Repository interface {
	// Revenues sums revenue per to_char bucket over [from, to).
	Revenues(ctx context.Context, from, to time.Time, bucket string) ([]PeriodRevenue, error)
	CoachUsages(ctx context.Context, from, to time.Time) ([]CoachUsage, error)
	TopRoutes(ctx context.Context, from, to time.Time, limit int) ([]RouteStat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Revenues(ctx context.Context, from, to time.Time, bucket string) ([]PeriodRevenue, error) {
	var rows []PeriodRevenue
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			to_char(booking_date_time, ?) AS period,
			COALESCE(SUM(total_payment), 0) AS revenue,
			COUNT(*) AS tickets
		FROM bookings
		WHERE status = ? AND payment_status = ?
			AND booking_date_time >= ? AND booking_date_time < ?
		GROUP BY period
		ORDER BY period
	`, bucket, statusConfirmed, paymentPaid, from, to).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get revenues: %w", err)
	}
	return rows, nil
}

func (r *repository) CoachUsages(ctx context.Context, from, to time.Time) ([]CoachUsage, error) {
	var rows []CoachUsage
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id AS coach_id,
			c.name AS coach_name,
			c.license_plate,
			c.capacity,
			COUNT(DISTINCT t.id) AS trips,
			COUNT(bs.id) AS seats_sold
		FROM coaches c
		JOIN trips t ON t.coach_id = c.id
			AND t.departure_date_time >= ? AND t.departure_date_time < ?
		LEFT JOIN bookings b ON b.trip_id = t.id AND b.status = ?
		LEFT JOIN booking_seats bs ON bs.booking_id = b.id AND bs.released = false
		GROUP BY c.id, c.name, c.license_plate, c.capacity
		ORDER BY seats_sold DESC, c.name
	`, from, to, statusConfirmed).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get coach usages: %w", err)
	}
	return rows, nil
}

func (r *repository) TopRoutes(ctx context.Context, from, to time.Time, limit int) ([]RouteStat, error) {
	var rows []RouteStat
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			sp.name AS source_name,
			dp.name AS destination_name,
			COALESCE(SUM(seats.sold), 0) AS tickets,
			COALESCE(SUM(b.total_payment) FILTER (WHERE b.payment_status = ?), 0) AS revenue
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		JOIN provinces sp ON sp.id = t.source_id
		JOIN provinces dp ON dp.id = t.destination_id
		JOIN (
			SELECT booking_id, COUNT(*) AS sold
			FROM booking_seats
			WHERE released = false
			GROUP BY booking_id
		) seats ON seats.booking_id = b.id
		WHERE b.status = ? AND b.booking_date_time >= ? AND b.booking_date_time < ?
		GROUP BY sp.name, dp.name
		ORDER BY tickets DESC, sp.name, dp.name
		LIMIT ?
	`, paymentPaid, statusConfirmed, from, to, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get top routes: %w", err)
	}
	return rows, nil
}
