package notifications

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// BookingNotice is what a customer is told about a booking.
type BookingNotice struct {
	BookingRef    string
	Email         string
	CustomerName  string
	Route         string
	Departure     time.Time
	Seats         []int
	TotalPayment  int64
	Currency      string
	PaymentStatus string
}

func (b BookingNotice) templateData() map[string]interface{} {
	seats := make([]string, len(b.Seats))
	for i, n := range b.Seats {
		seats[i] = strconv.Itoa(n)
	}
	return map[string]interface{}{
		"booking_ref":    b.BookingRef,
		"route":          b.Route,
		"departure":      b.Departure.Format("02/01/2006 15:04"),
		"seats":          strings.Join(seats, ", "),
		"total_payment":  b.TotalPayment,
		"currency":       b.Currency,
		"payment_status": b.PaymentStatus,
	}
}

// Publisher turns domain events into notifications.
type Publisher struct {
	producer NotificationProducer
}

func NewPublisher(producer NotificationProducer) *Publisher {
	return &Publisher{producer: producer}
}

func (p *Publisher) BookingCreated(ctx context.Context, notice BookingNotice) error {
	return p.producer.PublishNotification(ctx, NewNotification(NotificationTypeBookingCreated,
		notice.Email, notice.CustomerName, notice.BookingRef, notice.templateData()))
}

func (p *Publisher) BookingCancelled(ctx context.Context, notice BookingNotice) error {
	return p.producer.PublishNotification(ctx, NewNotification(NotificationTypeBookingCancelled,
		notice.Email, notice.CustomerName, notice.BookingRef, notice.templateData()))
}

func (p *Publisher) PasswordReset(ctx context.Context, email, name, username, password string) error {
	return p.producer.PublishNotification(ctx, NewNotification(NotificationTypePasswordReset,
		email, name, email, map[string]interface{}{"username": username, "password": password}))
}
