package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingCreated   NotificationType = "BOOKING_CREATED"
	NotificationTypeBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationTypePasswordReset    NotificationType = "PASSWORD_RESET"
)

type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "LOW"
	NotificationPriorityMedium NotificationPriority = "MEDIUM"
	NotificationPriorityHigh   NotificationPriority = "HIGH"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusQueued  NotificationStatus = "QUEUED"
	NotificationStatusSending NotificationStatus = "SENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// EmailNotification is the message carried on the notification topic.
type EmailNotification struct {
	ID       uuid.UUID            `json:"id"`
	Type     NotificationType     `json:"type"`
	Priority NotificationPriority `json:"priority"`

	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`

	Subject      string                 `json:"subject"`
	TemplateData map[string]interface{} `json:"template_data"`

	// Booking reference or e-mail; keeps one customer's messages ordered.
	Key string `json:"key"`

	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	MaxRetries int                `json:"max_retries"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

// NewNotification addresses a notification of type t to email. key orders
// messages on the topic; an empty key falls back to the recipient.
func NewNotification(t NotificationType, email, name, key string, data map[string]interface{}) *EmailNotification {
	if data == nil {
		data = map[string]interface{}{}
	}
	now := time.Now()
	return &EmailNotification{
		ID:             uuid.New(),
		Type:           t,
		Priority:       t.priority(),
		RecipientEmail: email,
		RecipientName:  name,
		Subject:        t.subject(),
		TemplateData:   data,
		Key:            key,
		Status:         NotificationStatusPending,
		MaxRetries:     3,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// A new password must reach the user before they retry a login.
func (t NotificationType) priority() NotificationPriority {
	switch t {
	case NotificationTypePasswordReset:
		return NotificationPriorityHigh
	case NotificationTypeBookingCreated, NotificationTypeBookingCancelled:
		return NotificationPriorityMedium
	}
	return NotificationPriorityLow
}

func (t NotificationType) subject() string {
	switch t {
	case NotificationTypeBookingCreated:
		return "Your bus ticket is booked"
	case NotificationTypeBookingCancelled:
		return "Your bus ticket has been cancelled"
	case NotificationTypePasswordReset:
		return "Your new password"
	}
	return "Notification from the ticket office"
}

// GetPartitionKey falls back to the recipient when no key was set.
func (en *EmailNotification) GetPartitionKey() string {
	if en.Key != "" {
		return en.Key
	}
	return en.RecipientEmail
}

func (en *EmailNotification) ToJSON() ([]byte, error) {
	return json.Marshal(en)
}

func (en *EmailNotification) MarkSent() {
	now := time.Now()
	en.Status = NotificationStatusSent
	en.SentAt = &now
	en.UpdatedAt = now
}

func (en *EmailNotification) MarkFailed(err error) {
	en.Status = NotificationStatusFailed
	en.UpdatedAt = time.Now()

	errorStr := err.Error()
	en.LastError = &errorStr
}
