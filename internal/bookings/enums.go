package bookings

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

func (s Status) CanBeCancelled() bool {
	return s == StatusConfirmed
}

type BookingType string

const (
	BookingTypeOneWay    BookingType = "ONEWAY"
	BookingTypeRoundTrip BookingType = "ROUNDTRIP"
)

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodCard PaymentMethod = "CARD"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
)

// StatusFor is the payment status implied by a payment method.
func StatusFor(method PaymentMethod) PaymentStatus {
	if method == PaymentMethodCard {
		return PaymentStatusPaid
	}
	return PaymentStatusUnpaid
}

// Payment transaction states.
const (
	TxPending   = "PENDING"
	TxCompleted = "COMPLETED"
	TxRefunded  = "REFUNDED"
)
