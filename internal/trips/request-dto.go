package trips

import "time"

// TripRequest is the body of POST and PUT /trips.
type TripRequest struct {
	ID                int64     `json:"id"`
	DriverID          int64     `json:"driverId" validate:"required,gt=0"`
	CoachID           int64     `json:"coachId" validate:"required,gt=0"`
	SourceID          int64     `json:"sourceId" validate:"required,gt=0"`
	DestinationID     int64     `json:"destinationId" validate:"required,gt=0,nefield=SourceID"`
	DiscountID        *int64    `json:"discountId" validate:"omitempty,gt=0"`
	Price             int64     `json:"price" validate:"required,gt=0"`
	DepartureDateTime time.Time `json:"departureDateTime" validate:"required"`
	Duration          int       `json:"duration" validate:"required,gt=0,lte=72"`
}
