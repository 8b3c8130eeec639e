package coaches

import "github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/seats"

// CoachRequest is the body of POST and PUT /coaches. ID is only read on PUT.
type CoachRequest struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name" validate:"required,max=100"`
	Capacity     int             `json:"capacity" validate:"required,gt=0"`
	LicensePlate string          `json:"licensePlate" validate:"required,max=20"`
	CoachType    seats.CoachType `json:"coachType" validate:"required,oneof=BED CHAIR LIMOUSINE"`
}
