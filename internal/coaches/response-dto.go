package coaches

import "github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/seats"

type CoachResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Capacity     int             `json:"capacity"`
	LicensePlate string          `json:"licensePlate"`
	CoachType    seats.CoachType `json:"coachType"`
}

func (c Coach) ToResponse() CoachResponse {
	return CoachResponse{
		ID:           c.ID,
		Name:         c.Name,
		Capacity:     c.Capacity,
		LicensePlate: c.LicensePlate,
		CoachType:    c.CoachType,
	}
}
