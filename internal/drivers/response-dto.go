package drivers

import "github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/dates"

type DriverResponse struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	LicenseNumber string `json:"licenseNumber"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Dob           string `json:"dob"`
	Gender        bool   `json:"gender"`
	Address       string `json:"address"`
	Quit          bool   `json:"quit"`
}

func (d Driver) ToResponse() DriverResponse {
	return DriverResponse{
		ID:            d.ID,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		LicenseNumber: d.LicenseNumber,
		Phone:         d.Phone,
		Email:         d.Email,
		Dob:           dates.Format(d.Dob),
		Gender:        d.Gender,
		Address:       d.Address,
		Quit:          d.Quit,
	}
}
