package users

import (
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/dates"
)

type UserResponse struct {
	ID         int64          `json:"id"`
	Username   string         `json:"username"`
	FirstName  string         `json:"firstName"`
	LastName   string         `json:"lastName"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone"`
	Dob        string         `json:"dob"`
	Gender     bool           `json:"gender"`
	Address    string         `json:"address"`
	Active     bool           `json:"active"`
	Permission permission.Map `json:"permission"`
}

// PermissionResponse is returned by GET /users/permission/{username}.
type PermissionResponse struct {
	Permission permission.Map `json:"permission"`
}

func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Phone:      u.Phone,
		Dob:        dates.Format(u.Dob),
		Gender:     u.Gender,
		Address:    u.Address,
		Active:     u.Active,
		Permission: u.PermissionMap(),
	}
}
