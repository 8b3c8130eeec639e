package users

import "github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"

// UserRequest is the body of POST and PUT /users. Password is required on
// create; on update an empty password keeps the current one.
type UserRequest struct {
	ID         int64          `json:"id"`
	Username   string         `json:"username" validate:"required,min=4,max=50,alphanum"`
	Password   string         `json:"password" validate:"omitempty,min=6,max=72"`
	FirstName  string         `json:"firstName" validate:"required,max=100"`
	LastName   string         `json:"lastName" validate:"required,max=100"`
	Email      string         `json:"email" validate:"required,email,max=100"`
	Phone      string         `json:"phone" validate:"required,vnphone"`
	Dob        string         `json:"dob" validate:"required"`
	Gender     bool           `json:"gender"`
	Address    string         `json:"address" validate:"max=255"`
	Active     *bool          `json:"active"`
	Permission permission.Map `json:"permission" validate:"required"`
}
