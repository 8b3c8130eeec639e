package drivers

// DriverRequest is the body of POST and PUT /drivers. Dob is yyyy-MM-dd.
type DriverRequest struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"firstName" validate:"required,max=100"`
	LastName      string `json:"lastName" validate:"required,max=100"`
	LicenseNumber string `json:"licenseNumber" validate:"required,max=20"`
	Phone         string `json:"phone" validate:"required,vnphone"`
	Email         string `json:"email" validate:"required,email,max=100"`
	Dob           string `json:"dob" validate:"required"`
	Gender        bool   `json:"gender"`
	Address       string `json:"address" validate:"max=255"`
	Quit          bool   `json:"quit"`
}
