package permission

// Role codes as issued by the user service.
const (
	RoleAdmin    = "ROLE_ADMIN"
	RoleStaff    = "ROLE_STAFF"
	RoleCreate   = "ROLE_CREATE"
	RoleRead     = "ROLE_READ"
	RoleUpdate   = "ROLE_UPDATE"
	RoleDelete   = "ROLE_DELETE"
	RoleCustomer = "ROLE_CUSTOMER"
)

// Screen is the unit of permission granting.
type Screen string

const (
	ScreenDashboard Screen = "DASHBOARD"
	ScreenTickets   Screen = "TICKETS"
	ScreenTrips     Screen = "TRIPS"
	ScreenDrivers   Screen = "DRIVERS"
	ScreenCoaches   Screen = "COACHES"
	ScreenDiscounts Screen = "DISCOUNTS"
	ScreenUsers     Screen = "USERS"
	ScreenReport    Screen = "REPORT"
)

// AllRoles lists every role code in display order.
var AllRoles = []string{RoleAdmin, RoleStaff, RoleCreate, RoleRead, RoleUpdate, RoleDelete, RoleCustomer}

// AllScreens lists every screen in sidebar order.
var AllScreens = []Screen{
	ScreenDashboard, ScreenTickets, ScreenTrips, ScreenDrivers,
	ScreenCoaches, ScreenDiscounts, ScreenUsers, ScreenReport,
}

// screenPaths maps the first path segment of an admin page or of an API
// resource to the screen guarding it.
var screenPaths = map[string]Screen{
	"/dashboard": ScreenDashboard,
	"/tickets":   ScreenTickets,
	"/bookings":  ScreenTickets,
	"/wizard":    ScreenTickets,
	"/seats":     ScreenTickets,
	"/trips":     ScreenTrips,
	"/drivers":   ScreenDrivers,
	"/coaches":   ScreenCoaches,
	"/discounts": ScreenDiscounts,
	"/users":     ScreenUsers,
	"/reports":   ScreenReport,
}

// Paths that never require a session.
var publicPaths = map[string]bool{
	"/login":       true,
	"/forgot":      true,
	"/not-allowed": true,
}

func IsValidRole(code string) bool {
	for _, r := range AllRoles {
		if r == code {
			return true
		}
	}
	return false
}

func IsValidScreen(s string) bool {
	for _, screen := range AllScreens {
		if string(screen) == s {
			return true
		}
	}
	return false
}
