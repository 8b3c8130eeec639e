package session

import (
	"time"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
)

// Session is the server-side record behind an access token. The token only
// carries the session id; identity and permissions are read from here.
type Session struct {
	ID          string         `json:"id"`
	UserID      int64          `json:"userId"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	FullName    string         `json:"fullName"`
	Permissions permission.Map `json:"permissions"`
	CreatedAt   time.Time      `json:"createdAt"`
	ExpiresAt   time.Time      `json:"expiresAt"`
}

// Gate returns the permission gate for the session's map.
func (s *Session) Gate() permission.Gate {
	if s == nil {
		return permission.NewGate(nil)
	}
	return permission.NewGate(s.Permissions)
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Identity is what the login flow knows about the user being signed in.
type Identity struct {
	UserID   int64
	Username string
	Email    string
	FullName string
}
