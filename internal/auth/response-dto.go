package auth

import (
	"time"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/session"
)

type LoginResponse struct {
	Token      string         `json:"token"`
	ExpiresIn  int64          `json:"expiresIn"`
	Username   string         `json:"username"`
	FullName   string         `json:"fullName"`
	Permission permission.Map `json:"permission"`
}

// MeResponse is the signed-in user as the session knows it.
type MeResponse struct {
	UserID     int64          `json:"userId"`
	Username   string         `json:"username"`
	Email      string         `json:"email"`
	FullName   string         `json:"fullName"`
	Permission permission.Map `json:"permission"`
	ExpiresAt  time.Time      `json:"expiresAt"`
}

func newMeResponse(s *session.Session) MeResponse {
	return MeResponse{
		UserID:     s.UserID,
		Username:   s.Username,
		Email:      s.Email,
		FullName:   s.FullName,
		Permission: s.Permissions,
		ExpiresAt:  s.ExpiresAt,
	}
}
