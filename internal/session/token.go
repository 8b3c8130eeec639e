package session

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/config"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the access token payload. Permissions are deliberately
// absent; they live in the session.
type TokenClaims struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	SessionID string `json:"sid"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// IssueToken signs an access token bound to s.
func IssueToken(cfg config.JWTConfig, s *Session) (string, int64, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:    s.UserID,
		Username:  s.Username,
		SessionID: s.ID,
		Type:      "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWTExpiresIn)),
			Issuer:    cfg.Issuer,
			Subject:   strconv.FormatInt(s.UserID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", 0, err
	}
	return signed, int64(cfg.JWTExpiresIn.Seconds()), nil
}

// ParseToken validates the signature, expiry and type of an access token.
func ParseToken(secret, tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.Type != "access" || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
