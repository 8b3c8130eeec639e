package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/session"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/config"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/response"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

// Context keys set by the auth middleware.
const (
	ContextSession  = "session"
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// JWTAuth validates the bearer token and loads the session it points to.
func JWTAuth(cfg *config.Config, sessions session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		claims, err := session.ParseToken(cfg.JWT.Secret, parts[1])
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid or expired token", nil, nil)
			c.Abort()
			return
		}

		s, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "session expired, please log in again", nil, nil)
			c.Abort()
			return
		}

		c.Set(ContextSession, s)
		c.Set(ContextUserID, s.UserID)
		c.Set(ContextUsername, s.Username)
		c.Request = c.Request.WithContext(logger.WithUsername(c.Request.Context(), s.Username))
		c.Next()
	}
}

// CurrentSession returns the session loaded by JWTAuth.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok && s != nil
}

// Authorize checks the action implied by the HTTP method against the screen
// behind screenPath.
func Authorize(screenPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorize(c, permission.ActionForMethod(c.Request.Method), screenPath)
	}
}

// AuthorizeAs checks a fixed action, for routes whose method does not say
// what they do (the wizard posts on every step).
func AuthorizeAs(action permission.Action, screenPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorize(c, action, screenPath)
	}
}

// RequireAdminApp only lets admin or staff sessions through.
func RequireAdminApp() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := CurrentSession(c)
		if !ok || !permission.CanEnterAdminApp(s.Permissions) {
			response.RespondJSON(c, "error", http.StatusForbidden, "You don't have permission to access", nil, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func authorize(c *gin.Context, action permission.Action, screenPath string) {
	s, ok := CurrentSession(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "user session not found in context", nil, nil)
		c.Abort()
		return
	}

	if !s.Gate().IsAllowed(action, screenPath) {
		logger.GetDefault().LogPermissionDenied(c.Request.Context(), s.Username, string(action), c.Request.URL.Path)
		response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
		c.Abort()
		return
	}
	c.Next()
}

// RequestID tags each request with an id, reusing X-Request-ID if given.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
