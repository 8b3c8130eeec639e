package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/response"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

// routeClasses maps a path segment to its limit class. The first segment
// found in the path wins.
var routeClasses = map[string]RateLimitType{
	"health":    RateLimitTypeHealth,
	"ping":      RateLimitTypeHealth,
	"status":    RateLimitTypeHealth,
	"auth":      RateLimitTypeAuth,
	"reports":   RateLimitTypeReport,
	"dashboard": RateLimitTypeReport,
	"bookings":  RateLimitTypeBooking,
	"wizard":    RateLimitTypeBooking,
	"seats":     RateLimitTypeBooking,
}

// Middleware applies the per-class sliding window to every request. When
// Redis is unreachable requests pass unthrottled.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		clientIP := getClientIP(c)

		result, err := rateLimiter.IsAllowed(ctx, clientIP, getRateLimitType(c.Request.URL.Path))
		if err != nil {
			logger.GetDefault().ErrorWithContext(ctx, "Rate limit check failed", err, map[string]interface{}{"ip": clientIP})
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if result.Allowed {
			c.Next()
			return
		}

		retryAfter := result.ResetTime - time.Now().Unix()
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
		logger.GetDefault().LogRateLimitExceeded(ctx, clientIP, c.Request.URL.Path)
		response.RespondJSON(c, "error", http.StatusTooManyRequests, "Too many requests, please slow down", nil,
			map[string]interface{}{"limit": result.Limit, "reset_time": result.ResetTime})
		c.Abort()
	}
}

func getRateLimitType(path string) RateLimitType {
	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		if class, ok := routeClasses[segment]; ok {
			return class
		}
	}
	return RateLimitTypeDefault
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then
// the socket peer.
func getClientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); net.ParseIP(ip) != nil {
		return ip
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
