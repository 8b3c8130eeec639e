package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with the service's business events.
type Logger struct {
	*slog.Logger
}

type ctxKey int

const (
	requestIDKey ctxKey = iota
	usernameKey
)

// WithRequestID returns ctx carrying the request id for every log line
// written with it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithUsername returns ctx carrying the signed-in back office user.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// RequestID reads the id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// contextHandler copies request-scoped values from ctx onto each record.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if user, ok := ctx.Value(usernameKey).(string); ok && user != "" {
		r.AddAttrs(slog.String("username", user))
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

func New() *Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"))
}

// NewWithWriter logs text in gin debug mode and JSON otherwise.
func NewWithWriter(w io.Writer, levelStr string) *Logger {
	level := getLogLevel(levelStr)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return &Logger{Logger: slog.New(contextHandler{handler})}
}

func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fieldArgs turns fields into slog attributes in key order.
func fieldArgs(fields map[string]interface{}, extra ...interface{}) []interface{} {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]interface{}, 0, len(keys)+len(extra))
	args = append(args, extra...)
	for _, k := range keys {
		args = append(args, slog.Any(k, fields[k]))
	}
	return args
}

// HTTP

func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	level := slog.LevelInfo
	switch status := c.Writer.Status(); {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}
	l.Logger.Log(c.Request.Context(), level, "HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(), "HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
	)
}

// Tickets

func (l *Logger) LogBookingCreated(ctx context.Context, bookingRef string, tripID int64, seats []int) {
	l.Logger.InfoContext(ctx, "Booking Created",
		slog.String("booking_ref", bookingRef),
		slog.Int64("trip_id", tripID),
		slog.Any("seats", seats),
	)
}

func (l *Logger) LogBookingCancelled(ctx context.Context, bookingRef string, tripID int64) {
	l.Logger.InfoContext(ctx, "Booking Cancelled",
		slog.String("booking_ref", bookingRef),
		slog.Int64("trip_id", tripID),
	)
}

// LogWizardSubmitted records the outcome of the final wizard step; a failed
// submit is a warning since the wizard stays on its payment step.
func (l *Logger) LogWizardSubmitted(ctx context.Context, wizardID, username string, err error) {
	if err != nil {
		l.Logger.WarnContext(ctx, "Booking Wizard Submit Failed",
			slog.String("wizard_id", wizardID),
			slog.String("owner", username),
			slog.String("error", err.Error()),
		)
		return
	}
	l.Logger.InfoContext(ctx, "Booking Wizard Submitted",
		slog.String("wizard_id", wizardID),
		slog.String("owner", username),
	)
}

// Security

func (l *Logger) LogAuthSuccess(ctx context.Context, username, sessionID string) {
	l.Logger.InfoContext(ctx, "Authentication Success",
		slog.String("login", username),
		slog.String("session_id", sessionID),
	)
}

func (l *Logger) LogAuthFailure(ctx context.Context, username, reason string) {
	l.Logger.WarnContext(ctx, "Authentication Failure",
		slog.String("login", username),
		slog.String("reason", reason),
	)
}

func (l *Logger) LogPermissionDenied(ctx context.Context, username, action, path string) {
	l.Logger.WarnContext(ctx, "Permission Denied",
		slog.String("login", username),
		slog.String("action", action),
		slog.String("path", path),
	)
}

func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx, "Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// Free-form

func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.Logger.InfoContext(ctx, msg, fieldArgs(fields)...)
}

func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	l.Logger.ErrorContext(ctx, msg, fieldArgs(fields, slog.String("error", err.Error()))...)
}

func (l *Logger) DebugWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.Logger.DebugContext(ctx, msg, fieldArgs(fields)...)
}

var defaultLogger = New()

func GetDefault() *Logger {
	return defaultLogger
}
