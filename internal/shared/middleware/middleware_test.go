package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/session"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/config"
)

type fakeSessions struct {
	sessions map[string]*session.Session
}

func (f *fakeSessions) Start(ctx context.Context, who session.Identity, perms permission.Map) (*session.Session, error) {
	return nil, nil
}

func (f *fakeSessions) Get(ctx context.Context, id string) (*session.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessions) End(ctx context.Context, id string) error { return nil }

func (f *fakeSessions) RefreshPermissions(ctx context.Context, username string, perms permission.Map) error {
	return nil
}

func setupRouter(t *testing.T, perms permission.Map) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", JWTExpiresIn: time.Hour}}
	s := &session.Session{ID: "sid-1", UserID: 1, Username: "reader", Permissions: perms}
	token, _, err := session.IssueToken(cfg.JWT, s)
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestID())
	api := r.Group("/api/v1", JWTAuth(cfg, &fakeSessions{sessions: map[string]*session.Session{"sid-1": s}}))
	trips := api.Group("/trips", Authorize("/trips"))
	trips.GET("/all", func(c *gin.Context) { c.Status(http.StatusOK) })
	trips.DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	api.POST("/wizard/:id/next", AuthorizeAs(permission.ActionCreate, "/wizard"), func(c *gin.Context) { c.Status(http.StatusOK) })
	api.GET("/me", RequireAdminApp(), func(c *gin.Context) { c.Status(http.StatusOK) })

	return r, token
}

func do(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthorizeByMethod(t *testing.T) {
	r, token := setupRouter(t, permission.Map{permission.RoleRead: {"TRIPS"}})

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/trips/all", token).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodDelete, "/api/v1/trips/4", token).Code)
}

func TestAuthorizeAsFixedAction(t *testing.T) {
	r, token := setupRouter(t, permission.Map{permission.RoleCreate: {"TICKETS"}})
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/wizard/w1/next", token).Code)

	r, token = setupRouter(t, permission.Map{permission.RoleRead: {"TICKETS"}})
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/api/v1/wizard/w1/next", token).Code)
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
	r, _ := setupRouter(t, permission.Map{permission.RoleAdmin: {}})

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/v1/trips/all", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/v1/trips/all", "garbage").Code)
}

func TestJWTAuthRejectsEndedSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", JWTExpiresIn: time.Hour}}
	token, _, err := session.IssueToken(cfg.JWT, &session.Session{ID: "gone"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/x", JWTAuth(cfg, &fakeSessions{sessions: map[string]*session.Session{}}), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/x", token).Code)
}

func TestRequireAdminApp(t *testing.T) {
	r, token := setupRouter(t, permission.Map{permission.RoleCustomer: {}})
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/v1/me", token).Code)

	r, token = setupRouter(t, permission.Map{permission.RoleStaff: {}})
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/me", token).Code)
}

func TestRequestIDEchoed(t *testing.T) {
	r, _ := setupRouter(t, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/trips/all", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
