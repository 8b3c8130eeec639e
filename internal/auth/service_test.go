package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/session"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/config"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/users"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*users.User)
	return u, args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*users.User)
	return u, args.Error(1)
}

func (m *MockRepository) UpdatePassword(ctx context.Context, id int64, hashed string) error {
	return m.Called(ctx, id, hashed).Error(0)
}

type MockManager struct {
	mock.Mock
}

func (m *MockManager) Start(ctx context.Context, who session.Identity, perms permission.Map) (*session.Session, error) {
	args := m.Called(ctx, who, perms)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

func (m *MockManager) Get(ctx context.Context, id string) (*session.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

func (m *MockManager) End(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockManager) RefreshPermissions(ctx context.Context, username string, perms permission.Map) error {
	return m.Called(ctx, username, perms).Error(0)
}

type recordingSearches struct{ forgotten []string }

func (r *recordingSearches) Forget(key string) { r.forgotten = append(r.forgotten, key) }

type recordingNotifier struct {
	password string
	err      error
}

func (r *recordingNotifier) PasswordReset(ctx context.Context, email, name, username, password string) error {
	r.password = password
	return r.err
}

var jwtConfig = config.JWTConfig{Secret: "test-secret", JWTExpiresIn: time.Hour, Issuer: "test"}

func staffUser(t *testing.T, role string) *users.User {
	t.Helper()
	hashed, err := users.HashPassword("secret1")
	require.NoError(t, err)
	return &users.User{
		ID:          3,
		Username:    "lan",
		Password:    hashed,
		FirstName:   "Lan",
		LastName:    "Nguyen",
		Email:       "lan@example.com",
		Active:      true,
		Permissions: []users.UserPermission{{RoleCode: role}},
	}
}

func TestLoginIssuesTokenForStaff(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByUsername", mock.Anything, "lan").Return(staffUser(t, permission.RoleStaff), nil)
	sessions := new(MockManager)
	sessions.On("Start", mock.Anything, mock.MatchedBy(func(who session.Identity) bool {
		return who.UserID == 3 && who.FullName == "Lan Nguyen"
	}), mock.Anything).Return(&session.Session{ID: "sid-1", UserID: 3, Username: "lan"}, nil)

	svc := NewService(repo, sessions, jwtConfig, nil, nil)
	resp, err := svc.Login(context.Background(), LoginRequest{Username: "lan", Password: "secret1"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.True(t, resp.Permission.Has(permission.RoleStaff))

	claims, err := session.ParseToken(jwtConfig.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByUsername", mock.Anything, "lan").Return(staffUser(t, permission.RoleStaff), nil)
	sessions := new(MockManager)

	svc := NewService(repo, sessions, jwtConfig, nil, nil)
	_, err := svc.Login(context.Background(), LoginRequest{Username: "lan", Password: "nope"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	sessions.AssertNotCalled(t, "Start", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginUnknownUser(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, users.ErrUserNotFound)

	svc := NewService(repo, new(MockManager), jwtConfig, nil, nil)
	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "x"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsCustomers(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByUsername", mock.Anything, "lan").Return(staffUser(t, permission.RoleCustomer), nil)

	svc := NewService(repo, new(MockManager), jwtConfig, nil, nil)
	_, err := svc.Login(context.Background(), LoginRequest{Username: "lan", Password: "secret1"})

	require.True(t, apperror.IsForbidden(err))
	assert.Contains(t, err.Error(), "You don't have permission to access")
}

func TestLoginRejectsInactive(t *testing.T) {
	u := staffUser(t, permission.RoleAdmin)
	u.Active = false
	repo := new(MockRepository)
	repo.On("FindByUsername", mock.Anything, "lan").Return(u, nil)

	svc := NewService(repo, new(MockManager), jwtConfig, nil, nil)
	_, err := svc.Login(context.Background(), LoginRequest{Username: "lan", Password: "secret1"})

	assert.True(t, apperror.IsForbidden(err))
}

func TestLogoutForgetsSearch(t *testing.T) {
	sessions := new(MockManager)
	sessions.On("End", mock.Anything, "sid-1").Return(nil)
	searches := &recordingSearches{}

	svc := NewService(new(MockRepository), sessions, jwtConfig, searches, nil)
	require.NoError(t, svc.Logout(context.Background(), "sid-1"))

	assert.Equal(t, []string{"sid-1"}, searches.forgotten)
	sessions.AssertExpectations(t)
}

func TestForgotResetsAndSends(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByEmail", mock.Anything, "lan@example.com").Return(staffUser(t, permission.RoleStaff), nil)
	repo.On("UpdatePassword", mock.Anything, int64(3), mock.AnythingOfType("string")).Return(nil)
	notifier := &recordingNotifier{}

	svc := NewService(repo, new(MockManager), jwtConfig, nil, notifier)
	require.NoError(t, svc.Forgot(context.Background(), ForgotRequest{Email: "lan@example.com"}))

	require.Len(t, notifier.password, resetPasswordLength)
	hashed := repo.Calls[1].Arguments.String(2)
	assert.NotEqual(t, notifier.password, hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2"))
}

func TestForgotUnknownEmail(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByEmail", mock.Anything, "who@example.com").Return(nil, users.ErrUserNotFound)

	svc := NewService(repo, new(MockManager), jwtConfig, nil, &recordingNotifier{})
	err := svc.Forgot(context.Background(), ForgotRequest{Email: "who@example.com"})

	assert.True(t, apperror.IsNotFound(err))
}

func TestForgotMailFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByEmail", mock.Anything, "lan@example.com").Return(staffUser(t, permission.RoleStaff), nil)
	repo.On("UpdatePassword", mock.Anything, int64(3), mock.Anything).Return(nil)

	svc := NewService(repo, new(MockManager), jwtConfig, nil, &recordingNotifier{err: errors.New("smtp down")})
	err := svc.Forgot(context.Background(), ForgotRequest{Email: "lan@example.com"})

	assert.True(t, apperror.IsInternal(err))
}

func TestChangePassword(t *testing.T) {
	current := &session.Session{ID: "sid-1", Username: "lan"}
	req := ChangePasswordRequest{Username: "lan", OldPassword: "secret1", NewPassword: "secret2", ConfirmPassword: "secret2"}

	t.Run("ok", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByUsername", mock.Anything, "lan").Return(staffUser(t, permission.RoleStaff), nil)
		repo.On("UpdatePassword", mock.Anything, int64(3), mock.Anything).Return(nil)

		svc := NewService(repo, new(MockManager), jwtConfig, nil, nil)
		assert.NoError(t, svc.ChangePassword(context.Background(), current, req))
	})

	t.Run("wrong old password", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByUsername", mock.Anything, "lan").Return(staffUser(t, permission.RoleStaff), nil)

		bad := req
		bad.OldPassword = "guess"
		svc := NewService(repo, new(MockManager), jwtConfig, nil, nil)
		assert.True(t, apperror.IsValidation(svc.ChangePassword(context.Background(), current, bad)))
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		bad := req
		bad.ConfirmPassword = "other"
		svc := NewService(new(MockRepository), new(MockManager), jwtConfig, nil, nil)
		assert.True(t, apperror.IsValidation(svc.ChangePassword(context.Background(), current, bad)))
	})

	t.Run("someone else", func(t *testing.T) {
		bad := req
		bad.Username = "admin"
		svc := NewService(new(MockRepository), new(MockManager), jwtConfig, nil, nil)
		assert.True(t, apperror.IsForbidden(svc.ChangePassword(context.Background(), current, bad)))
	})
}

func TestLoginEndpointWrongPasswordIs401(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := new(MockRepository)
	repo.On("FindByUsername", mock.Anything, "lan").Return(staffUser(t, permission.RoleStaff), nil)

	router := gin.New()
	router.POST("/auth/login", NewController(NewService(repo, new(MockManager), jwtConfig, nil, nil)).Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"lan","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Wrong username or password")
}
