package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/session"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/config"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/validation"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/users"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

var ErrInvalidCredentials = errors.New("wrong username or password")

const resetPasswordLength = 10

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	// Forgot replaces the password of the account behind email with a random
	// one and sends it to that address.
	Forgot(ctx context.Context, req ForgotRequest) error
	CheckExistEmail(ctx context.Context, email string) (bool, error)
	ChangePassword(ctx context.Context, current *session.Session, req ChangePasswordRequest) error
}

type service struct {
	repo     Repository
	sessions session.Manager
	jwt      config.JWTConfig
	searches SearchRegistry
	notifier ResetNotifier
}

var validate = validation.New()

// NewService wires the auth flows. searches and notifier may be nil.
func NewService(repo Repository, sessions session.Manager, jwt config.JWTConfig, searches SearchRegistry, notifier ResetNotifier) Service {
	return &service{
		repo:     repo,
		sessions: sessions,
		jwt:      jwt,
		searches: searches,
		notifier: notifier,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validation.Struct(validate, req); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			logger.GetDefault().LogAuthFailure(ctx, req.Username, "unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.GetDefault().LogAuthFailure(ctx, user.Username, "wrong password")
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		logger.GetDefault().LogAuthFailure(ctx, user.Username, "inactive")
		return nil, apperror.Forbidden("Your account has been disabled")
	}

	perms := user.PermissionMap()
	if !permission.CanEnterAdminApp(perms) {
		logger.GetDefault().LogAuthFailure(ctx, user.Username, "no back-office role")
		return nil, apperror.Forbidden("You don't have permission to access")
	}

	sess, err := s.sessions.Start(ctx, session.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName(),
	}, perms)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	token, expiresIn, err := session.IssueToken(s.jwt, sess)
	if err != nil {
		_ = s.sessions.End(ctx, sess.ID)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.GetDefault().LogAuthSuccess(ctx, user.Username, sess.ID)
	return &LoginResponse{
		Token:      token,
		ExpiresIn:  expiresIn,
		Username:   user.Username,
		FullName:   user.FullName(),
		Permission: perms,
	}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	if s.searches != nil {
		s.searches.Forget(sessionID)
	}
	if err := s.sessions.End(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

func (s *service) Forgot(ctx context.Context, req ForgotRequest) error {
	if err := validation.Struct(validate, req); err != nil {
		return err
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return apperror.NotFoundError{Resource: "email", Err: err}
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	plain, err := randomPassword(resetPasswordLength)
	if err != nil {
		return fmt.Errorf("failed to generate password: %w", err)
	}
	hashed, err := users.HashPassword(plain)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	if s.notifier == nil {
		logger.GetDefault().Warn("Password reset without a notifier; the user must ask an admin", "username", user.Username)
		return nil
	}
	if err := s.notifier.PasswordReset(ctx, user.Email, user.FullName(), user.Username, plain); err != nil {
		return apperror.Internal("Password was reset but the e-mail could not be sent", err)
	}
	logger.GetDefault().InfoWithContext(ctx, "Password reset", map[string]interface{}{"username": user.Username})
	return nil
}

func (s *service) CheckExistEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return true, nil
}

func (s *service) ChangePassword(ctx context.Context, current *session.Session, req ChangePasswordRequest) error {
	if err := validation.Struct(validate, req); err != nil {
		return err
	}
	if current == nil || current.Username != req.Username {
		return apperror.Forbidden("You can only change your own password")
	}

	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return apperror.NotFoundError{Resource: "user", Err: err}
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return apperror.Invalid("oldPassword", "old password is incorrect")
	}

	hashed, err := users.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

func randomPassword(n int) (string, error) {
	const alphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
