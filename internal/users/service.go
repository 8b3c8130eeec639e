package users

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/constants"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/dates"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/duplicate"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/response"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/validation"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/cache"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

type Service interface {
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetPage(ctx context.Context, page, limit int) (*response.Page[UserResponse], error)
	GetByID(ctx context.Context, id int64) (*UserResponse, error)
	Create(ctx context.Context, req UserRequest) (*UserResponse, error)
	Update(ctx context.Context, req UserRequest) (*UserResponse, error)
	Delete(ctx context.Context, id int64) error
	CheckDuplicate(ctx context.Context, chk duplicate.Check) (bool, error)
	GetPermission(ctx context.Context, username string) (*PermissionResponse, error)
}

// PermissionRefresher pushes a changed permission map into a live session.
type PermissionRefresher interface {
	RefreshPermissions(ctx context.Context, username string, perms permission.Map) error
}

type service struct {
	repo     Repository
	cache    cache.Service
	sessions PermissionRefresher
}

var validate = validation.New()

// NewService wires the user service. c and sessions may be nil.
func NewService(repo Repository, c cache.Service, sessions PermissionRefresher) Service {
	return &service{repo: repo, cache: c, sessions: sessions}
}

func toResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return toResponses(users), nil
}

func (s *service) GetPage(ctx context.Context, page, limit int) (*response.Page[UserResponse], error) {
	users, total, err := s.repo.FindPage(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	p := response.NewPage(toResponses(users), total, page, limit)
	return &p, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := user.ToResponse()
	return &res, nil
}

func (s *service) find(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperror.NotFoundError{Resource: "user", Err: err}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// checkPermissions rejects unknown role codes and screens.
func checkPermissions(m permission.Map) error {
	fields := map[string]string{}
	for role, screens := range m {
		if !permission.IsValidRole(role) {
			fields["permission."+role] = "unknown role"
			continue
		}
		for _, screen := range screens {
			if !permission.IsValidScreen(screen) {
				fields["permission."+role] = "unknown screen " + screen
				break
			}
		}
	}
	if len(fields) > 0 {
		return validation.FieldErrors{Fields: fields}
	}
	return nil
}

// check validates req and makes sure its unique fields are free. id is 0
// for a new user.
func (s *service) check(ctx context.Context, id int64, req UserRequest) error {
	if err := validation.Struct(validate, req); err != nil {
		return err
	}
	if id == 0 && req.Password == "" {
		return apperror.Invalid("password", "password is required")
	}
	if _, err := dates.Parse("dob", req.Dob); err != nil {
		return err
	}
	if err := checkPermissions(req.Permission); err != nil {
		return err
	}

	var taken []string
	for field, value := range map[string]string{
		"username": req.Username,
		"email":    req.Email,
		"phone":    req.Phone,
	} {
		chk := duplicate.ForAdd(duplicateColumns[field], value)
		if id > 0 {
			chk = duplicate.ForUpdate(id, duplicateColumns[field], value)
		}
		free, err := s.repo.IsFree(ctx, chk)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", field, err)
		}
		if !free {
			taken = append(taken, field)
		}
	}
	if len(taken) > 0 {
		slices.Sort(taken)
		return apperror.Conflict("user", "already registered: "+strings.Join(taken, ", "))
	}
	return nil
}

func (s *service) apply(user *User, req UserRequest) error {
	dob, _ := dates.Parse("dob", req.Dob)
	user.Username = req.Username
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	user.Phone = req.Phone
	user.Dob = dob
	user.Gender = req.Gender
	user.Address = req.Address
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Password != "" {
		hashed, err := HashPassword(req.Password)
		if err != nil {
			return err
		}
		user.Password = hashed
	}
	return nil
}

// HashPassword bcrypt-hashes a plain password.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *service) Create(ctx context.Context, req UserRequest) (*UserResponse, error) {
	if err := s.check(ctx, 0, req); err != nil {
		return nil, err
	}

	user := &User{Active: true}
	if err := s.apply(user, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user, req.Permission); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	res := user.ToResponse()
	return &res, nil
}

func (s *service) Update(ctx context.Context, req UserRequest) (*UserResponse, error) {
	user, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, req.ID, req); err != nil {
		return nil, err
	}

	previous := user.Username
	if err := s.apply(user, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, user, req.Permission); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.permissionsChanged(ctx, previous, user)

	res := user.ToResponse()
	return &res, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	bookings, err := s.repo.CountBookings(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user bookings: %w", err)
	}
	if bookings > 0 {
		return apperror.Conflict("user", fmt.Sprintf("user has %d booking(s)", bookings))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperror.NotFoundError{Resource: "user", Err: err}
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.forgetPermission(ctx, user.Username)
	return nil
}

func (s *service) CheckDuplicate(ctx context.Context, chk duplicate.Check) (bool, error) {
	free, err := s.repo.IsFree(ctx, chk)
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate: %w", err)
	}
	return free, nil
}

func (s *service) GetPermission(ctx context.Context, username string) (*PermissionResponse, error) {
	fetch := func() (interface{}, error) {
		user, err := s.repo.FindByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		return PermissionResponse{Permission: user.PermissionMap()}, nil
	}

	var res PermissionResponse
	if s.cache == nil {
		v, err := fetch()
		if err != nil {
			return nil, s.permissionError(err)
		}
		res = v.(PermissionResponse)
		return &res, nil
	}

	key := constants.BuildUserPermissionKey(username)
	if err := s.cache.GetOrSet(ctx, key, constants.TTL_USER_PERMISSION, fetch, &res); err != nil {
		return nil, s.permissionError(err)
	}
	return &res, nil
}

func (s *service) permissionError(err error) error {
	if errors.Is(err, ErrUserNotFound) {
		return apperror.NotFoundError{Resource: "user", Err: err}
	}
	return fmt.Errorf("failed to get permission: %w", err)
}

// permissionsChanged drops cached maps and refreshes the live session of
// the user.
func (s *service) permissionsChanged(ctx context.Context, previous string, user *User) {
	s.forgetPermission(ctx, previous)
	if previous != user.Username {
		s.forgetPermission(ctx, user.Username)
	}
	if s.sessions == nil {
		return
	}
	if err := s.sessions.RefreshPermissions(ctx, previous, user.PermissionMap()); err != nil {
		logger.GetDefault().Warn("Failed to refresh session permissions", "username", previous, "error", err)
	}
}

func (s *service) forgetPermission(ctx context.Context, username string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, constants.BuildUserPermissionKey(username)); err != nil {
		logger.GetDefault().Warn("Failed to invalidate permission cache", "username", username, "error", err)
	}
}
