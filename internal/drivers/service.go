package drivers

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/dates"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/duplicate"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/response"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/validation"
)

type Service interface {
	GetAll(ctx context.Context) ([]DriverResponse, error)
	GetPage(ctx context.Context, page, limit int) (*response.Page[DriverResponse], error)
	GetByID(ctx context.Context, id int64) (*DriverResponse, error)
	Create(ctx context.Context, req DriverRequest) (*DriverResponse, error)
	Update(ctx context.Context, req DriverRequest) (*DriverResponse, error)
	Delete(ctx context.Context, id int64) error
	CheckDuplicate(ctx context.Context, chk duplicate.Check) (bool, error)
}

type service struct {
	repo Repository
}

var validate = validation.New()

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func toResponses(drivers []Driver) []DriverResponse {
	out := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, d.ToResponse())
	}
	return out
}

func (s *service) GetAll(ctx context.Context) ([]DriverResponse, error) {
	drivers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return toResponses(drivers), nil
}

func (s *service) GetPage(ctx context.Context, page, limit int) (*response.Page[DriverResponse], error) {
	drivers, total, err := s.repo.FindPage(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	p := response.NewPage(toResponses(drivers), total, page, limit)
	return &p, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*DriverResponse, error) {
	driver, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := driver.ToResponse()
	return &res, nil
}

func (s *service) find(ctx context.Context, id int64) (*Driver, error) {
	driver, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDriverNotFound) {
			return nil, apperror.NotFoundError{Resource: "driver", Err: err}
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return driver, nil
}

// check validates req and makes sure its unique fields are free. id is 0
// for a new driver.
func (s *service) check(ctx context.Context, id int64, req DriverRequest) error {
	if err := validation.Struct(validate, req); err != nil {
		return err
	}
	if _, err := dates.Parse("dob", req.Dob); err != nil {
		return err
	}

	var taken []string
	for field, value := range map[string]string{
		"licenseNumber": req.LicenseNumber,
		"phone":         req.Phone,
		"email":         req.Email,
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
		return apperror.Conflict("driver", "already registered: "+strings.Join(taken, ", "))
	}
	return nil
}

func (s *service) apply(driver *Driver, req DriverRequest) {
	dob, _ := dates.Parse("dob", req.Dob)
	driver.FirstName = req.FirstName
	driver.LastName = req.LastName
	driver.LicenseNumber = req.LicenseNumber
	driver.Phone = req.Phone
	driver.Email = req.Email
	driver.Dob = dob
	driver.Gender = req.Gender
	driver.Address = req.Address
	driver.Quit = req.Quit
}

func (s *service) Create(ctx context.Context, req DriverRequest) (*DriverResponse, error) {
	if err := s.check(ctx, 0, req); err != nil {
		return nil, err
	}

	driver := &Driver{}
	s.apply(driver, req)
	if err := s.repo.Create(ctx, driver); err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	res := driver.ToResponse()
	return &res, nil
}

func (s *service) Update(ctx context.Context, req DriverRequest) (*DriverResponse, error) {
	driver, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, req.ID, req); err != nil {
		return nil, err
	}

	s.apply(driver, req)
	if err := s.repo.Update(ctx, driver); err != nil {
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}

	res := driver.ToResponse()
	return &res, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	trips, err := s.repo.CountTrips(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check driver usage: %w", err)
	}
	if trips > 0 {
		return apperror.Conflict("driver", fmt.Sprintf("driver is assigned to %d trip(s)", trips))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrDriverNotFound) {
			return apperror.NotFoundError{Resource: "driver", Err: err}
		}
		return fmt.Errorf("failed to delete driver: %w", err)
	}
	return nil
}

func (s *service) CheckDuplicate(ctx context.Context, chk duplicate.Check) (bool, error) {
	free, err := s.repo.IsFree(ctx, chk)
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate: %w", err)
	}
	return free, nil
}
