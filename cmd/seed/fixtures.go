package main

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/seats"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/trips"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/users"
)

// Fixtures is the seed data file layout.
type Fixtures struct {
	Provinces []string          `yaml:"provinces"`
	Coaches   []CoachFixture    `yaml:"coaches"`
	Drivers   []DriverFixture   `yaml:"drivers"`
	Discounts []DiscountFixture `yaml:"discounts"`
	Trips     []TripFixture     `yaml:"trips"`
	Users     []UserFixture     `yaml:"users"`
}

type CoachFixture struct {
	Name         string `yaml:"name"`
	LicensePlate string `yaml:"licensePlate"`
	CoachType    string `yaml:"coachType"`
}

type DriverFixture struct {
	FirstName     string `yaml:"firstName"`
	LastName      string `yaml:"lastName"`
	LicenseNumber string `yaml:"licenseNumber"`
	Phone         string `yaml:"phone"`
	Email         string `yaml:"email"`
	Dob           Date   `yaml:"dob"`
	Gender        bool   `yaml:"gender"`
	Address       string `yaml:"address"`
}

type DiscountFixture struct {
	Code        string `yaml:"code"`
	Amount      int64  `yaml:"amount"`
	Start       Date   `yaml:"start"`
	End         Date   `yaml:"end"`
	Description string `yaml:"description"`
}

type TripFixture struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
	Coach       string `yaml:"coach"`
	Driver      string `yaml:"driver"`
	Discount    string `yaml:"discount"`
	Price       int64  `yaml:"price"`
	Departure   string `yaml:"departure"`
	Duration    int    `yaml:"duration"`
}

type UserFixture struct {
	Username  string        `yaml:"username"`
	Password  string        `yaml:"password"`
	FirstName string        `yaml:"firstName"`
	LastName  string        `yaml:"lastName"`
	Email     string        `yaml:"email"`
	Phone     string        `yaml:"phone"`
	Roles     []RoleFixture `yaml:"roles"`
}

type RoleFixture struct {
	Code    string           `yaml:"code"`
	Screens users.ScreenList `yaml:"screens"`
}

// Date reads a YYYY-MM-DD scalar.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	t, err := time.ParseInLocation("2006-01-02", node.Value, time.Local)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	d.Time = t
	return nil
}

// ParseFixtures decodes raw and checks the enumerated values.
func ParseFixtures(raw []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	for _, c := range f.Coaches {
		if !seats.CoachType(c.CoachType).IsValid() {
			return nil, fmt.Errorf("coach %q: unknown coach type %q", c.LicensePlate, c.CoachType)
		}
	}
	for _, u := range f.Users {
		for _, r := range u.Roles {
			if !permission.IsValidRole(r.Code) {
				return nil, fmt.Errorf("user %q: unknown role %q", u.Username, r.Code)
			}
		}
	}
	return &f, nil
}

func (f TripFixture) toTrip(provinceIDs, coachIDs, driverIDs, discountIDs map[string]int64) (*trips.Trip, error) {
	departure, err := time.ParseInLocation("2006-01-02 15:04", f.Departure, time.Local)
	if err != nil {
		return nil, err
	}
	t := &trips.Trip{
		Price:             f.Price,
		DepartureDateTime: departure,
		Duration:          f.Duration,
	}
	var ok bool
	if t.SourceID, ok = provinceIDs[f.Source]; !ok {
		return nil, fmt.Errorf("unknown province %q", f.Source)
	}
	if t.DestinationID, ok = provinceIDs[f.Destination]; !ok {
		return nil, fmt.Errorf("unknown province %q", f.Destination)
	}
	if t.SourceID == t.DestinationID {
		return nil, fmt.Errorf("source and destination are both %q", f.Source)
	}
	if t.CoachID, ok = coachIDs[f.Coach]; !ok {
		return nil, fmt.Errorf("unknown coach %q", f.Coach)
	}
	if t.DriverID, ok = driverIDs[f.Driver]; !ok {
		return nil, fmt.Errorf("unknown driver %q", f.Driver)
	}
	if f.Discount != "" {
		id, ok := discountIDs[f.Discount]
		if !ok {
			return nil, fmt.Errorf("unknown discount %q", f.Discount)
		}
		t.DiscountID = &id
	}
	return t, nil
}
