package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gorm.io/gorm"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/coaches"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/discounts"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/drivers"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/provinces"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/seats"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/config"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/database"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/users"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type Seeder struct {
	db       *gorm.DB
	fixtures *Fixtures
}

func main() {
	file := pflag.StringP("file", "f", "", "YAML fixture file (defaults to the bundled fixtures)")
	clean := pflag.Bool("clean", false, "truncate all tables before seeding")
	adminUser := pflag.String("admin-user", "admin", "username of the administrator account")
	adminPassword := pflag.String("admin-password", "admin", "password of the administrator account")
	pflag.Parse()

	fmt.Println("🌱 Starting bus ticket database seeder...")

	raw := defaultFixtures
	if *file != "" {
		b, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("Failed to read fixtures: %v", err)
		}
		raw = b
	}
	fixtures, err := ParseFixtures(raw)
	if err != nil {
		log.Fatalf("Failed to parse fixtures: %v", err)
	}

	cfg := config.Load()
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db.PostgreSQL, fixtures: fixtures}
	ctx := context.Background()

	if *clean {
		fmt.Println("\n🧹 Cleaning database...")
		if err := seeder.CleanDatabase(ctx); err != nil {
			log.Fatalf("Failed to clean database: %v", err)
		}
	}

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(ctx, *adminUser, *adminPassword); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")
}

// CleanDatabase truncates every table, children first.
func (s *Seeder) CleanDatabase(ctx context.Context) error {
	tables := []string{
		"payments",
		"booking_seats",
		"bookings",
		"trips",
		"discounts",
		"drivers",
		"coaches",
		"provinces",
		"user_permissions",
		"users",
	}
	for _, table := range tables {
		if err := s.db.WithContext(ctx).Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll inserts the fixtures and the administrator in one transaction.
func (s *Seeder) SeedAll(ctx context.Context, adminUser, adminPassword string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		provinceIDs, err := s.seedProvinces(tx)
		if err != nil {
			return err
		}
		coachIDs, err := s.seedCoaches(tx)
		if err != nil {
			return err
		}
		driverIDs, err := s.seedDrivers(tx)
		if err != nil {
			return err
		}
		discountIDs, err := s.seedDiscounts(tx)
		if err != nil {
			return err
		}
		if err := s.seedTrips(tx, provinceIDs, coachIDs, driverIDs, discountIDs); err != nil {
			return err
		}
		if err := s.seedAdmin(tx, adminUser, adminPassword); err != nil {
			return err
		}
		return s.seedUsers(tx)
	})
}

func (s *Seeder) seedProvinces(tx *gorm.DB) (map[string]int64, error) {
	ids := make(map[string]int64, len(s.fixtures.Provinces))
	for _, name := range s.fixtures.Provinces {
		p := provinces.Province{Name: name}
		if err := tx.Where(provinces.Province{Name: name}).FirstOrCreate(&p).Error; err != nil {
			return nil, fmt.Errorf("province %q: %w", name, err)
		}
		ids[name] = p.ID
	}
	fmt.Printf("   provinces: %d\n", len(ids))
	return ids, nil
}

func (s *Seeder) seedCoaches(tx *gorm.DB) (map[string]int64, error) {
	ids := make(map[string]int64, len(s.fixtures.Coaches))
	for _, f := range s.fixtures.Coaches {
		coachType := seats.CoachType(f.CoachType)
		c := coaches.Coach{
			Name:         f.Name,
			LicensePlate: f.LicensePlate,
			CoachType:    coachType,
			Capacity:     seats.LayoutSize(coachType),
		}
		if err := tx.Where(coaches.Coach{LicensePlate: f.LicensePlate}).FirstOrCreate(&c).Error; err != nil {
			return nil, fmt.Errorf("coach %q: %w", f.LicensePlate, err)
		}
		ids[f.LicensePlate] = c.ID
	}
	fmt.Printf("   coaches: %d\n", len(ids))
	return ids, nil
}

func (s *Seeder) seedDrivers(tx *gorm.DB) (map[string]int64, error) {
	ids := make(map[string]int64, len(s.fixtures.Drivers))
	for _, f := range s.fixtures.Drivers {
		d := drivers.Driver{
			FirstName:     f.FirstName,
			LastName:      f.LastName,
			LicenseNumber: f.LicenseNumber,
			Phone:         f.Phone,
			Email:         f.Email,
			Dob:           f.Dob.Time,
			Gender:        f.Gender,
			Address:       f.Address,
		}
		if err := tx.Where(drivers.Driver{LicenseNumber: f.LicenseNumber}).FirstOrCreate(&d).Error; err != nil {
			return nil, fmt.Errorf("driver %q: %w", f.LicenseNumber, err)
		}
		ids[f.LicenseNumber] = d.ID
	}
	fmt.Printf("   drivers: %d\n", len(ids))
	return ids, nil
}

func (s *Seeder) seedDiscounts(tx *gorm.DB) (map[string]int64, error) {
	ids := make(map[string]int64, len(s.fixtures.Discounts))
	for _, f := range s.fixtures.Discounts {
		d := discounts.Discount{
			Code:          f.Code,
			Amount:        f.Amount,
			StartDateTime: f.Start.Time,
			EndDateTime:   f.End.Time.Add(24*time.Hour - time.Second),
			Description:   f.Description,
		}
		if err := tx.Where(discounts.Discount{Code: f.Code}).FirstOrCreate(&d).Error; err != nil {
			return nil, fmt.Errorf("discount %q: %w", f.Code, err)
		}
		ids[f.Code] = d.ID
	}
	fmt.Printf("   discounts: %d\n", len(ids))
	return ids, nil
}

func (s *Seeder) seedTrips(tx *gorm.DB, provinceIDs, coachIDs, driverIDs, discountIDs map[string]int64) error {
	for i, f := range s.fixtures.Trips {
		t, err := f.toTrip(provinceIDs, coachIDs, driverIDs, discountIDs)
		if err != nil {
			return fmt.Errorf("trip %d: %w", i+1, err)
		}
		if err := tx.Create(t).Error; err != nil {
			return fmt.Errorf("trip %d: %w", i+1, err)
		}
	}
	fmt.Printf("   trips: %d\n", len(s.fixtures.Trips))
	return nil
}

func (s *Seeder) seedAdmin(tx *gorm.DB, username, password string) error {
	screens := make(users.ScreenList, 0, len(permission.AllScreens))
	for _, sc := range permission.AllScreens {
		screens = append(screens, string(sc))
	}
	admin := UserFixture{
		Username:  username,
		Password:  password,
		FirstName: "System",
		LastName:  "Administrator",
		Email:     username + "@busticket.local",
		Phone:     "0900000000",
		Roles:     []RoleFixture{{Code: permission.RoleAdmin, Screens: screens}},
	}
	if err := createUser(tx, admin); err != nil {
		return err
	}
	fmt.Printf("   admin: %s\n", username)
	return nil
}

func (s *Seeder) seedUsers(tx *gorm.DB) error {
	for _, f := range s.fixtures.Users {
		if err := createUser(tx, f); err != nil {
			return err
		}
	}
	fmt.Printf("   users: %d\n", len(s.fixtures.Users))
	return nil
}

// createUser inserts f unless its username already exists.
func createUser(tx *gorm.DB, f UserFixture) error {
	var existing int64
	if err := tx.Model(&users.User{}).Where("username = ?", f.Username).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	hashed, err := users.HashPassword(f.Password)
	if err != nil {
		return err
	}
	u := users.User{
		Username:  f.Username,
		Password:  hashed,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Active:    true,
	}
	for _, r := range f.Roles {
		u.Permissions = append(u.Permissions, users.UserPermission{RoleCode: r.Code, Screens: r.Screens})
	}
	if err := tx.Create(&u).Error; err != nil {
		return fmt.Errorf("user %q: %w", f.Username, err)
	}
	return nil
}
