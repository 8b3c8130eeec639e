// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nguyentuanphung270301/BusTicketBookingAdmin/docs"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/auth"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/bookings"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/coaches"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/discounts"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/drivers"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/notifications"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/provinces"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/reports"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/seats"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/session"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/config"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/database"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/trips"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/tripsearch"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/users"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/wizard"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	cache     cache.Service
	sessions  session.Manager
	publisher *notifications.Publisher
	wizards   wizard.Store
}

// NewRouter creates a new router instance. wizards is the booking wizard
// state store picked by the caller.
func NewRouter(cfg *config.Config, db *database.DB, publisher *notifications.Publisher, wizards wizard.Store) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		cache:     cache.NewService(db.Redis),
		sessions:  session.NewManager(session.NewRedisStore(db.Redis), cfg.Redis.SessionTTL),
		publisher: publisher,
		wizards:   wizards,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	protected := api.Group("", middleware.JWTAuth(r.config, r.sessions), middleware.RequireAdminApp())

	pg := r.db.PostgreSQL

	// master data
	provinceRepo := provinces.NewRepository(pg)
	provinces.SetupProvinceRoutes(protected, provinces.NewController(provinces.NewService(provinceRepo, r.cache)))

	coachRepo := coaches.NewRepository(pg)
	coaches.SetupCoachRoutes(protected, coaches.NewController(coaches.NewService(coachRepo, r.cache)))

	driverRepo := drivers.NewRepository(pg)
	drivers.SetupDriverRoutes(protected, drivers.NewController(drivers.NewService(driverRepo)))

	discountRepo := discounts.NewRepository(pg)
	discounts.SetupDiscountRoutes(protected, discounts.NewController(discounts.NewService(discountRepo, r.cache)))

	userRepo := users.NewRepository(pg)
	users.SetupUserRoutes(protected, users.NewController(users.NewService(userRepo, r.cache, r.sessions)))

	// trips and search
	tripService := trips.NewService(trips.NewRepository(pg), r.cache)
	trips.SetupTripRoutes(protected, trips.NewController(tripService))

	seatRepo := seats.NewRepository(pg)
	searchRepo := tripsearch.NewRepository(pg)
	searches := tripsearch.NewService(tripsearch.NewCachedFinder(searchRepo, r.cache), seatRepo)
	tripsearch.SetupSearchRoutes(protected, tripsearch.NewController(searches))

	// ticketing
	seatController := seats.NewController(seats.NewService(seatRepo))
	seats.SetupSeatRoutes(protected, seatController)

	bookingService := bookings.NewService(
		bookings.NewRepository(pg),
		tripService,
		seatRepo,
		seats.NewAtomicRedisOperations(r.db.Redis, r.config.Redis.SeatLockTTL),
		r.publisher,
		r.cache,
		bookings.Options{MaxSeats: r.config.Booking.MaxSeatSelect, Currency: r.config.Booking.Currency},
	)
	bookings.SetupBookingRoutes(protected, bookings.NewController(bookingService), seatController.GetSeatBookings)

	wizardService := wizard.NewService(r.wizards, searches, searchRepo, seatRepo, bookingService, r.config.Booking.MaxSeatSelect)
	wizard.SetupWizardRoutes(protected, wizard.NewController(wizardService))

	// reports
	reportService := reports.NewService(reports.NewRepository(pg), driverRepo, userRepo, coachRepo, r.cache)
	reports.SetupReportRoutes(protected, reports.NewController(reportService))

	// auth
	var notifier auth.ResetNotifier
	if r.publisher != nil {
		notifier = r.publisher
	}
	authService := auth.NewService(userRepo, r.sessions, r.config.JWT, searches, notifier)
	auth.SetupAuthRoutes(api, protected, auth.NewController(authService))
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		stores := r.db.Health(c.Request.Context())
		code, status := http.StatusOK, "healthy"
		for _, st := range stores {
			if st != database.StatusUp {
				code, status = http.StatusServiceUnavailable, "unhealthy"
			}
		}
		c.JSON(code, gin.H{
			"status":    status,
			"stores":    stores,
			"timestamp": time.Now(),
			"service":   "bus-ticket-admin",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
