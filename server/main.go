package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/api/routes"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/notifications"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/config"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/database"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/wizard"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/ratelimit"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		appLogger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	wizards, err := openWizardStore(cfg, db)
	if err != nil {
		appLogger.Error("failed to open wizard store", slog.Any("error", err))
		os.Exit(1)
	}
	defer wizards.Close()

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.Redis, &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			AuthRequests:    cfg.RateLimit.AuthRequests,
			BookingRequests: cfg.RateLimit.BookingRequests,
			ReportRequests:  cfg.RateLimit.ReportRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	producer, consumer := setupNotifications(cfg)
	defer producer.Close()

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if consumer != nil {
		go func() {
			if err := consumer.StartConsumers(workerCtx, cfg.Kafka.Workers); err != nil {
				appLogger.Error("Notification workers stopped", slog.Any("error", err))
			}
		}()
		defer func() {
			appLogger.Info("Stopping notification workers...")
			if err := consumer.Stop(); err != nil {
				appLogger.Error("Error stopping notification workers", slog.Any("error", err))
			}
		}()
	}

	router := setupRouter(cfg, db, rateLimiter, notifications.NewPublisher(producer), wizards)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_base", cfg.GetAPIBasePath()),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("wizard_store", cfg.Wizard.Store),
			slog.Bool("kafka", cfg.Kafka.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func openWizardStore(cfg *config.Config, db *database.DB) (wizard.Store, error) {
	if cfg.Wizard.Store == "badger" {
		return wizard.OpenBadgerStore(cfg.Wizard.BadgerPath, cfg.Redis.WizardTTL)
	}
	return wizard.NewRedisStore(db.Redis, cfg.Redis.WizardTTL), nil
}

// setupNotifications returns the producer used by the API and, when Kafka is
// enabled, the consumer group that delivers the e-mails.
func setupNotifications(cfg *config.Config) (notifications.NotificationProducer, notifications.NotificationConsumer) {
	appLogger := logger.GetDefault()
	if !cfg.Kafka.Enabled {
		appLogger.Info("Kafka disabled, notifications are logged only")
		return notifications.NewLogProducer(), nil
	}

	producerCfg := notifications.DefaultKafkaProducerConfig()
	producerCfg.Brokers = cfg.Kafka.Brokers
	producerCfg.NotificationTopic = cfg.Kafka.NotificationTopic
	producer, err := notifications.NewKafkaNotificationProducer(producerCfg)
	if err != nil {
		appLogger.Error("Failed to create Kafka producer, falling back to log producer", slog.Any("error", err))
		return notifications.NewLogProducer(), nil
	}

	var mailer notifications.EmailService = notifications.NewLogEmailService()
	if cfg.Email.SMTPHost != "" {
		sender, err := notifications.NewSMTPEmailService(notifications.NewSMTPConfig(cfg.Email))
		if err != nil {
			appLogger.Warn("SMTP disabled", slog.Any("error", err))
		} else {
			mailer = sender
		}
	}

	consumerCfg := notifications.DefaultConsumerConfig()
	consumerCfg.Brokers = cfg.Kafka.Brokers
	consumerCfg.GroupID = cfg.Kafka.GroupID
	consumerCfg.Topics = []string{cfg.Kafka.NotificationTopic}
	consumer, err := notifications.NewKafkaNotificationConsumer(consumerCfg, mailer)
	if err != nil {
		appLogger.Error("Failed to create notification consumer", slog.Any("error", err))
		return producer, nil
	}
	return producer, consumer
}

func setupRouter(cfg *config.Config, db *database.DB, rateLimiter *ratelimit.RateLimiter, publisher *notifications.Publisher, wizards wizard.Store) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.Use(middleware.RequestID(), RequestLoggerMiddleware(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	routes.NewRouter(cfg, db, publisher, wizards).SetupRoutes(engine)
	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogHTTPRequest(c, time.Since(start))
	}
}
