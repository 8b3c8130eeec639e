package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/config"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

// DB bundles the relational store and the Redis instance backing caches,
// sessions, wizard states and seat locks.
type DB struct {
	PostgreSQL *gorm.DB
	Redis      *redis.Client
}

// Component health as reported by /health.
const (
	StatusUp   = "up"
	StatusDown = "down"
)

const pingTimeout = 5 * time.Second

// InitDB connects both stores, retrying while they come up, and migrates
// the schema.
func InitDB(cfg *config.Config) (*DB, error) {
	pg, err := openPostgres(cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if err := Migrate(pg); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     20,
		MinIdleConns: 5,
		DialTimeout:  pingTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	err = retry(cfg.Database.ConnectAttempts, "redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
	}
	logger.GetDefault().Info("Redis connected", "addr", cfg.Redis.Addr)

	return &DB{PostgreSQL: pg, Redis: rdb}, nil
}

func openPostgres(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Silent
	if cfg.IsDevelopment() {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(level),
		NowFunc: func() time.Time { return time.Now().UTC() },
		// prepared statements are cached per connection
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: true,
		// unique violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := retry(cfg.Database.ConnectAttempts, "postgres", sqlDB.PingContext); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.GetDefault().Info("PostgreSQL connected", "host", cfg.Database.Host, "database", cfg.Database.Name)
	return db, nil
}

// retry runs ping up to attempts times with a doubling pause between tries.
func retry(attempts int, name string, ping func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	wait := 500 * time.Millisecond
	var err error
	for i := 1; i <= attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		err = ping(ctx)
		cancel()
		if err == nil {
			return nil
		}
		if i < attempts {
			logger.GetDefault().Warn("Store not ready, retrying", "store", name, "attempt", i, "error", err)
			time.Sleep(wait)
			wait *= 2
		}
	}
	return err
}

// Close releases both connections.
func (db *DB) Close() error {
	var errs []error
	if db.PostgreSQL != nil {
		if sqlDB, err := db.PostgreSQL.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	if db.Redis != nil {
		errs = append(errs, db.Redis.Close())
	}
	return errors.Join(errs...)
}

// Health pings each store and reports its status by name.
func (db *DB) Health(ctx context.Context) map[string]string {
	status := map[string]string{"postgres": StatusDown, "redis": StatusDown}
	if db.PostgreSQL != nil {
		if sqlDB, err := db.PostgreSQL.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			status["postgres"] = StatusUp
		}
	}
	if db.Redis != nil && db.Redis.Ping(ctx).Err() == nil {
		status["redis"] = StatusUp
	}
	return status
}

// HealthCheck fails when any store is down.
func (db *DB) HealthCheck(ctx context.Context) error {
	var errs []error
	for name, st := range db.Health(ctx) {
		if st != StatusUp {
			errs = append(errs, fmt.Errorf("%s is %s", name, st))
		}
	}
	return errors.Join(errs...)
}
