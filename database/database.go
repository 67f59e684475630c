package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vrajamarii/internal/config"
)

// Open wraps a dialector in the gorm settings the service runs with. Tests
// pass a dialector over sqlmock.
func Open(dialector gorm.Dialector, log *zap.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	return gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
}

func ConnectDatabase(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := Open(postgres.Open(cfg.DSN()), log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(15 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("connected to database",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
	)
	return db, nil
}

// MonitorDBConnections warns when the pool runs close to its limit. It stops
// when ctx is done.
func MonitorDBConnections(ctx context.Context, db *gorm.DB, log *zap.Logger, interval time.Duration) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("connection monitor disabled", zap.Error(err))
		return
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats := sqlDB.Stats()
				if stats.MaxOpenConnections > 0 && stats.InUse*5 >= stats.MaxOpenConnections*4 {
					log.Warn("database connection pool nearly exhausted",
						zap.Int("in_use", stats.InUse),
						zap.Int("idle", stats.Idle),
						zap.Int("open", stats.OpenConnections),
					)
				}
			}
		}
	}()
}
