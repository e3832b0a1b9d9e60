package database

import (
	"context"
	"fmt"
	"time"

	"hospital-api/internal/config"
	"hospital-api/internal/models"

	"github.com/rs/zerolog"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open initializes the database connection for the configured driver.
// The handle is shared by every repository for the life of the process.
func Open(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DBDriver, cfg.DatabaseURI)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(&log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}

	if cfg.TracingEnabled {
		if err := db.Use(otelgorm.NewPlugin()); err != nil {
			return nil, fmt.Errorf("install tracing plugin: %w", err)
		}
	}
	return db, nil
}

func dialectorFor(driver, uri string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(uri), nil
	case "mysql":
		return mysql.Open(uri), nil
	case "sqlite":
		return sqlite.Open(uri), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

// Migrate creates or updates the doctor, patient and report tables.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Patient{}, "Reports", &models.PatientReport{}); err != nil {
		return fmt.Errorf("setup patient_reports: %w", err)
	}
	if err := db.AutoMigrate(&models.Doctor{}, &models.Patient{}, &models.Report{}, &models.PatientReport{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Ping checks that the underlying connection pool can reach the database.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
