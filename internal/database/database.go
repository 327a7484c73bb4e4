package database

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/config"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and sets up the connection pool
func Open(cfg config.DatabaseConfig, mode string) (*gorm.DB, error) {
	gormLogger := newGormLogger(os.Stdout, mode)

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == config.DriverSQLite {
		// one writer at a time; also keeps in-memory databases on a single connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// newGormLogger returns gorm's logger at Info level, or Warn in release mode.
// Record-not-found is an expected outcome of lookups and is never logged.
func newGormLogger(w io.Writer, mode string) logger.Interface {
	level := logger.Info
	if mode == "release" {
		level = logger.Warn
	}
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  mode != "release",
	})
}

// AutoMigrate creates or updates the four application tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Symptom{},
		&models.Prediction{},
		&models.MentalHealthNote{},
	)
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
