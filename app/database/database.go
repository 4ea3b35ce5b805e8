package database

import (
	"fmt"
	"time"

	"blogcms/app/config"
	"blogcms/app/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the relational database named by cfg and creates the
// post table when it is missing.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseURL)
	case config.DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseURL,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("driver %q is not a relational database", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, Config())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DBDriver, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Config is the gorm configuration shared by every dialect.
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         NewLogger(logger.Warn, 200*time.Millisecond),
	}
}

// Migrate creates or updates the blog_post table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Post{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
