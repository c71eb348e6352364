package config

import (
	"fmt"

	"github.com/luizverissimo/desafio-ignite-nodejs-02/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func (d DBConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.Path
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// OpenDB connects to the configured database. The handle is long-lived and
// shared by every request through its connection pool.
func OpenDB(d DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch d.Driver {
	case DriverPostgres:
		dialector = postgres.Open(d.DSN())
	case DriverSQLite:
		dialector = sqlite.Open(d.DSN())
	default:
		return nil, fmt.Errorf("unknown database driver %q", d.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Meal{}); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}
	return nil
}
