package db

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dkovacs/ecoloop/internal/models"
)

// Connect opens the database selected by the DSN scheme: postgres:// for
// PostgreSQL, anything else is treated as a sqlite path or URI. Postgres
// connections are retried to tolerate slow container start.
func Connect(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("empty DATABASE_DSN")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	// TranslateError maps driver duplicate-key errors to
	// gorm.ErrDuplicatedKey so uniqueness races surface as typed errors
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel), TranslateError: true}

	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		var db *gorm.DB
		var err error
		for i := 0; i < 5; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				return db, nil
			}
			time.Sleep(2 * time.Second)
		}
		return nil, fmt.Errorf("connect postgres after retries: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	return db, nil
}

// Migrate applies GORM auto-migration for every domain model.
func Migrate(db *gorm.DB) error {
	toMigrate := []interface{}{
		&models.Product{},
		&models.Component{},
		&models.BOMEdge{},
		&models.RawMaterial{},
		&models.ComponentComposition{},
		&models.ProductInstance{},
		&models.LifecycleEvent{},
		&models.Supplier{},
		&models.Sourcing{},
	}
	for _, m := range toMigrate {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	for _, table := range []string{"products", "components", "lifecycle_events"} {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}
