package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase establishes a connection to the backing store. The driver is
// selected from configuration: postgres for deployments, sqlite for a local
// file-backed store.
func ConnectDatabase(cfg *Config) error {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DatabaseDriver {
	case "sqlite":
		path := cfg.DatabaseURL
		if path == "" {
			path = "service_connect.db"
			log.Println("DATABASE_URL not set, using local file:", path)
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	default:
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db
	log.Println("Database connection established successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB replaces the database instance (used by tests)
func SetDB(db *gorm.DB) {
	DB = db
}
