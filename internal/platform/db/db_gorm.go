package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	forumentity "forum_backend/internal/feature/forum/domain/entity"
	newsentity "forum_backend/internal/feature/news/domain/entity"
	notifentity "forum_backend/internal/feature/notifications/domain/entity"
	usersentity "forum_backend/internal/feature/users/domain/entity"
)

// Config holds database connection settings.
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
}

// LoadConfigFromEnv reads database settings from environment variables.
// Host and port fall back to localhost:5432, sslmode to disable.
func LoadConfigFromEnv() Config {
	cfg := Config{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	return cfg
}

// BuildDSN assembles a PostgreSQL DSN from the config.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Opener opens a gorm connection for a DSN. Extracted for testing.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry keeps trying to connect until the timeout elapses.
// The database container may come up after the application in compose setups.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB connects to PostgreSQL using environment configuration and, when
// RUN_MIGRATIONS=true, migrates the schema. Fatal on failure: the server
// cannot serve anything without its database.
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()

	open := func(dsn string) (*gorm.DB, error) {
		return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, open)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := Migrate(db); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&usersentity.Role{},
		&usersentity.User{},
		&forumentity.Tag{},
		&forumentity.Question{},
		&forumentity.Comment{},
		&newsentity.Article{},
		&notifentity.Notification{},
	)
}
