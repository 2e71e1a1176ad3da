// Package db opens the application database and runs schema migrations.
package db

import (
	"fmt"
	"log"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authadapters "users_backend/internal/feature/auth/adapters"
	servicesentity "users_backend/internal/feature/services/domain/entity"
	usersentity "users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/platform/config"
)

// Opener abstracts gorm.Open for testing the retry loop.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN assembles the Postgres DSN from database configuration.
func BuildDSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
	)
}

// ConnectWithRetry keeps trying to open the database until it succeeds
// or the timeout elapses, so the server can come up alongside the
// database in container environments.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB connects to Postgres and, when configured, migrates the schema.
func OpenDB(cfg *config.Config) *gorm.DB {
	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
	})
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Database.RunMigrations {
		if err := db.AutoMigrate(
			&usersentity.User{},
			&authadapters.TokenModel{},
			&servicesentity.Step{},
			&servicesentity.Service{},
			&servicesentity.ServiceStep{},
			&servicesentity.ServiceStepDependency{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
