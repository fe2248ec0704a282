package main

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"aibot/internal/config"
	"aibot/internal/repository"
	"aibot/internal/repository/file"
	"aibot/internal/repository/postgres"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// openRepository returns the user repository for the configured driver and
// a function releasing its resources.
func openRepository(cfg *config.Config, migrations string, logger *zap.Logger) (repository.UserRepository, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database connection established")

		if err := runMigrations(db, migrations, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewUserRepo(db), func() { db.Close() }, nil

	default:
		repo, err := file.NewUserRepo(cfg.UsersFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open users file: %w", err)
		}
		logger.Info("Using file storage", zap.String("path", repo.Path()))
		return repo, func() {}, nil
	}
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations applies pending migrations from source
func runMigrations(db *sql.DB, source string, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}
	return nil
}
