// Package database opens the SQL and redis connections behind the document
// store and applies its schema.
package database

import (
	"errors"
	"fmt"
	"time"

	"stockqr/internal/config"
	"stockqr/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MigrationsSource is where RunMigrations looks for SQL files.
const MigrationsSource = "file://migrations"

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	driver string
	dsn    string
}

// NewManager connects to the SQL backend selected by cfg.StorageDriver.
func NewManager(cfg *config.Config) (*Manager, error) {
	var dialector gorm.Dialector
	var migrateURL string

	switch cfg.StorageDriver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case config.DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  PostgresDSN(cfg),
			PreferSimpleProtocol: true,
		})
		migrateURL = PostgresURL(cfg)
	default:
		return nil, fmt.Errorf("storage driver %q is not a SQL driver", cfg.StorageDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if cfg.StorageDriver == config.DriverSQLite {
		// sqlite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &Manager{db: db, driver: cfg.StorageDriver, dsn: migrateURL}, nil
}

// Migrate brings the schema up to date. Postgres runs the versioned SQL
// migrations; sqlite is auto-migrated from the given models.
func (m *Manager) Migrate(models ...interface{}) error {
	if m.driver == config.DriverPostgres {
		return m.RunMigrations()
	}
	if err := m.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}

// RunMigrations applies pending SQL migrations from the migrations/ directory.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	mig, err := migrate.New(MigrationsSource, m.dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
