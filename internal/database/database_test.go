package database

import (
	"testing"

	"stockqr/internal/config"
)

func TestPostgresDSN(t *testing.T) {
	cfg := config.Default()
	cfg.DBHost = "db"
	cfg.DBPort = "5433"
	cfg.DBUser = "inv"
	cfg.DBPassword = "secret"
	cfg.DBName = "stock"
	cfg.DBSSLMode = "require"

	t.Run("keyword form", func(t *testing.T) {
		want := "host=db port=5433 user=inv password=secret dbname=stock sslmode=require"
		if got := PostgresDSN(cfg); got != want {
			t.Errorf("PostgresDSN() = %q, want %q", got, want)
		}
	})

	t.Run("url form", func(t *testing.T) {
		want := "postgres://inv:secret@db:5433/stock?sslmode=require"
		if got := PostgresURL(cfg); got != want {
			t.Errorf("PostgresURL() = %q, want %q", got, want)
		}
	})
}

func TestNewManager(t *testing.T) {
	t.Run("rejects non-SQL driver", func(t *testing.T) {
		cfg := config.Default()
		cfg.StorageDriver = config.DriverRedis
		if _, err := NewManager(cfg); err == nil {
			t.Fatal("expected error for redis driver")
		}
	})

	t.Run("sqlite auto-migrates", func(t *testing.T) {
		type probe struct {
			ID   uint `gorm:"primaryKey"`
			Name string
		}

		cfg := config.Default()
		cfg.StorageDriver = config.DriverSQLite
		cfg.SQLitePath = "file::memory:"

		m, err := NewManager(cfg)
		if err != nil {
			t.Fatalf("NewManager() error = %v", err)
		}
		defer m.Close()

		if err := m.Migrate(&probe{}); err != nil {
			t.Fatalf("Migrate() error = %v", err)
		}
		if !m.DB().Migrator().HasTable(&probe{}) {
			t.Error("expected probe table to exist")
		}
	})
}
