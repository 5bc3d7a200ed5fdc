package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"provenance/internal/bootstrap/config"
)

func TestOpenSQLiteCreatesDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "dir", "provenance.sqlite")

	db, err := Open(context.Background(), config.DatabaseConfig{Driver: "sqlite3", DSN: dsn})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB() error = %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec("SELECT 1").Error; err != nil {
		t.Fatalf("ping: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(dsn)); err != nil {
		t.Fatalf("sqlite directory missing: %v", err)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle", DSN: "x"}); err == nil {
		t.Fatalf("Open() expected unsupported driver error")
	}
}

func TestNormalizePool(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizePool(0, 0, 0, 0)
	if open != 20 || idle != 5 || lifetime != 5*time.Minute || idleTime != 10*time.Minute {
		t.Fatalf("NormalizePool(defaults) = %d %d %s %s", open, idle, lifetime, idleTime)
	}

	open, idle, _, _ = NormalizePool(3, 10, time.Minute, time.Minute)
	if open != 3 || idle != 3 {
		t.Fatalf("NormalizePool(cap) = %d %d, want 3 3", open, idle)
	}
}

func TestNormalizeDriver(t *testing.T) {
	for in, want := range map[string]string{"": DriverSQLite, "SQLite3": DriverSQLite, "pg": DriverPostgres, "postgresql": DriverPostgres} {
		got, err := NormalizeDriver(in)
		if err != nil || got != want {
			t.Fatalf("NormalizeDriver(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
}
