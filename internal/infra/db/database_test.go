package db

import (
	"testing"

	"github.com/finance-tracker/wallet-api/config"
)

func TestNewConnection_SQLite(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{Driver: DriverSQLite, URL: ":memory:"})
	if err != nil {
		t.Fatalf("expected connection, got error: %v", err)
	}
	defer func() { _ = database.Close() }()

	if err := database.Migrate(); err != nil {
		t.Fatalf("expected migration to succeed, got: %v", err)
	}
	if !database.HealthCheck() {
		t.Error("expected healthy database")
	}
	if !database.DB().Migrator().HasTable("installments") {
		t.Error("expected installments table to exist")
	}
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	if _, err := NewConnection(&config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestDatabase_HealthCheckAfterClose(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{Driver: DriverSQLite, URL: ":memory:"})
	if err != nil {
		t.Fatalf("expected connection, got error: %v", err)
	}
	if err := database.Close(); err != nil {
		t.Fatalf("expected close to succeed, got: %v", err)
	}
	if database.HealthCheck() {
		t.Error("expected closed database to be unhealthy")
	}
}
