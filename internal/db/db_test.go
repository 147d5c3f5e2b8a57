package db

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/portfolio/internal/config"
)

func openTestDB(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Path:     fmt.Sprintf("file:db-%d?mode=memory&cache=shared", time.Now().UnixNano()),
		LogLevel: "silent",
	}
}

func TestOpenMigratesModels(t *testing.T) {
	gdb, err := Open(openTestDB(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	for _, model := range Models() {
		if !gdb.Migrator().HasTable(model) {
			t.Fatalf("expected table for %T", model)
		}
	}
	if DB != gdb {
		t.Fatal("expected global DB to be set")
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "site.db")
	if _, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: path, LogLevel: "silent"}); err != nil {
		t.Fatalf("open: %v", err)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestEntityTables(t *testing.T) {
	gdb, err := Open(openTestDB(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	tables, err := EntityTables(gdb)
	if err != nil {
		t.Fatalf("entity tables: %v", err)
	}
	if len(tables) != len(Models()) {
		t.Fatalf("expected %d tables, got %d", len(Models()), len(tables))
	}

	want := map[string]bool{"experiences": false, "portfolio_items": false, "contact_info": false, "ref_barangays": false}
	for _, name := range tables {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("expected table %s in %v", name, tables)
		}
	}
}

func TestEnsureUserCreatesOnce(t *testing.T) {
	gdb, err := Open(openTestDB(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	created, err := EnsureUser(gdb, "Owner", " Owner@Example.com ", "secret")
	if err != nil || !created {
		t.Fatalf("expected user to be created, created=%v err=%v", created, err)
	}
	created, err = EnsureUser(gdb, "Owner", "owner@example.com", "other")
	if err != nil || created {
		t.Fatalf("expected existing user to be kept, created=%v err=%v", created, err)
	}

	var user User
	if err := gdb.Where("email = ?", "owner@example.com").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if !user.CheckPassword("secret") {
		t.Fatal("expected stored hash to match original password")
	}
	if user.CheckPassword("other") {
		t.Fatal("expected second password to be ignored")
	}
}

func TestEnsureUserSkipsBlankCredentials(t *testing.T) {
	created, err := EnsureUser(nil, "", "", "")
	if err != nil || created {
		t.Fatalf("expected no-op, created=%v err=%v", created, err)
	}
}
