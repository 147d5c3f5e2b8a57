package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestUserCreateAndSeedDemo(t *testing.T) {
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LOG_LEVEL", "error")

	out, err := runCLI(t, "user", "create", "--name", "Owner", "--email", "Owner@Example.com", "--password", "password123")
	if err != nil {
		t.Fatalf("user create failed: %v (%s)", err, out)
	}
	if !strings.Contains(out, "owner@example.com") {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := runCLI(t, "user", "create", "--name", "Owner", "--email", "owner@example.com", "--password", "password123"); err == nil {
		t.Fatal("expected duplicate email to fail")
	}
	if _, err := runCLI(t, "user", "create", "--name", "Short", "--email", "short@example.com", "--password", "short"); err == nil {
		t.Fatal("expected short password to fail")
	}

	out, err = runCLI(t, "seed", "demo")
	if err != nil {
		t.Fatalf("seed demo failed: %v", err)
	}
	if !strings.Contains(out, "profile=true") {
		t.Fatalf("expected demo profile for first account, got %q", out)
	}

	out, err = runCLI(t, "seed", "demo")
	if err != nil {
		t.Fatalf("second seed demo failed: %v", err)
	}
	if !strings.Contains(out, "profile=false experiences=0") {
		t.Fatalf("expected populated collections to be skipped, got %q", out)
	}
}

func TestSeedDemoUnknownOwner(t *testing.T) {
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LOG_LEVEL", "error")

	if _, err := runCLI(t, "seed", "demo", "--owner", "nobody@example.com"); err == nil {
		t.Fatal("expected unknown owner to fail")
	}
}

func TestSeedLocationsIsIdempotent(t *testing.T) {
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LOG_LEVEL", "error")

	out, err := runCLI(t, "seed", "locations", "--seed", "7")
	if err != nil {
		t.Fatalf("seed locations failed: %v", err)
	}
	if !strings.Contains(out, "countries=") {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = runCLI(t, "seed", "locations", "--seed", "7")
	if err != nil {
		t.Fatalf("second seed locations failed: %v", err)
	}
	if !strings.Contains(out, "跳过") {
		t.Fatalf("expected skip message, got %q", out)
	}
}
