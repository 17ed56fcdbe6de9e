package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RICETRACE_CONFIG", "")
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Ledger.BaseURL != "http://localhost:3001" {
		t.Errorf("unexpected ledger url %q", c.Ledger.BaseURL)
	}
	if c.HTTP.Addr != ":8080" || c.GRPC.Addr != ":50051" {
		t.Errorf("unexpected listen addrs %q %q", c.HTTP.Addr, c.GRPC.Addr)
	}
	if c.Redis.Enabled || c.MySQL.Enabled {
		t.Error("journal stores must be disabled by default")
	}
	if c.Journal.RecentLimit != 200 {
		t.Errorf("expected recent limit 200, got %d", c.Journal.RecentLimit)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("RICETRACE_LEDGER_BASE_URL", "http://ledger:3001")
	t.Setenv("RICETRACE_REDIS_ENABLED", "true")
	t.Setenv("RICETRACE_JOURNAL_RECENT_LIMIT", "25")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Ledger.BaseURL != "http://ledger:3001" {
		t.Errorf("unexpected ledger url %q", c.Ledger.BaseURL)
	}
	if !c.Redis.Enabled {
		t.Error("expected redis enabled from env")
	}
	if c.Journal.RecentLimit != 25 {
		t.Errorf("expected recent limit 25, got %d", c.Journal.RecentLimit)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "ricetrace.toml")
	content := `
[ledger]
base_url = "http://file-ledger:3001"

[mysql]
enabled = true
dsn = "u:p@tcp(db:3306)/ricetrace?parseTime=true"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("RICETRACE_CONFIG", path)

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Ledger.BaseURL != "http://file-ledger:3001" {
		t.Errorf("unexpected ledger url %q", c.Ledger.BaseURL)
	}
	if !c.MySQL.Enabled || c.MySQL.DSN != "u:p@tcp(db:3306)/ricetrace?parseTime=true" {
		t.Errorf("unexpected mysql config %+v", c.MySQL)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	t.Setenv("RICETRACE_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))

	if _, err := Load(); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
