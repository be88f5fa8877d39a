package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.HTTPPort != DefaultHTTPPort {
		t.Errorf("HTTPPort = %d, want %d", cfg.HTTPPort, DefaultHTTPPort)
	}
	if cfg.DBPath != DefaultDBPath {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, DefaultDBPath)
	}
	if cfg.JWT.AccessTTL != DefaultAccessTTL {
		t.Errorf("AccessTTL = %v, want %v", cfg.JWT.AccessTTL, DefaultAccessTTL)
	}
	if cfg.JWT.RefreshTTL != DefaultRefreshTTL {
		t.Errorf("RefreshTTL = %v, want %v", cfg.JWT.RefreshTTL, DefaultRefreshTTL)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todoapp.toml")
	content := `
http_port = 8080
db_path = "/tmp/test.db"

[jwt]
secret = "file-secret"
access_ttl = "30m"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("TODOAPP_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.JWT.Secret != "file-secret" {
		t.Errorf("JWT.Secret = %q", cfg.JWT.Secret)
	}
	if cfg.JWT.AccessTTL != 30*time.Minute {
		t.Errorf("AccessTTL = %v, want 30m", cfg.JWT.AccessTTL)
	}
	// Not mentioned in the file, so the default stands.
	if cfg.NATSURL != DefaultNATSURL {
		t.Errorf("NATSURL = %q, want default", cfg.NATSURL)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todoapp.toml")
	if err := os.WriteFile(path, []byte(`http_port = 8080`), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("TODOAPP_CONFIG", path)
	t.Setenv("TODOAPP_HTTP_PORT", "9090")
	t.Setenv("TODOAPP_JWT_SECRET", "env-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPPort != 9090 {
		t.Errorf("HTTPPort = %d, want env override 9090", cfg.HTTPPort)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("JWT.Secret = %q, want env override", cfg.JWT.Secret)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	t.Setenv("TODOAPP_CONFIG", filepath.Join(t.TempDir(), "does-not-exist.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != DefaultHTTPPort {
		t.Errorf("HTTPPort = %d, want default", cfg.HTTPPort)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todoapp.toml")
	content := `
[jwt]
access_ttl = "soon"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("TODOAPP_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted an unparseable duration")
	}
}
