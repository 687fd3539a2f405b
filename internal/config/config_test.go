package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Backup.Schedule != "30 2 * * *" {
		t.Errorf("Backup.Schedule = %q, want %q", cfg.Backup.Schedule, "30 2 * * *")
	}
	if cfg.Notify.From != "no-reply@example.com" {
		t.Errorf("Notify.From = %q", cfg.Notify.From)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %q/%q, want info/text", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ALLOWED_ORIGIN", "https://zugloiref.hu")
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Intake.AllowedOrigin != "https://zugloiref.hu" {
		t.Errorf("Intake.AllowedOrigin = %q", cfg.Intake.AllowedOrigin)
	}
	if cfg.Intake.AdminToken != "secret" {
		t.Errorf("Intake.AdminToken = %q", cfg.Intake.AdminToken)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/alttest")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.URL != "postgres://localhost/alttest" {
		t.Errorf("Database.URL = %q, want %q", cfg.Database.URL, "postgres://localhost/alttest")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is missing")
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("SERVER_PORT", "70000")

	if _, err := Load(); err == nil {
		t.Error("expected error for out-of-range port")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Error("expected error for unparseable duration")
	}
}

func TestBackupConfig_Enabled(t *testing.T) {
	c := BackupConfig{
		OSSEndpoint:  "oss-eu-central-1.aliyuncs.com",
		OSSAccessKey: "k",
		OSSSecretKey: "s",
		OSSBucket:    "b",
	}
	if !c.Enabled() {
		t.Error("fully configured backup should be enabled")
	}

	c.OSSBucket = ""
	if c.Enabled() {
		t.Error("backup without a bucket must be disabled")
	}
}

func TestNotifyConfig_Enabled(t *testing.T) {
	c := NotifyConfig{ResendAPIKey: "re_x", To: "lelkesz@zugloiref.hu"}
	if !c.Enabled() {
		t.Error("notify with key and recipient should be enabled")
	}
	if (&NotifyConfig{ResendAPIKey: "re_x"}).Enabled() {
		t.Error("notify without recipient must be disabled")
	}
}

func TestServerConfig_Addr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 8081}
	if got := c.Addr(); got != "127.0.0.1:8081" {
		t.Errorf("Addr() = %q", got)
	}
	c.Host = ""
	if got := c.Addr(); got != ":8081" {
		t.Errorf("Addr() = %q", got)
	}
}
