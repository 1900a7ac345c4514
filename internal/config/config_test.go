package config

import (
	"strings"
	"testing"
)

// clearEnv blanks the variables this suite touches so tests run in
// isolation regardless of the host environment.
func clearEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT", "SERVER_REQUEST_TIMEOUT",
		"UPLOAD_MAX_FILE_SIZE", "UPLOAD_ALLOWED_EXTENSIONS",
		"SESSION_TTL", "SESSION_SWEEP_INTERVAL", "SESSION_MAX",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_REQUESTS_PER_MINUTE",
		"LOG_LEVEL", "LOG_FORMAT",
	}
	for _, v := range vars {
		t.Setenv(v, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Upload.MaxFileSize != 52428800 {
		t.Errorf("expected default max file size 50MB, got %d", cfg.Upload.MaxFileSize)
	}
	if cfg.Upload.AllowedExtensions != ".xlsx,.csv" {
		t.Errorf("expected default extensions .xlsx,.csv, got %q", cfg.Upload.AllowedExtensions)
	}
	if cfg.Session.MaxSessions != 100 {
		t.Errorf("expected default max sessions 100, got %d", cfg.Session.MaxSessions)
	}
	if !cfg.Rate.Enabled {
		t.Error("expected rate limiting enabled by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %q", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Session.TTL.Minutes() != 5 {
		t.Errorf("expected 5m session TTL, got %v", cfg.Session.TTL)
	}
	if cfg.Rate.Enabled {
		t.Error("expected rate limiting disabled")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "SERVER_PORT", "not-a-number"},
		{"bad duration", "SESSION_TTL", "soon"},
		{"bad bool", "RATE_LIMIT_ENABLED", "maybe"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestValidate_Failures(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"port out of range", "SERVER_PORT", "70000", "SERVER_PORT"},
		{"zero max sessions", "SESSION_MAX", "0", "SESSION_MAX"},
		{"negative file size", "UPLOAD_MAX_FILE_SIZE", "-1", "UPLOAD_MAX_FILE_SIZE"},
		{"blank extension whitelist", "UPLOAD_ALLOWED_EXTENSIONS", " ", "UPLOAD_ALLOWED_EXTENSIONS"},
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"bad log format", "LOG_FORMAT", "xml", "LOG_FORMAT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %s", err, tc.want)
			}
		})
	}
}

func TestAddr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 8081}
	if got := c.Addr(); got != "127.0.0.1:8081" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestUploadConfig_Allowed(t *testing.T) {
	cases := []struct {
		list string
		ext  string
		want bool
	}{
		{".xlsx,.csv", ".csv", true},
		{".xlsx,.csv", ".CSV", true},
		{".xlsx, .csv", ".csv", true},
		{".xlsx", ".csv", false},
		{".xlsx,.csv", ".txt", false},
		{".xlsx,.csv", "", false},
	}
	for _, tc := range cases {
		c := UploadConfig{AllowedExtensions: tc.list}
		if got := c.Allowed(tc.ext); got != tc.want {
			t.Errorf("Allowed(%q) with %q = %v, want %v", tc.ext, tc.list, got, tc.want)
		}
	}
}
