package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
	if cfg.Timeout != 0 {
		t.Fatalf("Timeout = %v, want 0 (no timeout)", cfg.Timeout)
	}
	if len(cfg.Cookies) != 0 {
		t.Fatalf("Cookies = %v, want none", cfg.Cookies)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
api_base = "  https://birds.example.com  "
log_file = "  ~/logs/fledgling.log  "
log_level = " DEBUG "
timeout = "15s"

[cookies]
session = "abc123"
" theme " = "dark"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "https://birds.example.com" {
		t.Fatalf("APIBase = %q, want https://birds.example.com", cfg.APIBase)
	}
	if cfg.LogFile != filepath.Join(home, "logs", "fledgling.log") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" || cfg.Level() != hclog.Debug {
		t.Fatalf("LogLevel = %q (%v), want debug", cfg.LogLevel, cfg.Level())
	}
	if cfg.Timeout != 15*time.Second {
		t.Fatalf("Timeout = %v, want 15s", cfg.Timeout)
	}
	if cfg.Cookies["session"] != "abc123" || cfg.Cookies["theme"] != "dark" {
		t.Fatalf("Cookies = %v, want session and trimmed theme", cfg.Cookies)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
api_base = "   "
log_file = ""
log_level = ""
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := writeConfig(t, `api_base = [`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_ReportsEveryValidationProblem(t *testing.T) {
	path := writeConfig(t, `
api_base = "ftp://birds"
log_level = "loud"
timeout = "soon"

[cookies]
"bad name" = "x"
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want validation errors")
	}
	msg := err.Error()
	for _, want := range []string{"invalid config", "api_base", "log_level", "timeout", "bad name"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("Load error = %q, want it to mention %q", msg, want)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"host and port", func(c *Config) { c.APIBase = "10.0.0.5:9999" }, ""},
		{"empty base", func(c *Config) { c.APIBase = " " }, "api_base"},
		{"no host", func(c *Config) { c.APIBase = "http://" }, "missing host"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
		{"cookie separator", func(c *Config) { c.Cookies = map[string]string{"a;b": "x"} }, "cookies"},
		{"empty cookie name", func(c *Config) { c.Cookies = map[string]string{"": "x"} }, "cookies"},
		{"level off", func(c *Config) { c.LogLevel = "off" }, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate returned %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate = %v, want error mentioning %q", err, tc.wantErr)
			}
		})
	}
}

func TestLevel_DefaultsToInfo(t *testing.T) {
	if got := (Config{LogLevel: "nonsense"}).Level(); got != hclog.Info {
		t.Fatalf("Level = %v, want info", got)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
