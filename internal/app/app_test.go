package app

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRun_PrintModeRendersBirds(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/birds" {
			http.NotFound(w, r)
			return
		}
		if c, err := r.Cookie("session"); err == nil {
			gotCookie = c.Value
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"Robin","color":"red"},{"species":"Jay"}]`))
	}))
	t.Cleanup(srv.Close)

	logFile := filepath.Join(home, "logs", "fledgling.log")
	cfgPath := writeConfig(t, home, fmt.Sprintf("api_base = %q\nlog_file = %q\n[cookies]\nsession = \"abc\"\n", srv.URL, logFile))

	var out bytes.Buffer
	err := Run(context.Background(), Options{ConfigPath: cfgPath, Print: true, Stdout: &out})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := "- Robin\n    COLOR: red\n- Jay\n"
	if got := out.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	if gotCookie != "abc" {
		t.Fatalf("session cookie = %q, want abc", gotCookie)
	}
	if _, err := os.Stat(logFile); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}

func TestRun_PrintModeReturnsLoadFailure(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("db down"))
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: filepath.Join(home, "missing.toml"),
		APIBase:    srv.URL,
		Print:      true,
		Debug:      true,
		Stdout:     &out,
	})
	if err == nil {
		t.Fatalf("Run returned nil error for 500 response")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "db down") {
		t.Fatalf("error = %q, want status and body", err)
	}
	if out.Len() != 0 {
		t.Fatalf("stdout = %q, want empty on failure", out.String())
	}
}

func TestRun_InvalidAPIOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	err := Run(context.Background(), Options{
		ConfigPath: filepath.Join(home, "missing.toml"),
		APIBase:    "ftp://birds.example",
		Print:      true,
	})
	if err == nil || !strings.Contains(err.Error(), "invalid -api") {
		t.Fatalf("Run error = %v, want invalid -api", err)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfgPath := writeConfig(t, home, "log_level = \"loud\"\ntimeout = \"soon\"\n")
	err := Run(context.Background(), Options{ConfigPath: cfgPath, Print: true})
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("Run error = %v, want load config error", err)
	}
}

func TestNewLogger_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "fledgling.log")
	logger, closeLog, err := newLogger(path, hclog.Info)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("hello", "k", "v")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "fledgling: hello") {
		t.Fatalf("log contents = %q", data)
	}
}
