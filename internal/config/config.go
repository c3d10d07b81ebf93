package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything Fledgling reads from its config file.
type Config struct {
	APIBase  string
	LogFile  string
	LogLevel string
	Timeout  time.Duration
	Cookies  map[string]string
}

const (
	defaultConfigPath = "~/.config/fledgling/config.toml"
	defaultLogFile    = "~/.local/state/fledgling/fledgling.log"
	defaultAPIBase    = "127.0.0.1:5555"
	defaultLogLevel   = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:  defaultAPIBase,
		LogFile:  mustExpand(defaultLogFile),
		LogLevel: defaultLogLevel,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase  string            `toml:"api_base"`
		LogFile  string            `toml:"log_file"`
		LogLevel string            `toml:"log_level"`
		Timeout  string            `toml:"timeout"`
		Cookies  map[string]string `toml:"cookies"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	var result *multierror.Error
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("timeout: %w", err))
		}
		cfg.Timeout = d
	}
	if len(raw.Cookies) > 0 {
		cfg.Cookies = make(map[string]string, len(raw.Cookies))
		for name, value := range raw.Cookies {
			cfg.Cookies[strings.TrimSpace(name)] = value
		}
	}

	if err := multierror.Append(result, cfg.Validate()).ErrorOrNil(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", resolved, err)
	}
	return cfg, nil
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if err := validateAPIBase(c.APIBase); err != nil {
		result = multierror.Append(result, err)
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	if c.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("timeout: must not be negative, got %s", c.Timeout))
	}

	names := make([]string, 0, len(c.Cookies))
	for name := range c.Cookies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !validCookieName(name) {
			result = multierror.Append(result, fmt.Errorf("cookies: invalid cookie name %q", name))
		}
	}

	return result.ErrorOrNil()
}

// Level returns the hclog level for LogLevel, defaulting to info.
func (c Config) Level() hclog.Level {
	if level := hclog.LevelFromString(c.LogLevel); level != hclog.NoLevel {
		return level
	}
	return hclog.Info
}

func validateAPIBase(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("api_base: must not be empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("api_base: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_base: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api_base: missing host in %q", value)
	}
	return nil
}

// validCookieName accepts RFC 6265 token characters.
func validCookieName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r <= ' ' || r >= 0x7f || strings.ContainsRune(`()<>@,;:\"/[]?={}`, r) {
			return false
		}
	}
	return true
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
