package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix      = "FIRSTMEETING_"
	DefaultFile    = "firstmeeting.yaml"
	maxGooglePage  = 2500
	GooglePlatform = "google"
)

type Config struct {
	Sender     string `koanf:"sender"`
	Recipient  string `koanf:"recipient"`
	Platform   string `koanf:"platform"`
	CalendarID string `koanf:"calendar_id"`
	PageSize   int64  `koanf:"page_size"`
	SameDay    bool   `koanf:"same_day"`
	// Timezone decides what "today" is, the system zone when empty.
	Timezone string `koanf:"timezone"`

	TokenFile       string `koanf:"token_file"`
	CredentialsFile string `koanf:"credentials_file"`
	// HistoryDB enables the sent reminders history when set.
	HistoryDB string        `koanf:"history_db"`
	Timeout   time.Duration `koanf:"timeout"`
}

func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"sender":           "",
		"recipient":        "",
		"platform":         GooglePlatform,
		"calendar_id":      "primary",
		"page_size":        30,
		"same_day":         true,
		"timezone":         "",
		"token_file":       "token.json",
		"credentials_file": "credentials.json",
		"history_db":       "",
		"timeout":          "30s",
	}
}

// Load layers, from lowest to highest precedence: defaults, the YAML file at
// path (skipped when it does not exist), FIRSTMEETING_* environment variables
// and overrides. Relative file paths are resolved against baseDir.
func Load(path, baseDir string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.TokenFile = resolve(baseDir, cfg.TokenFile)
	cfg.CredentialsFile = resolve(baseDir, cfg.CredentialsFile)
	cfg.HistoryDB = resolve(baseDir, cfg.HistoryDB)
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := mail.ParseAddress(c.Sender); err != nil {
		errs = append(errs, fmt.Errorf("sender %q is not a valid address", c.Sender))
	}
	if _, err := mail.ParseAddress(c.Recipient); err != nil {
		errs = append(errs, fmt.Errorf("recipient %q is not a valid address", c.Recipient))
	}
	if c.CalendarID == "" {
		errs = append(errs, errors.New("calendar_id is required"))
	}
	if c.PageSize <= 0 || c.PageSize > maxGooglePage {
		errs = append(errs, fmt.Errorf("page_size must be between 1 and %d", maxGooglePage))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ExecDir is the directory of the running binary, where the token and
// credentials files live by default.
func ExecDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return filepath.Join(baseDir, path)
}
