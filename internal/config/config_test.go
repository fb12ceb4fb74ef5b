package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", "/opt/firstmeeting", nil)
	require.NoError(t, err)

	assert.Equal(t, GooglePlatform, cfg.Platform)
	assert.Equal(t, "primary", cfg.CalendarID)
	assert.Equal(t, int64(30), cfg.PageSize)
	assert.True(t, cfg.SameDay)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "/opt/firstmeeting/token.json", cfg.TokenFile)
	assert.Equal(t, "/opt/firstmeeting/credentials.json", cfg.CredentialsFile)
	assert.Empty(t, cfg.HistoryDB)
}

func TestDefaultsRequireAddresses(t *testing.T) {
	t.Setenv(EnvPrefix+"SENDER", "")
	t.Setenv(EnvPrefix+"RECIPIENT", "")

	cfg, err := Load("", "", nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.Sender)
	assert.Empty(t, cfg.Recipient)
	err = cfg.Validate()
	assert.ErrorContains(t, err, "sender")
	assert.ErrorContains(t, err, "recipient")
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(`
sender: me@example.com
recipient: file@example.com
page_size: 10
same_day: false
timezone: UTC
token_file: /var/lib/firstmeeting/token.json
history_db: history.db
timeout: 5s
`), 0o600))

	t.Setenv("FIRSTMEETING_RECIPIENT", "env@example.com")
	t.Setenv("FIRSTMEETING_PAGE_SIZE", "20")

	cfg, err := Load(path, dir, map[string]interface{}{"calendar_id": "work@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "me@example.com", cfg.Sender)
	assert.Equal(t, "env@example.com", cfg.Recipient)
	assert.Equal(t, "work@example.com", cfg.CalendarID)
	assert.Equal(t, int64(20), cfg.PageSize)
	assert.False(t, cfg.SameDay)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "/var/lib/firstmeeting/token.json", cfg.TokenFile)
	assert.Equal(t, filepath.Join(dir, "history.db"), cfg.HistoryDB)

	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "token.json", cfg.TokenFile)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("sender: [unterminated"), 0o600))

	_, err := Load(path, "", nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Sender:     "me@example.com",
			Recipient:  "you@example.com",
			CalendarID: "primary",
			PageSize:   30,
			Timeout:    time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"display name", func(c *Config) { c.Sender = "Andy <andy@example.com>" }, ""},
		{"missing sender", func(c *Config) { c.Sender = "" }, "sender"},
		{"bad recipient", func(c *Config) { c.Recipient = "not an address" }, "recipient"},
		{"empty calendar", func(c *Config) { c.CalendarID = "" }, "calendar_id"},
		{"page too large", func(c *Config) { c.PageSize = 5000 }, "page_size"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout"},
		{"unknown timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "timezone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := &Config{}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
