package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, 8085, config.Server.Port)
	assert.Equal(t, "https://stock.indianapi.in", config.MarketData.BaseURL)
	assert.Equal(t, "X-API-Key", config.MarketData.AuthHeader)
	assert.NotEmpty(t, config.Markets.Tickers)
	assert.Contains(t, config.Markets.Tickers, "AAPL")
	assert.Contains(t, config.Markets.Tickers, "TCS.NS")

	ttl, err := config.CacheTTL()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, ttl)

	timeout, err := config.GatewayTimeout()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, timeout)
}

func TestLoadFromFiles_Override(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marketbrief.toml")
	data := `
[server]
port = 9090

[markets]
tickers = ["AAPL", "NSE:TCS"]

[cache]
ttl = "90s"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, []string{"AAPL", "NSE:TCS"}, config.Markets.Tickers)

	ttl, err := config.CacheTTL()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, ttl)

	// Unset sections keep defaults
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 10, config.MarketData.RateLimit)
}

func TestLoadFromFiles_EnvOverrides(t *testing.T) {
	t.Setenv("MARKETBRIEF_SERVER_PORT", "7001")
	t.Setenv("MARKETBRIEF_API_KEY", " secret-key ")
	t.Setenv("GMAIL_USER", "reports@example.com")
	t.Setenv("GMAIL_APP_PASSWORD", "abcd efgh ijkl mnop")
	t.Setenv("RECIPIENT_EMAIL", "me@example.com")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 7001, config.Server.Port)
	assert.Equal(t, "secret-key", config.MarketData.APIKey)
	assert.Equal(t, "reports@example.com", config.SMTP.Username)
	assert.Equal(t, "reports@example.com", config.SMTP.From)
	assert.Equal(t, "abcdefghijklmnop", config.SMTP.Password)
	assert.Equal(t, "me@example.com", config.Report.Recipient)
}

func TestValidate_BadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"empty tickers", func(c *Config) { c.Markets.Tickers = nil }},
		{"bad base url", func(c *Config) { c.MarketData.BaseURL = "not a url" }},
		{"bad recipient", func(c *Config) { c.Report.Recipient = "not-an-email" }},
		{"bad ttl", func(c *Config) { c.Cache.TTL = "soon" }},
		{"bad timeout", func(c *Config) { c.MarketData.Timeout = "fast" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewDefaultConfig()
			tt.mutate(config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 9999, "0.0.0.0")
	assert.Equal(t, 9999, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)

	// Zero values leave config untouched
	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 9999, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
}

func TestIsProduction(t *testing.T) {
	config := NewDefaultConfig()
	assert.False(t, config.IsProduction())

	config.Environment = "Production"
	assert.True(t, config.IsProduction())
}
