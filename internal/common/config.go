package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	Logging     LoggingConfig    `toml:"logging"`
	Markets     MarketsConfig    `toml:"markets"`
	MarketData  MarketDataConfig `toml:"market_data"`
	Cache       CacheConfig      `toml:"cache"`
	Report      ReportConfig     `toml:"report"`
	SMTP        SMTPConfig       `toml:"smtp"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// MarketsConfig is the ticker registry input. The registry is loaded
// configuration, not code, so markets can change without a rebuild.
type MarketsConfig struct {
	Default string   `toml:"default"` // default exchange for bare codes
	Tickers []string `toml:"tickers" validate:"min=1"`
}

// MarketDataConfig configures the upstream market-data gateway.
type MarketDataConfig struct {
	BaseURL      string `toml:"base_url" validate:"required,url"`
	APIKey       string `toml:"api_key"`
	AuthHeader   string `toml:"auth_header"` // header carrying the API key
	Timeout      string `toml:"timeout"`     // HTTP timeout as duration string
	RateLimit    int    `toml:"rate_limit"`  // requests per second
	NewsLimit    int    `toml:"news_limit"`  // max news items per ticker
	LookbackDays int    `toml:"lookback_days"`
}

// CacheConfig configures the result cache.
type CacheConfig struct {
	TTL string `toml:"ttl"` // entry time-to-live as duration string
}

// ReportConfig configures the daily CSV report.
type ReportConfig struct {
	OutputDir string `toml:"output_dir"`
	Schedule  string `toml:"schedule"` // cron expression
	Recipient string `toml:"recipient" validate:"omitempty,email"`
	Subject   string `toml:"subject"`
}

// SMTPConfig holds mail transport credentials. Populated from env
// (GMAIL_USER, GMAIL_APP_PASSWORD) in the usual deployment.
type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	FromName string `toml:"from_name"`
	UseTLS   bool   `toml:"use_tls"`
}

// defaultUSTickers covers the major US sectors by market cap.
var defaultUSTickers = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "NFLX", "INTC", "AMD",
	"UNH", "LLY", "PFE", "JNJ", "MRK",
	"JPM", "BAC", "GS", "V", "MA",
	"XOM", "CVX", "COP",
	"WMT", "COST", "PG", "KO",
}

// defaultIndianTickers covers the major NSE sectors (provider suffix form).
var defaultIndianTickers = []string{
	"TCS.NS", "INFY.NS", "HCLTECH.NS", "WIPRO.NS", "TECHM.NS",
	"HDFCBANK.NS", "ICICIBANK.NS", "SBIN.NS", "AXISBANK.NS", "KOTAKBANK.NS",
	"SUNPHARMA.NS", "DRREDDY.NS", "CIPLA.NS",
	"HINDUNILVR.NS", "ITC.NS", "NESTLEIND.NS",
	"RELIANCE.NS", "ONGC.NS",
	"MARUTI.NS", "TATAMOTORS.NS",
	"TATASTEEL.NS", "JSWSTEEL.NS",
	"BHARTIARTL.NS", "LT.NS", "BAJFINANCE.NS",
}

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	tickers := make([]string, 0, len(defaultUSTickers)+len(defaultIndianTickers))
	tickers = append(tickers, defaultUSTickers...)
	tickers = append(tickers, defaultIndianTickers...)

	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Markets: MarketsConfig{
			Default: "NASDAQ",
			Tickers: tickers,
		},
		MarketData: MarketDataConfig{
			BaseURL:      "https://stock.indianapi.in",
			AuthHeader:   "X-API-Key",
			Timeout:      "15s",
			RateLimit:    10,
			NewsLimit:    10,
			LookbackDays: 300,
		},
		Cache: CacheConfig{
			TTL: "5m",
		},
		Report: ReportConfig{
			OutputDir: "./reports",
			Schedule:  "0 7 * * *", // daily at 07:00
			Subject:   "Daily Investment Recommendations",
		},
		SMTP: SMTPConfig{
			Host:     "smtp.gmail.com",
			Port:     465,
			FromName: "MarketBrief",
			UseTLS:   true,
		},
	}
}

// LoadFromFile loads configuration from a single optional file.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration with priority: defaults -> file(s) ->
// environment variables. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("MARKETBRIEF_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("MARKETBRIEF_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("MARKETBRIEF_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if level := os.Getenv("MARKETBRIEF_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// Gateway credentials
	if key := os.Getenv("MARKETBRIEF_API_KEY"); key != "" {
		config.MarketData.APIKey = strings.TrimSpace(key)
	}
	if url := os.Getenv("MARKETBRIEF_API_URL"); url != "" {
		config.MarketData.BaseURL = strings.TrimRight(strings.TrimSpace(url), "/")
	}

	// Mail credentials, consumed only by the report path
	if user := os.Getenv("GMAIL_USER"); user != "" {
		config.SMTP.Username = strings.TrimSpace(user)
		if config.SMTP.From == "" {
			config.SMTP.From = strings.TrimSpace(user)
		}
	}
	if pass := os.Getenv("GMAIL_APP_PASSWORD"); pass != "" {
		// Gmail app passwords are often copied with spaces
		config.SMTP.Password = strings.ReplaceAll(pass, " ", "")
	}
	if rcpt := os.Getenv("RECIPIENT_EMAIL"); rcpt != "" {
		config.Report.Recipient = strings.TrimSpace(rcpt)
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks structural constraints on the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	if _, err := c.GatewayTimeout(); err != nil {
		return err
	}
	return nil
}

// CacheTTL returns the parsed cache entry time-to-live.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 5 * time.Minute, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache ttl %q: %w", c.Cache.TTL, err)
	}
	return d, nil
}

// GatewayTimeout returns the parsed market-data HTTP timeout.
func (c *Config) GatewayTimeout() (time.Duration, error) {
	if c.MarketData.Timeout == "" {
		return 15 * time.Second, nil
	}
	d, err := time.ParseDuration(c.MarketData.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid market data timeout %q: %w", c.MarketData.Timeout, err)
	}
	return d, nil
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
