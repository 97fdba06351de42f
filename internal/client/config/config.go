package config

import "time"

// Config holds runtime settings for the erpcli client.
//
// BaseURL is the compiled-in default backend; once a login succeeds the
// client is repointed at the selected account's own backend.
type Config struct {
	BaseURL          string
	SessionDBPath    string
	HTTPTimeout      time.Duration
	SplashMinDelay   time.Duration
	ValidateInterval time.Duration
	RequestsPerSec   float64
	RequestBurst     int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://apps.orbiterp.io"
	c.SessionDBPath = "session.db"
	c.HTTPTimeout = 12 * time.Second
	c.SplashMinDelay = 2 * time.Second
	c.ValidateInterval = 30 * time.Second
	c.RequestsPerSec = 5
	c.RequestBurst = 5
}

// LoadConfig constructs a Config by applying defaults, then overlaying
// environment variables, a JSON file (if given), and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
