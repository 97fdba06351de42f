package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO for environment parsing; only variables that are
// actually set overlay the Config.
type envConfig struct {
	BaseURL          string        `env:"ERPCLI_BASE_URL"`
	SessionDBPath    string        `env:"ERPCLI_SESSION_DB"`
	HTTPTimeout      time.Duration `env:"ERPCLI_HTTP_TIMEOUT"`
	SplashMinDelay   time.Duration `env:"ERPCLI_SPLASH_MIN_DELAY"`
	ValidateInterval time.Duration `env:"ERPCLI_VALIDATE_INTERVAL"`
}

func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.BaseURL != "" {
		cfg.BaseURL = ec.BaseURL
	}
	if ec.SessionDBPath != "" {
		cfg.SessionDBPath = ec.SessionDBPath
	}
	if ec.HTTPTimeout != 0 {
		cfg.HTTPTimeout = ec.HTTPTimeout
	}
	if ec.SplashMinDelay != 0 {
		cfg.SplashMinDelay = ec.SplashMinDelay
	}
	if ec.ValidateInterval != 0 {
		cfg.ValidateInterval = ec.ValidateInterval
	}
}
