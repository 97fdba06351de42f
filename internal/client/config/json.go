package config

import (
	"encoding/json"
	"os"

	"github.com/dmravi/erpcli/internal/flagx"
	"github.com/dmravi/erpcli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be written either as strings like "3s" or
// as integer nanoseconds. Parsed values are copied into the runtime Config.
type JsonConfig struct {
	BaseURL          string         `json:"base_url"`
	SessionDBPath    string         `json:"session_db_path"`
	HTTPTimeout      timex.Duration `json:"http_timeout"`
	SplashMinDelay   timex.Duration `json:"splash_min_delay"`
	ValidateInterval timex.Duration `json:"validate_interval"`
}

// parseJson overlays Config with values from the JSON file named by the
// -c/-config flags. When no file is given the function is a no-op. Read or
// unmarshal errors panic; config problems should stop startup loudly.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
	if jc.SplashMinDelay.Duration != 0 {
		cfg.SplashMinDelay = jc.SplashMinDelay.Duration
	}
	if jc.ValidateInterval.Duration != 0 {
		cfg.ValidateInterval = jc.ValidateInterval.Duration
	}
}
