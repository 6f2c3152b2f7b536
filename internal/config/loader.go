package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config carries the settings shared by all of the command-line tools.
type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
	// Aliases defines the optional field-name view: external name to
	// internal physical name.
	Aliases map[string]string
}

// DefaultConfig returns the settings used when no config file or environment
// overrides are present.
func DefaultConfig() Config {
	return Config{
		URL:     "https://www.bv-brc.org/api",
		Timeout: 5 * time.Minute,
	}
}

// Load reads p3.yaml from configPath, if present, and applies environment
// overrides (P3_URL, P3_TOKEN, P3_TIMEOUT_SECONDS) on top of the defaults.
func Load(configPath string) (Config, error) {
	// Start with default
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("p3")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()     // allow environment overrides
	v.SetEnvPrefix("P3") // map env vars like P3_URL, P3_TOKEN

	v.BindEnv("url")
	v.BindEnv("token")
	v.BindEnv("timeout_seconds")

	// A missing config file is fine; defaults plus env vars apply.
	_ = v.ReadInConfig()

	// Override defaults if values exist
	if v.IsSet("url") {
		cfg.URL = v.GetString("url")
	}
	if v.IsSet("token") {
		cfg.Token = v.GetString("token")
	}
	if v.IsSet("timeout_seconds") {
		cfg.Timeout = time.Duration(v.GetInt("timeout_seconds")) * time.Second
	}
	if v.IsSet("aliases") {
		cfg.Aliases = v.GetStringMapString("aliases")
	}

	return cfg, nil
}
