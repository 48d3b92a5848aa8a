// Package config loads agendesk settings from ~/.agendesk/config.yaml with
// AGENDESK_* environment overrides.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	APIURL   string `mapstructure:"API_URL"`
	Locale   string `mapstructure:"LOCALE"`
	Timezone string `mapstructure:"TIMEZONE"` // IANA name for hour labels; "" = local
	LogFile  string `mapstructure:"LOG_FILE"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration with precedence: env > config file > defaults.
// A missing config file is fine; defaults carry the client.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	v.SetEnvPrefix("AGENDESK")
	v.AutomaticEnv()

	v.SetDefault("API_URL", "https://api.agendesk.app")
	v.SetDefault("LOCALE", "en-US")
	v.SetDefault("TIMEZONE", "")
	v.SetDefault("LOG_FILE", filepath.Join(dir, "agendesk.log"))
	v.SetDefault("LOG_LEVEL", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return cfg, nil
}
