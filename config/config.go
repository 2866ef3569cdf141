package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads the configuration. The environment always wins:
// OVERSEERR_URL and OVERSEERR_API_KEY override whatever a config file
// says, so an env-only deployment needs no file at all.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.BindEnv("overseerr.url", "OVERSEERR_URL")
	v.BindEnv("overseerr.api_key", "OVERSEERR_API_KEY")
	v.BindEnv("server.listen", "MCP_LISTEN")
	v.BindEnv("server.token", "MCP_TOKEN")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".overseerr-mcp"))
		}
		v.AddConfigPath("/etc/overseerr-mcp/")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		// No file found: the environment alone may be enough.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen", "0.0.0.0:8000")
	v.SetDefault("server.path", "/mcp")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Overseerr.URL == "" {
		return fmt.Errorf("overseerr.url is required (or set OVERSEERR_URL)")
	}

	if cfg.Overseerr.APIKey == "" || cfg.Overseerr.APIKey == "your-api-key-here" {
		return fmt.Errorf("overseerr.api_key must be set to a valid API key (or set OVERSEERR_API_KEY)")
	}

	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
