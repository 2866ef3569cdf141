package config

// Config represents the complete configuration structure
type Config struct {
	Overseerr OverseerrConfig `mapstructure:"overseerr"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// OverseerrConfig holds Overseerr API connection details
type OverseerrConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// ServerConfig holds settings for the MCP HTTP endpoint
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
	Path   string `mapstructure:"path"`
	Token  string `mapstructure:"token"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
