package config

import "time"

// Config holds runtime settings for the admin console.
type Config struct {
	APIBaseURL     string
	AdminPassword  string
	RequestTimeout time.Duration
	CountryCode    string
	StagingDir     string
	DatabasePath   string
	LogBackend     string
	LogLevel       string

	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000/api"
	c.RequestTimeout = 30 * time.Second
	c.CountryCode = "+250"
	c.StagingDir = "staging"
	c.DatabasePath = "admin.db"
	c.LogBackend = "slog"
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then the optional config file
// named by -c/-config, then command-line flags. Later sources win.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
