package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in configuration used when no file is given
func Default() *Config {
	return &Config{
		Server:   ServerConfig{ListenAddr: ":5000"},
		Database: DatabaseConfig{Path: "db.sqlite3"},
		Session: SessionConfig{
			MaxAge: 3600,
			Secure: true,
		},
		Security: SecurityConfig{Profile: ProfileHardened},
		RateLimit: RateLimitConfig{
			LoginPerMinute:    5,
			RegisterPerMinute: 3,
			NotesPerMinute:    30,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads configuration from a file and applies environment variable overrides
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	if listenAddr := os.Getenv("NOTES_LISTEN_ADDR"); listenAddr != "" {
		cfg.Server.ListenAddr = listenAddr
	}

	if dbPath := os.Getenv("NOTES_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if secret := os.Getenv("NOTES_SESSION_SECRET"); secret != "" {
		cfg.Session.Secret = secret
	}

	if profile := os.Getenv("NOTES_PROFILE"); profile != "" {
		cfg.Security.Profile = profile
	}

	// Validate again after env overrides
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration after env overrides: %w", err)
	}

	return cfg, nil
}
