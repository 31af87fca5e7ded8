package config

import (
	"fmt"
)

// Security profile names. The two deployment variants differ only in
// password length floor and whether two-factor auth is required.
const (
	ProfileHardened = "hardened"
	ProfileLegacy   = "legacy"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Session   SessionConfig   `yaml:"session"`
	Security  SecurityConfig  `yaml:"security"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig contains server configuration
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SessionConfig contains session cookie configuration
type SessionConfig struct {
	Secret string `yaml:"secret"`
	MaxAge int    `yaml:"max_age"` // seconds
	Secure bool   `yaml:"secure"`
}

// SecurityConfig selects the deployment security profile
type SecurityConfig struct {
	Profile string `yaml:"profile"`
}

// RateLimitConfig contains per-endpoint request ceilings
type RateLimitConfig struct {
	LoginPerMinute    int `yaml:"login_per_minute"`
	RegisterPerMinute int `yaml:"register_per_minute"`
	NotesPerMinute    int `yaml:"notes_per_minute"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SecurityProfile is the resolved set of security parameters
type SecurityProfile struct {
	MinPasswordLength int
	RequireOTP        bool
}

// Profile resolves the configured profile name
func (c *Config) Profile() SecurityProfile {
	if c.Security.Profile == ProfileLegacy {
		return SecurityProfile{MinPasswordLength: 8, RequireOTP: false}
	}
	return SecurityProfile{MinPasswordLength: 13, RequireOTP: true}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}

	// Database validation
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	// Session validation
	if c.Session.Secret == "" {
		return fmt.Errorf("session.secret is required")
	}
	if c.Session.MaxAge <= 0 {
		return fmt.Errorf("session.max_age must be positive")
	}

	// Security validation
	if c.Security.Profile != ProfileHardened && c.Security.Profile != ProfileLegacy {
		return fmt.Errorf("security.profile must be '%s' or '%s'", ProfileHardened, ProfileLegacy)
	}

	// Rate limit validation
	if c.RateLimit.LoginPerMinute <= 0 || c.RateLimit.RegisterPerMinute <= 0 || c.RateLimit.NotesPerMinute <= 0 {
		return fmt.Errorf("rate_limit ceilings must be positive")
	}

	// Logging validation
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	return nil
}
