package config

import (
	"fmt"

	"github.com/kbukum/schoolauth/auth/jwt"
	"github.com/kbukum/schoolauth/auth/password"
	"github.com/kbukum/schoolauth/logger"
	"github.com/kbukum/schoolauth/observability"
	"github.com/kbukum/schoolauth/server"
	"github.com/kbukum/schoolauth/store"
)

// AuthConfig groups the token and password hashing settings.
type AuthConfig struct {
	JWT      jwt.Config      `mapstructure:"jwt"`
	Password password.Config `mapstructure:"password"`
}

// Config is the full service configuration.
type Config struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`

	Logging logger.Config        `mapstructure:"log"`
	Server  server.Config        `mapstructure:"server"`
	Mongo   store.Config         `mapstructure:"mongo"`
	Auth    AuthConfig           `mapstructure:"auth"`
	Otel    observability.Config `mapstructure:"otel"`
}

// ApplyDefaults fills in zero values across all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "schoolauth"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Mongo.ApplyDefaults()
	c.Auth.JWT.ApplyDefaults()
	c.Auth.Password.ApplyDefaults()
	c.Otel.ApplyDefaults()
}

// Validate checks all sections and returns the first error found.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	valid := false
	for _, v := range validEnvs {
		if c.Environment == v {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("config: environment must be one of %v, got %q", validEnvs, c.Environment)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Mongo.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Auth.JWT.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Auth.Password.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Otel.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
