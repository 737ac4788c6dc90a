package server

import (
	"fmt"
	"time"

	"github.com/kbukum/schoolauth/server/middleware"
)

// Config holds the HTTP server settings.
type Config struct {
	// Host is the bind address. Empty means all interfaces.
	Host string `mapstructure:"host"`
	// Port is the TCP port to listen on.
	Port int `mapstructure:"port"`
	// ReadTimeout bounds reading the full request, in seconds.
	ReadTimeout int `mapstructure:"read_timeout"`
	// WriteTimeout bounds writing the full response, in seconds.
	WriteTimeout int `mapstructure:"write_timeout"`
	// IdleTimeout bounds keep-alive idle connections, in seconds.
	IdleTimeout int `mapstructure:"idle_timeout"`
	// MaxBodySize caps request bodies, e.g. "1MB". Empty disables the cap.
	MaxBodySize string `mapstructure:"max_body_size"`
	// CORS configures cross-origin access for browser clients.
	CORS middleware.CORSConfig `mapstructure:"cors"`
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 5100
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("server: port must be between 1 and 65535, got %d", c.Port)
	}
	return nil
}

// Addr returns the host:port bind address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) readTimeout() time.Duration  { return time.Duration(c.ReadTimeout) * time.Second }
func (c *Config) writeTimeout() time.Duration { return time.Duration(c.WriteTimeout) * time.Second }
func (c *Config) idleTimeout() time.Duration  { return time.Duration(c.IdleTimeout) * time.Second }
