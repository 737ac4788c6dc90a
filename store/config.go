package store

import "fmt"

// Config holds MongoDB connection configuration.
type Config struct {
	// URI is the MongoDB connection string (required).
	URI string `yaml:"uri" mapstructure:"uri"`

	// Database is the database name (default: "schoolManagement").
	Database string `yaml:"database" mapstructure:"database"`

	// ConnectTimeout is the connection timeout in seconds (default: 10).
	ConnectTimeout int `yaml:"connect_timeout" mapstructure:"connect_timeout"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Database == "" {
		c.Database = "schoolManagement"
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 10
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("mongo.uri is required")
	}
	if c.ConnectTimeout < 0 {
		return fmt.Errorf("mongo.connect_timeout must be non-negative (got: %d)", c.ConnectTimeout)
	}
	return nil
}
