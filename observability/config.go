package observability

import (
	"fmt"
	"time"
)

// Config holds the telemetry export settings. Telemetry is enabled only when
// an endpoint is configured.
type Config struct {
	// Endpoint is the OTLP HTTP endpoint host:port (e.g. "localhost:4318").
	// Empty disables tracing and metrics export.
	Endpoint string `mapstructure:"endpoint"`
	// Environment tags exported telemetry (dev, staging, prod).
	Environment string `mapstructure:"environment"`
	// Insecure allows cleartext connections to the collector.
	Insecure bool `mapstructure:"insecure"`
	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
	// Interval is the metric export interval in seconds.
	Interval int `mapstructure:"interval"`
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability: sample_rate must be between 0 and 1, got %g", c.SampleRate)
	}
	if c.Interval < 0 {
		return fmt.Errorf("observability: interval must be non-negative, got %d", c.Interval)
	}
	return nil
}

// Enabled reports whether telemetry export is configured.
func (c *Config) Enabled() bool {
	return c.Endpoint != ""
}

// TracerConfig derives the tracer settings for the given service.
func (c *Config) TracerConfig(serviceName, serviceVersion string) TracerConfig {
	return TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    c.Environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		SampleRate:     c.SampleRate,
	}
}

// MeterConfig derives the meter settings for the given service.
func (c *Config) MeterConfig(serviceName, serviceVersion string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    c.Environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		Interval:       time.Duration(c.Interval) * time.Second,
	}
}
