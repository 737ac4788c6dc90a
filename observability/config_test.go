package observability

import (
	"testing"
	"time"
)

func TestConfig_DisabledWithoutEndpoint(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Enabled() {
		t.Error("expected telemetry to be disabled without an endpoint")
	}

	cfg.Endpoint = "localhost:4318"
	if !cfg.Enabled() {
		t.Error("expected telemetry to be enabled with an endpoint")
	}
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected default sample rate 1.0, got %g", cfg.SampleRate)
	}
	if cfg.Interval != 15 {
		t.Errorf("expected default interval 15, got %d", cfg.Interval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfig_ValidateSampleRate(t *testing.T) {
	cfg := Config{SampleRate: 1.5, Interval: 15, Environment: "development"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sample rate above 1")
	}
}

func TestConfig_DerivedConfigs(t *testing.T) {
	cfg := Config{Endpoint: "collector:4318", Environment: "staging", SampleRate: 0.5, Interval: 30}

	tc := cfg.TracerConfig("schoolauth", "1.2.3")
	if tc.Endpoint != "collector:4318" || tc.SampleRate != 0.5 || tc.ServiceVersion != "1.2.3" {
		t.Errorf("unexpected tracer config: %+v", tc)
	}

	mc := cfg.MeterConfig("schoolauth", "1.2.3")
	if mc.Interval != 30*time.Second {
		t.Errorf("expected 30s interval, got %s", mc.Interval)
	}
}
