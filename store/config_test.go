package store

import "testing"

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{URI: "mongodb://localhost:27017"}
	cfg.ApplyDefaults()
	if cfg.Database != "schoolManagement" {
		t.Errorf("expected default database schoolManagement, got %s", cfg.Database)
	}
	if cfg.ConnectTimeout != 10 {
		t.Errorf("expected default connect timeout 10, got %d", cfg.ConnectTimeout)
	}
}

func TestConfig_Validate_RequiresURI(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when uri is missing")
	}

	cfg.URI = "mongodb://localhost:27017"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
