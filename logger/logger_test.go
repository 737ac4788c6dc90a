package logger

import (
	"testing"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected default level info, got %s", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected default format console, got %s", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamps enabled by default")
	}
}

func TestConfig_Validate_RejectsUnknownLevel(t *testing.T) {
	cfg := Config{Level: "verbose", Format: "json"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestConfig_Validate_RejectsUnknownFormat(t *testing.T) {
	cfg := Config{Level: "info", Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFields_PairsToMap(t *testing.T) {
	m := Fields("op", "login", "status", 200)
	if m["op"] != "login" {
		t.Errorf("expected op=login, got %v", m["op"])
	}
	if m["status"] != 200 {
		t.Errorf("expected status=200, got %v", m["status"])
	}
}

func TestFields_IgnoresDanglingKey(t *testing.T) {
	m := Fields("op", "login", "dangling")
	if _, ok := m["dangling"]; ok {
		t.Error("dangling key should be dropped")
	}
	if len(m) != 1 {
		t.Errorf("expected 1 entry, got %d", len(m))
	}
}

func TestWithComponent_DoesNotMutateParent(t *testing.T) {
	parent := NewDefault("test")
	child := parent.WithComponent("store")
	if parent == child {
		t.Error("expected a new logger instance")
	}
}
