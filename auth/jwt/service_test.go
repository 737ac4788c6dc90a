package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

func newTestService(t *testing.T, cfg *Config) *Service {
	t.Helper()
	svc, err := NewService(cfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestService_GenerateParse_RoundTrip(t *testing.T) {
	svc := newTestService(t, &Config{Secret: "test-secret"})

	token, err := svc.Generate(&Claims{
		UserID: "65b2f0c4e1a1",
		Name:   "Alice",
		Email:  "alice@example.com",
		Role:   "student",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "65b2f0c4e1a1" {
		t.Errorf("expected id 65b2f0c4e1a1, got %s", claims.UserID)
	}
	if claims.Role != "student" {
		t.Errorf("expected role student, got %s", claims.Role)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", claims.Email)
	}
}

func TestService_Generate_SetsExpiry(t *testing.T) {
	svc := newTestService(t, &Config{Secret: "test-secret", TTL: time.Hour})

	token, err := svc.Generate(&Claims{UserID: "u1", Role: "parent"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("expected ExpiresAt to be set")
	}
	until := time.Until(claims.ExpiresAt.Time)
	if until <= 0 || until > time.Hour {
		t.Errorf("expected expiry within 1h, got %v", until)
	}
}

func TestService_Parse_Expired(t *testing.T) {
	svc := newTestService(t, &Config{Secret: "test-secret"})

	token, err := svc.Generate(&Claims{
		UserID: "u1",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	_, err = svc.Parse(token)
	if err == nil {
		t.Fatal("expected error for expired token")
	}
	if !IsExpired(err) {
		t.Errorf("expected IsExpired to report true, got error: %v", err)
	}
}

func TestService_Parse_WrongSecret(t *testing.T) {
	issuer := newTestService(t, &Config{Secret: "secret-a"})
	verifier := newTestService(t, &Config{Secret: "secret-b"})

	token, err := issuer.Generate(&Claims{UserID: "u1"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := verifier.Parse(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestService_Parse_Garbage(t *testing.T) {
	svc := newTestService(t, &Config{Secret: "test-secret"})
	if _, err := svc.Parse("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
	if IsExpired(nil) {
		t.Error("IsExpired(nil) should be false")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when secret is missing")
	}

	cfg = &Config{Secret: "s", Method: "RS256"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for asymmetric method")
	}

	cfg = &Config{Secret: "s"}
	cfg.ApplyDefaults()
	if cfg.Method != HS256 {
		t.Errorf("expected default method HS256, got %s", cfg.Method)
	}
	if cfg.TTL != 24*time.Hour {
		t.Errorf("expected default TTL 24h, got %v", cfg.TTL)
	}
}
