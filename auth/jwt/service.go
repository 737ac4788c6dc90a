// Package jwt provides issuing and verification of the HMAC-signed bearer
// tokens used to authenticate students and parents.
//
// Usage:
//
//	svc, err := jwt.NewService(&jwt.Config{Secret: secret})
//	token, err := svc.Generate(&jwt.Claims{UserID: id, Role: "student"})
//	claims, err := svc.Parse(token)
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Service provides JWT token generation and parsing.
type Service struct {
	cfg Config
}

// NewService creates a new JWT service.
func NewService(cfg *Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	return &Service{cfg: *cfg}, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.cfg.TTL
}

// Generate creates a signed token from the given claims. IssuedAt, ExpiresAt,
// and Issuer are filled in when unset; ExpiresAt defaults to now + TTL.
func (s *Service) Generate(claims *Claims) (string, error) {
	now := time.Now()
	if claims.IssuedAt == nil {
		claims.IssuedAt = gojwt.NewNumericDate(now)
	}
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = gojwt.NewNumericDate(now.Add(s.cfg.TTL))
	}
	if claims.Issuer == "" {
		claims.Issuer = s.cfg.Issuer
	}

	token := gojwt.NewWithClaims(s.cfg.signingMethod(), claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token string and returns its claims. It verifies the
// signature, expiry, and issuer when configured. Expired tokens return an
// error matching jwt.ErrTokenExpired via errors.Is.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		return nil, fmt.Errorf("jwt: parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("jwt: invalid token")
	}
	return claims, nil
}

// IsExpired reports whether a Parse error was caused by token expiry.
func IsExpired(err error) bool {
	return errors.Is(err, gojwt.ErrTokenExpired)
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Service) keyFunc(token *gojwt.Token) (interface{}, error) {
	expected := s.cfg.signingMethod()
	if token.Method.Alg() != expected.Alg() {
		return nil, fmt.Errorf("jwt: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

// parserOptions returns jwt.ParserOption based on config.
func (s *Service) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}
	return opts
}
