package jwt

import (
	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set embedded in every issued token: the principal's
// identity, display name, email, and role, plus the registered time claims.
type Claims struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	gojwt.RegisteredClaims
}
