package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/schoolauth/auth/jwt"
	apperrors "github.com/kbukum/schoolauth/errors"
)

// ContextClaimsKey is the Gin context key the bearer guard stores validated
// claims under.
const ContextClaimsKey = "auth_claims"

// BearerAuth returns a Gin middleware that validates Bearer tokens with the
// given token service. A missing or malformed header is a 401; a token that
// fails verification (bad signature, expired, wrong algorithm) is a 403.
func BearerAuth(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, appErr := extractBearer(c.GetHeader("Authorization"))
		if appErr != nil {
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			var appErr *apperrors.AppError
			if jwt.IsExpired(err) {
				appErr = apperrors.TokenExpired()
			} else {
				appErr = apperrors.InvalidToken()
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext retrieves the claims the bearer guard stored, if any.
func ClaimsFromContext(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

func extractBearer(header string) (string, *apperrors.AppError) {
	if header == "" {
		return "", apperrors.Unauthorized("Authorization header required")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.Unauthorized("Invalid authorization header format")
	}
	return parts[1], nil
}
