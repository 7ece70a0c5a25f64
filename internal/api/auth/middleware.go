package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ContextKey represents keys for context values
type ContextKey string

const (
	// SubjectContextKey holds the token subject of an authenticated request
	SubjectContextKey ContextKey = "subject"
)

// RequireBearer creates middleware that rejects requests without a valid
// bearer token signed with secret.
func RequireBearer(secret, issuer string) echo.MiddlewareFunc {
	tokenService := NewTokenService(secret, issuer)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Extract token from Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header required")
			}

			// Check Bearer token format
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := tokenService.ValidateToken(tokenParts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(string(SubjectContextKey), claims.Subject)
			return next(c)
		}
	}
}
