// Package middleware provides HTTP middleware for the fiber web framework.
package middleware

import (
	"tally/internal/models"
	"tally/internal/services/auth"
	"tally/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// APIKeyHeader carries the caller credential.
const APIKeyHeader = "X-API-Key"

const apiKeyLocal = "apiKey"

// AuthMiddleware validates the X-API-Key header and stores the matched
// key in the request context.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	rawKey := c.Get(APIKeyHeader)
	if rawKey == "" {
		return response.Unauthorized(c, "API key is required")
	}

	key, err := m.authService.Authenticate(rawKey)
	if err != nil {
		if err == auth.ErrInvalidAPIKey {
			return response.Unauthorized(c, "Invalid API key")
		}
		return response.InternalError(c, "Authentication failed")
	}

	c.Locals(apiKeyLocal, key)
	return c.Next()
}

// RequireRole returns a middleware that passes only callers whose key
// grants one of the given roles. Admin keys pass every check.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := KeyFromContext(c)
		if key == nil {
			return response.Unauthorized(c, "Authentication required")
		}
		if !key.HasRole(roles...) {
			return response.Forbidden(c, "Insufficient permissions")
		}
		return c.Next()
	}
}

// KeyFromContext returns the authenticated API key, or nil.
func KeyFromContext(c *fiber.Ctx) *models.APIKey {
	key, ok := c.Locals(apiKeyLocal).(*models.APIKey)
	if !ok {
		return nil
	}
	return key
}
