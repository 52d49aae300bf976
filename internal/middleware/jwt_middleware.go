package middleware

import (
	"log"
	"strings"

	"rentall/internal/services"

	"github.com/gofiber/fiber/v2"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The second return is false when the header is absent or malformed.
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return "", false
	}
	return parts[1], true
}

// AuthRequired is a Fiber middleware that rejects requests without a valid
// bearer token for an existing user. The resolved user is stored in
// c.Locals("user") for subsequent handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authorized, no token",
			})
		}

		user, err := authService.UserFromToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authorized, token failed",
			})
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// OptionalAuth attaches the resolved user when a valid token is present and
// continues without identity otherwise. It never rejects a request.
func OptionalAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString, ok := bearerToken(c); ok {
			if user, err := authService.UserFromToken(tokenString); err == nil {
				c.Locals("user", user)
			}
		}
		return c.Next()
	}
}
