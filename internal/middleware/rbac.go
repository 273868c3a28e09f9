package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole allows the request through when the authenticated user's
// role is at least the given one (admin > supervisor > worker).
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !user.HasRole(requiredRole) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}
