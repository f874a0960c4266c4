package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/khadamaty/khadamaty-api/models"
)

// RequireRole restricts a route to users holding one of the given roles.
// Must run after Protected().
func RequireRole(roles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal, _ := c.Locals("role").(string)
		if roleVal == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No role in token",
			})
		}

		for _, r := range roles {
			if models.UserRole(roleVal) == r {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to access this resource",
		})
	}
}
