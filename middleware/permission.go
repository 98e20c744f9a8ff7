package middleware

import "github.com/gofiber/fiber/v2"

// RequireRole gates a route on the role claim set by JWTMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("userRole").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Insufficient permissions", nil)
	}
}
