package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authController "learnhub/controllers/auth"
	"learnhub/middleware"
	authValidator "learnhub/validators/auth"
)

// SetupAuthRoutes sets up signup/login and the Google OAuth flow
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)

	authGroup.Get("/google", authController.GoogleLogin)
	authGroup.Get("/callback/google", authController.GoogleCallback)

	authGroup.Get("/me", middleware.JWTMiddleware, authController.Me)
	authGroup.Post("/logout", authController.Logout)
}
