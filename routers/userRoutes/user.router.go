package userRoutes

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/controllers/userControllers"
	"learnhub/middleware"
	"learnhub/models"
)

// SetupUserRoutes sets up the admin-only account management routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/users", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	userGroup.Get("/", userControllers.GetAllUsers)
	userGroup.Get("/:id", userControllers.GetUserById)
	userGroup.Put("/:id", userControllers.UpdateUser)
	userGroup.Delete("/:id", userControllers.DeleteUser)
}
