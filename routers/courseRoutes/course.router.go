package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "learnhub/controllers/course"
	courseValidator "learnhub/validators/course"
)

// SetupCourseRoutes sets up all course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses")

	courseGroup.Get("/", controllers.GetAllCourses)
	courseGroup.Get("/category/:category", controllers.GetCoursesByCategory)
	courseGroup.Get("/:id", controllers.GetCourseById)
	courseGroup.Post("/", courseValidator.CreateCourse(), controllers.CreateCourse)
	courseGroup.Put("/:id", courseValidator.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", controllers.DeleteCourse)
}
