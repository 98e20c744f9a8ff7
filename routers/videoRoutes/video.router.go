package videoRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "learnhub/controllers/video"
	videoValidator "learnhub/validators/video"
)

// SetupVideoRoutes sets up all video routes
func SetupVideoRoutes(app *fiber.App) {
	videoGroup := app.Group("/api/videos")

	videoGroup.Get("/course/:courseId", controllers.GetVideosByCourse)
	videoGroup.Get("/:id", controllers.GetVideoById)
	videoGroup.Post("/", videoValidator.CreateVideo(), controllers.CreateVideo)
	videoGroup.Put("/:id", videoValidator.UpdateVideo(), controllers.UpdateVideo)
	videoGroup.Delete("/:id", controllers.DeleteVideo)
}
