package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	authRoutes "learnhub/routers/authRoutes"
	courseRoutes "learnhub/routers/courseRoutes"
	userRoutes "learnhub/routers/userRoutes"
	videoRoutes "learnhub/routers/videoRoutes"
	"learnhub/utils"
)

func main() {
	config.LoadConfig()
	database.Connect()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Liveness probe
	app.Get("/health", func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Server is running", nil)
	})

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	videoRoutes.SetupVideoRoutes(app)
	userRoutes.SetupUserRoutes(app)

	// Catch-all for unmatched routes
	app.Use(func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Route not found", nil)
	})

	utils.InitializeStatsScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
