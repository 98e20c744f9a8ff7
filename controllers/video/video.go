package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/store"
	"learnhub/utils"
	videoValidator "learnhub/validators/video"
)

// GetVideosByCourse lists a course's published videos in ascending lesson
// order.
func GetVideosByCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	videos, err := database.Stores.Videos.ListByCourse(c.Context(), courseID)
	if err != nil {
		log.Printf("Error fetching videos for course %s: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error fetching videos", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "", videos)
}

// GetVideoById returns one video and counts the fetch as a view. The
// increment is atomic in the store, so concurrent fetches never lose one.
func GetVideoById(c *fiber.Ctx) error {
	id := c.Params("id")

	video, err := database.Stores.Videos.ViewByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found", nil)
		}
		log.Printf("Error fetching video %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error fetching video", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "", video)
}

// CreateVideo creates a lesson under an existing course. An unresolved
// course is a 404, never a validation failure.
func CreateVideo(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVideo").(*videoValidator.CreateVideoRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data", nil)
	}

	thumbnail := reqData.Thumbnail
	if thumbnail == "" {
		// Best effort; an unreachable oEmbed endpoint just leaves it empty.
		thumbnail = utils.YouTubeThumbnail(reqData.VideoURL)
	}

	video := models.Video{
		CourseID:    reqData.CourseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		VideoURL:    reqData.VideoURL,
		Thumbnail:   thumbnail,
		Duration:    reqData.Duration,
		Order:       *reqData.Order,
	}

	if err := database.Stores.Videos.Create(c.Context(), &video); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
		}
		log.Printf("Error creating video: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error creating video", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video created successfully", video)
}

// UpdateVideo applies a partial update; omitted fields keep their stored
// values.
func UpdateVideo(c *fiber.Ctx) error {
	id := c.Params("id")
	patch, ok := c.Locals("validatedPatch").(*models.VideoPatch)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data", nil)
	}

	video, err := database.Stores.Videos.Update(c.Context(), id, *patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found", nil)
		}
		log.Printf("Error updating video %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error updating video", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video updated successfully", video)
}

// DeleteVideo deletes one video.
func DeleteVideo(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := database.Stores.Videos.Delete(c.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found", nil)
		}
		log.Printf("Error deleting video %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error deleting video", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video deleted successfully", nil)
}
