package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/store"
	courseValidator "learnhub/validators/course"
)

// GetAllCourses lists published courses, newest first, with offset
// pagination. Absent, non-numeric or sub-1 page/limit fall back to 1/10.
func GetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}

	result, err := database.Stores.Courses.ListPublished(c.Context(), page, limit)
	if err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error fetching courses", nil)
	}

	return middleware.JsonPageResponse(c, result.Items, result.Total, result.Page, result.Limit, result.Pages())
}

// GetCoursesByCategory lists published courses with an exact category
// match, newest first, unpaginated.
func GetCoursesByCategory(c *fiber.Ctx) error {
	category := c.Params("category")

	courses, err := database.Stores.Courses.ListByCategory(c.Context(), category)
	if err != nil {
		log.Printf("Error fetching courses for category %q: %v", category, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error fetching courses", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "", courses)
}

// GetCourseById returns one course with its videos sorted ascending by
// lesson order.
func GetCourseById(c *fiber.Ctx) error {
	id := c.Params("id")

	course, err := database.Stores.Courses.FindByIDWithVideos(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
		}
		log.Printf("Error fetching course %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error fetching course", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "", course)
}

// CreateCourse creates a draft course. The instructor must resolve to an
// existing user.
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data", nil)
	}

	if _, err := database.Stores.Users.FindByID(c.Context(), reqData.InstructorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"instructorId": "Instructor not found",
			})
		}
		log.Printf("Error resolving instructor %s: %v", reqData.InstructorID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error creating course", nil)
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Thumbnail:    reqData.Thumbnail,
		Category:     reqData.Category,
		InstructorID: reqData.InstructorID,
		Duration:     reqData.Duration,
		Level:        reqData.Level,
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.OriginalPrice != nil {
		course.OriginalPrice = *reqData.OriginalPrice
	}

	if err := database.Stores.Courses.Create(c.Context(), &course); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"instructorId": "Instructor not found",
			})
		}
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error creating course", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully", course)
}

// UpdateCourse applies a partial update; omitted fields keep their stored
// values.
func UpdateCourse(c *fiber.Ctx) error {
	id := c.Params("id")
	patch, ok := c.Locals("validatedPatch").(*models.CoursePatch)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data", nil)
	}

	course, err := database.Stores.Courses.Update(c.Context(), id, *patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
		}
		log.Printf("Error updating course %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error updating course", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully", course)
}

// DeleteCourse deletes a course and every video it owns.
func DeleteCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := database.Stores.Courses.Delete(c.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
		}
		log.Printf("Error deleting course %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error deleting course", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully", nil)
}
