package videoValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"learnhub/middleware"
	"learnhub/models"
)

// CreateVideoRequest is the POST /api/videos body. Order is a pointer so a
// provided 0 is distinguishable from an absent field.
type CreateVideoRequest struct {
	CourseID    string `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	Thumbnail   string `json:"thumbnail"`
	Duration    int    `json:"duration"`
	Order       *int   `json:"order"`
}

// CreateVideo validates the video creation body and stashes it in Locals.
func CreateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateVideoRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.CourseID) == "" {
			errors["courseId"] = "Course is required"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required"
		}
		if strings.TrimSpace(reqData.VideoURL) == "" {
			errors["videoUrl"] = "Video URL is required"
		}
		if reqData.Duration <= 0 {
			errors["duration"] = "Duration in seconds is required"
		}
		if reqData.Order == nil {
			errors["order"] = "Order is required"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVideo", reqData)
		return c.Next()
	}
}

// UpdateVideo parses the partial update body; absent fields stay nil and
// keep their stored values.
func UpdateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		patch := new(models.VideoPatch)

		if err := c.BodyParser(patch); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body", nil)
		}

		c.Locals("validatedPatch", patch)
		return c.Next()
	}
}
