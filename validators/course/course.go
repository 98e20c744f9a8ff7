package courseValidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"learnhub/middleware"
	"learnhub/models"
)

var validate = validator.New()

// CreateCourseRequest is the POST /api/courses body.
type CreateCourseRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Thumbnail     string   `json:"thumbnail" validate:"omitempty,url"`
	Category      string   `json:"category"`
	InstructorID  string   `json:"instructorId"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Duration      string   `json:"duration"`
	Level         string   `json:"level"`
}

// CreateCourse validates the course creation body and stashes it in Locals.
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required"
		}
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required"
		}
		if strings.TrimSpace(reqData.Category) == "" {
			errors["category"] = "Category is required"
		}
		if strings.TrimSpace(reqData.InstructorID) == "" {
			errors["instructorId"] = "Instructor is required"
		}
		if reqData.Level != "" && !validLevel(reqData.Level) {
			errors["level"] = "Level must be Beginner, Intermediate, Advanced or All Levels"
		}
		if err := validate.Struct(reqData); err != nil {
			errors["thumbnail"] = "Thumbnail must be a valid URL"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse parses the partial update body; absent fields stay nil and
// keep their stored values.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		patch := new(models.CoursePatch)

		if err := c.BodyParser(patch); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body", nil)
		}
		if patch.Level != nil && !validLevel(*patch.Level) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"level": "Level must be Beginner, Intermediate, Advanced or All Levels",
			})
		}

		c.Locals("validatedPatch", patch)
		return c.Next()
	}
}

func validLevel(level string) bool {
	switch level {
	case models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced, models.LevelAllLevels:
		return true
	}
	return false
}
