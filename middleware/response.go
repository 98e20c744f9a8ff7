package middleware

import "github.com/gofiber/fiber/v2"

// JsonResponse writes the uniform response envelope. Data is omitted when
// nil so error bodies stay at {success, message}.
func JsonResponse(c *fiber.Ctx, statusCode int, success bool, message string, data interface{}) error {
	body := fiber.Map{"success": success}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(statusCode).JSON(body)
}

// JsonPageResponse writes a paginated listing with the pagination block the
// frontend reads: {total, page, limit, pages}.
func JsonPageResponse(c *fiber.Ctx, data interface{}, total int64, page, limit int, pages int64) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": pages,
		},
	})
}

// ValidationErrorResponse reports missing or malformed request fields.
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Missing required fields",
		"errors":  errors,
	})
}
