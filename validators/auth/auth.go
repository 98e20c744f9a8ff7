package authValidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"learnhub/middleware"
)

var validate = validator.New()

// SignupRequest is the POST /api/auth/signup body.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// LoginRequest is the POST /api/auth/login body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup validates the signup body and stashes it in Locals.
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SignupRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body", nil)
		}
		reqData.Email = strings.TrimSpace(reqData.Email)

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Email":
					errors["email"] = "A valid email is required"
				case "Password":
					errors["password"] = "Password of at least 6 characters is required"
				case "FirstName":
					errors["firstName"] = "First name is required"
				case "LastName":
					errors["lastName"] = "Last name is required"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

// Login validates the login body and stashes it in Locals.
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body", nil)
		}
		reqData.Email = strings.TrimSpace(reqData.Email)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"credentials": "Email and password are required",
			})
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
