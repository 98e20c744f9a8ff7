package userControllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/store"
)

// GetAllUsers lists every account, newest first. Admin only.
func GetAllUsers(c *fiber.Ctx) error {
	users, err := database.Stores.Users.List(c.Context())
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error fetching users", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "", users)
}

// GetUserById returns one account. Admin only.
func GetUserById(c *fiber.Ctx) error {
	id := c.Params("id")

	user, err := database.Stores.Users.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
		}
		log.Printf("Error fetching user %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error fetching user", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "", user)
}

// UpdateUser applies a partial profile/role update. Admin only.
func UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	patch := new(models.UserPatch)
	if err := c.BodyParser(patch); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body", nil)
	}
	if patch.Role != nil {
		switch *patch.Role {
		case models.RoleAdmin, models.RoleInstructor, models.RoleStudent:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"role": "Role must be admin, instructor or student",
			})
		}
	}

	user, err := database.Stores.Users.Update(c.Context(), id, *patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
		}
		log.Printf("Error updating user %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error updating user", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully", user)
}

// DeleteUser removes an account. Deletion is restricted while the user is
// still the instructor of any course.
func DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := database.Stores.Users.Delete(c.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found", nil)
		}
		if errors.Is(err, store.ErrUserHasCourses) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User still owns courses and cannot be deleted", nil)
		}
		log.Printf("Error deleting user %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error deleting user", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully", nil)
}
