package profileController

import (
	"academia/database"
	"academia/middleware"
	"academia/services"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// GetVerificationCode returns the caller's verification code, creating
// one on first request
func GetVerificationCode(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	code, err := services.NewVerificationService(database.Database.Db).GetOrCreateCode(userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		case errors.Is(err, services.ErrGenerationExhausted):
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Could not generate a code. Please try again!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to get verification code!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Verification code fetched successfully!", fiber.Map{
		"verification_code": code,
	})
}

// ToggleProfileVisibility flips the public CV visibility and returns
// the new state
func ToggleProfileVisibility(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	isPublic, err := services.NewVerificationService(database.Database.Db).ToggleVisibility(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update visibility!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile visibility updated!", fiber.Map{
		"is_public": isPublic,
	})
}

// ResolvePublicProfile is the unauthenticated public CV endpoint. A code
// only resolves when its owner has made the profile public; everything
// else is a plain not-found.
func ResolvePublicProfile(c *fiber.Ctx) error {
	code := c.Locals("verificationCode").(string)

	profile, err := services.NewVerificationService(database.Database.Db).ResolvePublicProfile(code)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Profile not available!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", profile)
}
