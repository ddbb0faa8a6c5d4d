package middleware

import (
	"academia/config"
	"academia/database"
	"academia/models"
	"log"

	"github.com/gofiber/fiber/v2"
)

// IsAdmin reports whether the user has administrator privileges: either
// the ADMIN role, or the configured bootstrap email. Lookup failures are
// logged and count as "not admin".
//
// This is an advisory UX check. Real enforcement lives in the data
// layer; do not rely on this as a security boundary.
func IsAdmin(userID uint) bool {
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		log.Printf("Admin check failed for user %d: %v", userID, err)
		return false
	}
	if user.Role == "ADMIN" {
		return true
	}
	bootstrap := config.AppConfig.AdminBootstrapEmail
	return bootstrap != "" && user.Email == bootstrap
}

// AdminMiddleware rejects requests from non-admin users. It expects
// JWTMiddleware to have already stored userId in Locals.
func AdminMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !IsAdmin(userID) {
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	return c.Next()
}
