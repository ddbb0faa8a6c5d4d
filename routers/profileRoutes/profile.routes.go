package profileRoutes

import (
	profileController "academia/controllers/profile"
	"academia/middleware"
	profileValidator "academia/validators/profile"

	"github.com/gofiber/fiber/v2"
)

// SetupProfileRoutes sets up the public CV profile routes
func SetupProfileRoutes(app *fiber.App) {
	profileGroup := app.Group("/profile")

	profileGroup.Get("/verification-code", middleware.JWTMiddleware, profileController.GetVerificationCode)
	profileGroup.Post("/visibility/toggle", middleware.JWTMiddleware, profileController.ToggleProfileVisibility)

	// Public, unauthenticated CV lookup by verification code
	app.Get("/cv/:code", profileValidator.VerificationCode(), profileController.ResolvePublicProfile)
}
