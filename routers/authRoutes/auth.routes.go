package authRoutes

import (
	authController "academia/controllers/auth"
	"academia/middleware"
	authValidator "academia/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up authentication routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authController.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authController.Me)
}
