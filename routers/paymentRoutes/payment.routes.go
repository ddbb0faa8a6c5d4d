package paymentRoutes

import (
	paymentController "academia/controllers/payment"
	"academia/middleware"
	paymentValidator "academia/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up payment request routes
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/course/:course_id/request", middleware.JWTMiddleware, paymentValidator.CreatePaymentRequest(), paymentController.CreatePaymentRequest)
	paymentGroup.Get("/requests", middleware.JWTMiddleware, paymentController.GetMyPaymentRequests)

	adminGroup := app.Group("/admin/payment", middleware.JWTMiddleware, middleware.AdminMiddleware)
	adminGroup.Get("/pending", paymentController.AdminGetPendingPayments)
	adminGroup.Post("/:request_id/approve", paymentValidator.RequestID(), paymentController.AdminApprovePayment)
	adminGroup.Post("/:request_id/reject", paymentValidator.RequestID(), paymentController.AdminRejectPayment)
}
