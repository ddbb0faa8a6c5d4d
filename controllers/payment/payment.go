package paymentController

import (
	"academia/database"
	"academia/middleware"
	"academia/services"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// CreatePaymentRequest files a manual payment claim for a paid course.
// The claim sits in pending state until an administrator reviews it.
func CreatePaymentRequest(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	method := c.Locals("paymentMethod").(string)
	details := c.Locals("paymentDetails").(datatypes.JSON)

	request, err := services.NewPaymentService(database.Database.Db).CreateRequest(userID, uint(courseID), method, details)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, services.ErrAlreadyEnrolled):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
		case errors.Is(err, services.ErrConflict):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A payment request for this course is already pending!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit payment request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment request submitted. An administrator will review it shortly!", request)
}

// GetMyPaymentRequests lists the caller's own payment requests
func GetMyPaymentRequests(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requests, err := services.NewPaymentService(database.Database.Db).ForUser(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payment requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment requests fetched successfully!", requests)
}
