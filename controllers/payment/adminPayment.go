package paymentController

import (
	"academia/database"
	"academia/middleware"
	"academia/models"
	courseModels "academia/models/course"
	"academia/services"
	"academia/utils"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// AdminGetPendingPayments lists unresolved payment requests, oldest
// first, with user and course context for review
func AdminGetPendingPayments(c *fiber.Ctx) error {
	requests, err := services.NewPaymentService(database.Database.Db).Pending()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending requests!", nil)
	}

	type RequestWithContext struct {
		courseModels.PaymentRequest
		UserName    string  `json:"user_name"`
		UserEmail   string  `json:"user_email"`
		CourseTitle string  `json:"course_title"`
		CoursePrice float64 `json:"course_price"`
	}

	result := make([]RequestWithContext, len(requests))
	for i, r := range requests {
		var user models.User
		database.Database.Db.Where("id = ?", r.UserID).First(&user)
		var course courseModels.Course
		database.Database.Db.Where("id = ?", r.CourseID).First(&course)
		result[i] = RequestWithContext{
			PaymentRequest: r,
			UserName:       user.Name,
			UserEmail:      user.Email,
			CourseTitle:    course.Title,
			CoursePrice:    course.Price,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending requests fetched successfully!", fiber.Map{
		"requests": result,
		"total":    len(result),
	})
}

// AdminApprovePayment approves a pending request and enrolls the
// student. A request that was already resolved comes back as a
// conflict, so two admins clicking at once cannot double-process it.
func AdminApprovePayment(c *fiber.Ctx) error {
	reviewerID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Locals("requestID").(int)

	request, err := services.NewPaymentService(database.Database.Db).Approve(uint(requestID), reviewerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment request not found!", nil)
		case errors.Is(err, services.ErrConflict):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Payment request already processed!", nil)
		}
		log.Printf("Error approving payment request %d: %v", requestID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve payment request!", nil)
	}

	// Fire-and-forget notifications
	go func(r courseModels.PaymentRequest) {
		var user models.User
		var course courseModels.Course
		database.Database.Db.Where("id = ?", r.UserID).First(&user)
		database.Database.Db.Where("id = ?", r.CourseID).First(&course)
		if user.Email != "" {
			if err := utils.SendEnrollmentEmail(user.Email, user.Name, course.Title); err != nil {
				log.Printf("Error sending enrollment email: %v", err)
			}
		}
		utils.NotifyEvent("payment.approved", fiber.Map{
			"request_id": r.ID,
			"user_id":    r.UserID,
			"course_id":  r.CourseID,
		})
	}(*request)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment request approved and student enrolled!", request)
}

// AdminRejectPayment rejects a pending request
func AdminRejectPayment(c *fiber.Ctx) error {
	reviewerID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Locals("requestID").(int)

	request, err := services.NewPaymentService(database.Database.Db).Reject(uint(requestID), reviewerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment request not found!", nil)
		case errors.Is(err, services.ErrConflict):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Payment request already processed!", nil)
		}
		log.Printf("Error rejecting payment request %d: %v", requestID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject payment request!", nil)
	}

	go utils.NotifyEvent("payment.rejected", fiber.Map{
		"request_id": request.ID,
		"user_id":    request.UserID,
		"course_id":  request.CourseID,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment request rejected!", request)
}
