package controllers

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

// GetCertificateEligibility reports whether the caller may receive the
// course certificate. Not being eligible is a normal outcome, not an
// error.
func GetCertificateEligibility(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	eligible, err := services.NewCertificateService(database.Database.Db).IsEligible(userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check eligibility!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Eligibility checked!", fiber.Map{
		"eligible": eligible,
	})
}

// IssueCertificate issues (or re-returns) the caller's certificate for
// a completed course
func IssueCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	cert, err := services.NewCertificateService(database.Database.Db).Issue(userID, uint(courseID))
	if err != nil {
		if errors.Is(err, services.ErrNotEligible) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Certificate not available yet. Complete the course first!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	// Fire-and-forget notifications
	go func(cert courseModels.Certificate) {
		var user models.User
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.UserID).First(&user)
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		if user.Email != "" {
			if err := utils.SendCertificateEmail(user.Email, user.Name, course.Title, cert.SerialNumber); err != nil {
				log.Printf("Error sending certificate email: %v", err)
			}
		}
		utils.NotifyEvent("certificate.issued", fiber.Map{
			"user_id":   cert.UserID,
			"course_id": cert.CourseID,
			"serial":    cert.SerialNumber,
		})
	}(*cert)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued!", cert)
}

// GetUserCertificates lists the caller's certificates with course titles
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certs, err := services.NewCertificateService(database.Database.Db).ForUser(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseTitle string `json:"course_title"`
	}

	result := make([]CertificateWithCourse, len(certs))
	for i, cert := range certs {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseTitle: course.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}
