package courseRoutes

import (
	controllers "academia/controllers/course"
	"academia/middleware"
	validators "academia/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Browsing
	courseGroup.Get("/list", middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Get("/categories", middleware.JWTMiddleware, controllers.GetCategories)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Enrollment (free courses only; paid enrollments go through payments)
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)

	// Progress
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.CourseIDNamed(), controllers.GetCourseProgress)
	courseGroup.Get("/:course_id/exam", middleware.JWTMiddleware, validators.CourseIDNamed(), controllers.GetCourseExam)

	// Certificates
	courseGroup.Get("/:course_id/certificate/eligibility", middleware.JWTMiddleware, validators.CourseIDNamed(), controllers.GetCertificateEligibility)
	courseGroup.Post("/:course_id/certificate", middleware.JWTMiddleware, validators.CourseIDNamed(), controllers.IssueCertificate)

	// Lessons
	lessonGroup := app.Group("/lesson")
	lessonGroup.Get("/:lesson_id", middleware.JWTMiddleware, validators.LessonID(), controllers.GetLesson)
	lessonGroup.Post("/:lesson_id/watch", middleware.JWTMiddleware, validators.WatchTime(), controllers.RecordWatchTime)
	lessonGroup.Post("/:lesson_id/complete", middleware.JWTMiddleware, validators.LessonID(), controllers.MarkLessonComplete)

	// Assessments (quizzes and exams share the endpoints)
	assessmentGroup := app.Group("/assessment")
	assessmentGroup.Get("/:assessment_id", middleware.JWTMiddleware, validators.AssessmentID(), controllers.GetAssessment)
	assessmentGroup.Post("/:assessment_id/submit", middleware.JWTMiddleware, validators.SubmitAnswers(), controllers.SubmitAssessment)
	assessmentGroup.Get("/:assessment_id/attempt", middleware.JWTMiddleware, validators.AssessmentID(), controllers.GetLastAttempt)

	// User-scoped listings
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollmentsList)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
