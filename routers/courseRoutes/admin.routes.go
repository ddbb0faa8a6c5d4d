package courseRoutes

import (
	controllers "academia/controllers/course"
	"academia/middleware"
	validators "academia/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.AdminMiddleware)

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", validators.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Get("/list", controllers.AdminGetAllCourses)
	adminGroup.Post("/:id/publish", validators.CourseID(), controllers.AdminPublishCourse)
	adminGroup.Get("/:id/enrollments", validators.CourseID(), controllers.AdminGetCourseEnrollments)

	// Lesson management
	adminGroup.Post("/:id/lesson", validators.CreateLesson(), controllers.AdminCreateLesson)
	adminGroup.Get("/:id/lessons", validators.CourseID(), controllers.AdminListLessons)

	lessonGroup := app.Group("/admin/lesson", middleware.JWTMiddleware, middleware.AdminMiddleware)
	lessonGroup.Put("/:lesson_id", validators.UpdateLesson(), controllers.AdminUpdateLesson)
	lessonGroup.Delete("/:lesson_id", validators.LessonID(), controllers.AdminDeleteLesson)

	// Category management
	categoryGroup := app.Group("/admin/category", middleware.JWTMiddleware, middleware.AdminMiddleware)
	categoryGroup.Post("/create", validators.CreateCategory(), controllers.AdminCreateCategory)

	// Assessment management (quizzes and exams)
	assessmentGroup := app.Group("/admin/assessment", middleware.JWTMiddleware, middleware.AdminMiddleware)
	assessmentGroup.Post("/create", validators.CreateAssessment(), controllers.AdminCreateAssessment)
	assessmentGroup.Put("/:assessment_id", validators.UpdateAssessment(), controllers.AdminUpdateAssessment)
	assessmentGroup.Delete("/:assessment_id", validators.AssessmentID(), controllers.AdminDeleteAssessment)
	assessmentGroup.Get("/:assessment_id/questions", validators.AssessmentID(), controllers.AdminListQuestions)
	assessmentGroup.Post("/:assessment_id/question", validators.AddQuestion(), controllers.AdminAddQuestion)

	questionGroup := app.Group("/admin/question", middleware.JWTMiddleware, middleware.AdminMiddleware)
	questionGroup.Delete("/:question_id", validators.QuestionID(), controllers.AdminDeleteQuestion)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard", middleware.JWTMiddleware, middleware.AdminMiddleware)
	dashGroup.Get("/stats", controllers.AdminDashboardStats)
}
