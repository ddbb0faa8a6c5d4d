package controllers

import (
	"academia/database"
	"academia/middleware"
	courseModels "academia/models/course"
	"academia/services"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// GetLesson returns one lesson's content. Free lessons are open to any
// authenticated user; everything else requires enrollment.
func GetLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if !lesson.IsFree {
		enrolled, err := services.NewEnrollmentService(database.Database.Db).IsEnrolled(userID, lesson.CourseID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check enrollment!", nil)
		}
		if !enrolled {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
		}
	}

	// Attach the lesson's quiz outline, if any
	quiz, _ := services.NewAssessmentService(database.Database.Db).QuizForLesson(lesson.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson": lesson,
		"quiz":   quiz,
	})
}

// RecordWatchTime accumulates lesson watch time for the caller
func RecordWatchTime(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)
	reqData := c.Locals("validatedWatchTime").(*struct {
		Seconds int `json:"seconds"`
	})

	if err := services.NewProgressService(database.Database.Db).RecordWatchTime(userID, uint(lessonID), reqData.Seconds); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record watch time!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Watch time recorded!", nil)
}

// MarkLessonComplete marks the lesson as completed for the caller and
// recomputes the course progress. Blocked while a required lesson quiz
// has not been passed.
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	enrolled, err := services.NewEnrollmentService(database.Database.Db).IsEnrolled(userID, lesson.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check enrollment!", nil)
	}
	if !enrolled {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	if err := services.NewAssessmentService(database.Database.Db).RequireGate(userID, lesson.ID); err != nil {
		if errors.Is(err, services.ErrQuizNotPassed) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Pass the lesson quiz before continuing!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check quiz status!", nil)
	}

	if err := services.NewProgressService(database.Database.Db).MarkLessonCompleted(userID, lesson.ID); err != nil {
		if errors.Is(err, services.ErrNotEnrolled) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson complete!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as complete!", nil)
}

// GetCourseProgress returns the caller's progress in a course with the
// completed lesson ids
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	enrollment, err := services.NewEnrollmentService(database.Database.Db).Get(userID, uint(courseID))
	if err != nil {
		if errors.Is(err, services.ErrNotEnrolled) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	var completed []courseModels.LessonProgress
	database.Database.Db.
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.user_id = ? AND lessons.course_id = ? AND lesson_progresses.completed = ?", userID, courseID, true).
		Find(&completed)

	completedIDs := make([]uint, len(completed))
	for i, lp := range completed {
		completedIDs[i] = lp.LessonID
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":           enrollment,
		"completed_lesson_ids": completedIDs,
	})
}
