package controllers

import (
	"academia/database"
	"academia/middleware"
	courseModels "academia/models/course"
	"academia/services"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// questionView is the student-facing shape of a question: correctness
// flags are stripped before the attempt.
type questionView struct {
	ID       uint         `json:"id"`
	Type     string       `json:"type"`
	Prompt   string       `json:"prompt"`
	MediaURL string       `json:"media_url,omitempty"`
	Options  []optionView `json:"options,omitempty"`
}

type optionView struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// GetAssessment returns a quiz or exam with its questions for taking.
// Option correctness and explanations are withheld until grading.
func GetAssessment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assessmentID := c.Locals("assessmentID").(int)

	svc := services.NewAssessmentService(database.Database.Db)
	assessment, err := svc.Get(uint(assessmentID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assessment!", nil)
	}

	enrolled, err := services.NewEnrollmentService(database.Database.Db).IsEnrolled(userID, assessment.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check enrollment!", nil)
	}
	if !enrolled {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	questions, options, err := svc.Questions(assessment.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	views := make([]questionView, len(questions))
	for i, q := range questions {
		view := questionView{
			ID:       q.ID,
			Type:     q.Type,
			Prompt:   q.Prompt,
			MediaURL: q.MediaURL,
		}
		for _, opt := range options[q.ID] {
			view.Options = append(view.Options, optionView{ID: opt.ID, Text: opt.Text})
		}
		views[i] = view
	}

	last, _ := svc.LastAttempt(userID, assessment.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment fetched successfully!", fiber.Map{
		"assessment":   assessment,
		"questions":    views,
		"last_attempt": last,
	})
}

// SubmitAssessment grades a submission and records the attempt
func SubmitAssessment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assessmentID := c.Locals("assessmentID").(int)
	answers := c.Locals("validatedAnswers").([]services.Answer)

	svc := services.NewAssessmentService(database.Database.Db)
	assessment, err := svc.Get(uint(assessmentID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assessment!", nil)
	}

	enrolled, err := services.NewEnrollmentService(database.Database.Db).IsEnrolled(userID, assessment.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check enrollment!", nil)
	}
	if !enrolled {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	attempt, result, err := svc.Submit(userID, assessment.ID, answers)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit answers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answers submitted!", fiber.Map{
		"attempt": attempt,
		"result":  result,
	})
}

// GetLastAttempt returns the caller's most recent attempt for an
// assessment, or null when none exists
func GetLastAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assessmentID := c.Locals("assessmentID").(int)

	last, err := services.NewAssessmentService(database.Database.Db).LastAttempt(userID, uint(assessmentID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully!", last)
}

// GetCourseExam returns the course's final exam outline, if any
func GetCourseExam(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	exam, err := services.NewAssessmentService(database.Database.Db).ExamForCourse(uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch exam!", nil)
	}
	if exam == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This course has no final exam!", nil)
	}

	var last *courseModels.Attempt
	last, _ = services.NewAssessmentService(database.Database.Db).LastAttempt(userID, exam.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam fetched successfully!", fiber.Map{
		"exam":         exam,
		"last_attempt": last,
	})
}
