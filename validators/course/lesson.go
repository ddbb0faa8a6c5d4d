package courseValidator

import (
	"academia/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ============ Lesson Validators ============

// CreateLesson validates admin lesson creation request
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := parseIDParam(c, "id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title           string `json:"title"`
			Content         string `json:"content"`
			VideoURL        string `json:"video_url"`
			DurationMinutes int    `json:"duration_minutes"`
			OrderIndex      int    `json:"order_index"`
			IsFree          bool   `json:"is_free"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration cannot be negative!"
		}

		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validates admin lesson update request
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, err := parseIDParam(c, "lesson_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		reqData := new(struct {
			Title           string `json:"title"`
			Content         string `json:"content"`
			VideoURL        string `json:"video_url"`
			DurationMinutes *int   `json:"duration_minutes"`
			OrderIndex      *int   `json:"order_index"`
			IsFree          *bool  `json:"is_free"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.DurationMinutes != nil && *reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("lessonID", lessonID)
		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

// LessonID validates the :lesson_id route parameter
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, err := parseIDParam(c, "lesson_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}
		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

// WatchTime validates a watch-time report
func WatchTime() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, err := parseIDParam(c, "lesson_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		reqData := new(struct {
			Seconds int `json:"seconds"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Seconds < 0 || reqData.Seconds > 24*60*60 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"seconds": "Watch time must be between 0 and 86400 seconds!",
			})
		}

		c.Locals("lessonID", lessonID)
		c.Locals("validatedWatchTime", reqData)
		return c.Next()
	}
}
