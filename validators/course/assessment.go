package courseValidator

import (
	"academia/middleware"
	courseModels "academia/models/course"
	"academia/services"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ============ Assessment Validators ============

var validQuestionTypes = map[string]bool{
	courseModels.QuestionSingle:    true,
	courseModels.QuestionMultiple:  true,
	courseModels.QuestionTrueFalse: true,
	courseModels.QuestionShortText: true,
}

// CreateAssessment validates quiz/exam creation
func CreateAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Kind      string `json:"kind"`
			CourseID  uint   `json:"course_id"`
			LessonID  *uint  `json:"lesson_id"`
			Title     string `json:"title"`
			PassScore int    `json:"pass_score"`
			Required  bool   `json:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Kind = strings.ToUpper(strings.TrimSpace(reqData.Kind))
		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Kind != courseModels.KindQuiz && reqData.Kind != courseModels.KindExam {
			errors["kind"] = "Kind must be QUIZ or EXAM!"
		}
		if reqData.Kind == courseModels.KindQuiz && (reqData.LessonID == nil || *reqData.LessonID == 0) {
			errors["lesson_id"] = "A quiz must be attached to a lesson!"
		}
		if reqData.Kind == courseModels.KindExam && reqData.LessonID != nil {
			errors["lesson_id"] = "An exam belongs to the course, not a lesson!"
		}
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course is required!"
		}
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.PassScore < 0 || reqData.PassScore > 100 {
			errors["pass_score"] = "Pass score must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssessment", reqData)
		return c.Next()
	}
}

// UpdateAssessment validates quiz/exam update
func UpdateAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		assessmentID, err := parseIDParam(c, "assessment_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assessment ID!", nil)
		}

		reqData := new(struct {
			Title     string `json:"title"`
			PassScore *int   `json:"pass_score"`
			Required  *bool  `json:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.PassScore != nil && (*reqData.PassScore < 0 || *reqData.PassScore > 100) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"pass_score": "Pass score must be between 0 and 100!",
			})
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		c.Locals("assessmentID", assessmentID)
		c.Locals("validatedAssessmentUpdate", reqData)
		return c.Next()
	}
}

// AssessmentID validates the :assessment_id route parameter
func AssessmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		assessmentID, err := parseIDParam(c, "assessment_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assessment ID!", nil)
		}
		c.Locals("assessmentID", assessmentID)
		return c.Next()
	}
}

// QuestionID validates the :question_id route parameter
func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		questionID, err := parseIDParam(c, "question_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Question ID!", nil)
		}
		c.Locals("questionID", questionID)
		return c.Next()
	}
}

// AddQuestion validates question creation with its options
func AddQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		assessmentID, err := parseIDParam(c, "assessment_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assessment ID!", nil)
		}

		reqData := new(struct {
			Type        string `json:"type"`
			Prompt      string `json:"prompt"`
			MediaURL    string `json:"media_url"`
			Explanation string `json:"explanation"`
			OrderIndex  int    `json:"order_index"`
			Options     []struct {
				Text       string `json:"text"`
				IsCorrect  bool   `json:"is_correct"`
				OrderIndex int    `json:"order_index"`
			} `json:"options"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Type = strings.TrimSpace(reqData.Type)
		reqData.Prompt = strings.TrimSpace(reqData.Prompt)

		if !validQuestionTypes[reqData.Type] {
			errors["type"] = "Type must be single, multiple, true_false or short_text!"
		}
		if reqData.Prompt == "" {
			errors["prompt"] = "Prompt is required!"
		}

		switch reqData.Type {
		case courseModels.QuestionShortText:
			if len(reqData.Options) > 0 {
				errors["options"] = "Short-text questions take no options!"
			}
		case courseModels.QuestionTrueFalse:
			if len(reqData.Options) != 2 {
				errors["options"] = "True/false questions need exactly two options!"
			}
		case courseModels.QuestionSingle, courseModels.QuestionMultiple:
			if len(reqData.Options) < 2 {
				errors["options"] = "Choice questions need at least two options!"
			}
		}

		if errors["options"] == "" && reqData.Type != courseModels.QuestionShortText {
			correct := 0
			for _, o := range reqData.Options {
				if o.IsCorrect {
					correct++
				}
			}
			if correct == 0 {
				errors["options"] = "At least one option must be marked correct!"
			} else if correct > 1 && reqData.Type != courseModels.QuestionMultiple {
				errors["options"] = "Only multiple-choice questions may have more than one correct option!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("assessmentID", assessmentID)
		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// SubmitAnswers validates an attempt submission
func SubmitAnswers() fiber.Handler {
	return func(c *fiber.Ctx) error {
		assessmentID, err := parseIDParam(c, "assessment_id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assessment ID!", nil)
		}

		reqData := new(struct {
			Answers []services.Answer `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		seen := make(map[uint]bool)
		for _, a := range reqData.Answers {
			if a.QuestionID == 0 {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"answers": "Every answer needs a question id!",
				})
			}
			if seen[a.QuestionID] {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"answers": "Duplicate answer for the same question!",
				})
			}
			seen[a.QuestionID] = true
		}

		c.Locals("assessmentID", assessmentID)
		c.Locals("validatedAnswers", reqData.Answers)
		return c.Next()
	}
}
