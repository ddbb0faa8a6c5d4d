package controllers

import (
	"academia/database"
	"academia/middleware"
	courseModels "academia/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateAssessment creates a lesson quiz or a course exam. A lesson
// can hold one quiz and a course one exam; duplicates are rejected.
func AdminCreateAssessment(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAssessment").(*struct {
		Kind      string `json:"kind"`
		CourseID  uint   `json:"course_id"`
		LessonID  *uint  `json:"lesson_id"`
		Title     string `json:"title"`
		PassScore int    `json:"pass_score"`
		Required  bool   `json:"required"`
	})

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.Kind == courseModels.KindQuiz {
		var lesson courseModels.Lesson
		if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", reqData.LessonID, reqData.CourseID, false).
			First(&lesson).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		var existing courseModels.Assessment
		if err := db.Where("kind = ? AND lesson_id = ? AND is_deleted = ?", courseModels.KindQuiz, reqData.LessonID, false).
			First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Lesson already has a quiz!", nil)
		}
	} else {
		var existing courseModels.Assessment
		if err := db.Where("kind = ? AND course_id = ? AND is_deleted = ?", courseModels.KindExam, reqData.CourseID, false).
			First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already has a final exam!", nil)
		}
	}

	assessment := courseModels.Assessment{
		Kind:      reqData.Kind,
		CourseID:  reqData.CourseID,
		LessonID:  reqData.LessonID,
		Title:     reqData.Title,
		PassScore: reqData.PassScore,
		Required:  reqData.Required,
	}

	if err := db.Create(&assessment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assessment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assessment created successfully!", assessment)
}

// AdminUpdateAssessment updates title, threshold and required gate
func AdminUpdateAssessment(c *fiber.Ctx) error {
	assessmentID := c.Locals("assessmentID").(int)
	reqData := c.Locals("validatedAssessmentUpdate").(*struct {
		Title     string `json:"title"`
		PassScore *int   `json:"pass_score"`
		Required  *bool  `json:"required"`
	})

	var assessment courseModels.Assessment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assessmentID, false).First(&assessment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	if reqData.Title != "" {
		assessment.Title = reqData.Title
	}
	if reqData.PassScore != nil {
		assessment.PassScore = *reqData.PassScore
	}
	if reqData.Required != nil {
		assessment.Required = *reqData.Required
	}

	if err := database.Database.Db.Save(&assessment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update assessment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment updated successfully!", assessment)
}

// AdminDeleteAssessment soft-deletes an assessment with its questions
func AdminDeleteAssessment(c *fiber.Ctx) error {
	assessmentID := c.Locals("assessmentID").(int)

	var assessment courseModels.Assessment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assessmentID, false).First(&assessment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	assessment.IsDeleted = true
	if err := database.Database.Db.Save(&assessment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete assessment!", nil)
	}

	database.Database.Db.Model(&courseModels.Question{}).
		Where("assessment_id = ?", assessmentID).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment deleted successfully!", nil)
}

// AdminAddQuestion appends a question (with options for choice types)
func AdminAddQuestion(c *fiber.Ctx) error {
	assessmentID := c.Locals("assessmentID").(int)
	reqData := c.Locals("validatedQuestion").(*struct {
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

	var assessment courseModels.Assessment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assessmentID, false).First(&assessment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	question := courseModels.Question{
		AssessmentID: uint(assessmentID),
		Type:         reqData.Type,
		Prompt:       reqData.Prompt,
		MediaURL:     reqData.MediaURL,
		Explanation:  reqData.Explanation,
		OrderIndex:   reqData.OrderIndex,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	for _, o := range reqData.Options {
		option := courseModels.Option{
			QuestionID: question.ID,
			Text:       o.Text,
			IsCorrect:  o.IsCorrect,
			OrderIndex: o.OrderIndex,
		}
		if err := tx.Create(&option).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create options!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", question)
}

// AdminDeleteQuestion soft-deletes a question with its options
func AdminDeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question courseModels.Question
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	question.IsDeleted = true
	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	database.Database.Db.Model(&courseModels.Option{}).
		Where("question_id = ?", questionID).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// AdminListQuestions lists an assessment's questions with options,
// including the correctness flags
func AdminListQuestions(c *fiber.Ctx) error {
	assessmentID := c.Locals("assessmentID").(int)

	var questions []courseModels.Question
	if err := database.Database.Db.Where("assessment_id = ? AND is_deleted = ?", assessmentID, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	type QuestionWithOptions struct {
		courseModels.Question
		Options []courseModels.Option `json:"options"`
	}

	result := make([]QuestionWithOptions, len(questions))
	for i, q := range questions {
		var options []courseModels.Option
		database.Database.Db.Where("question_id = ? AND is_deleted = ?", q.ID, false).
			Order("order_index asc").Find(&options)
		result[i] = QuestionWithOptions{Question: q, Options: options}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", result)
}
