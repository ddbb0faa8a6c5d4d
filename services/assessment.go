package services

import (
	"encoding/json"
	"errors"
	"fmt"

	courseModels "academia/models/course"

	"gorm.io/gorm"
)

// AssessmentService grades submissions and records immutable attempts.
// Quizzes and exams go through the exact same path.
type AssessmentService struct {
	db *gorm.DB
}

func NewAssessmentService(db *gorm.DB) *AssessmentService {
	return &AssessmentService{db: db}
}

// Get returns an assessment by id
func (s *AssessmentService) Get(assessmentID uint) (*courseModels.Assessment, error) {
	var assessment courseModels.Assessment
	if err := s.db.Where("id = ? AND is_deleted = ?", assessmentID, false).First(&assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch assessment: %w", err)
	}
	return &assessment, nil
}

// QuizForLesson returns the lesson's quiz, or nil when the lesson has none
func (s *AssessmentService) QuizForLesson(lessonID uint) (*courseModels.Assessment, error) {
	var quiz courseModels.Assessment
	err := s.db.Where("kind = ? AND lesson_id = ? AND is_deleted = ?", courseModels.KindQuiz, lessonID, false).First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch lesson quiz: %w", err)
	}
	return &quiz, nil
}

// ExamForCourse returns the course's final exam, or nil when there is none
func (s *AssessmentService) ExamForCourse(courseID uint) (*courseModels.Assessment, error) {
	var exam courseModels.Assessment
	err := s.db.Where("kind = ? AND course_id = ? AND is_deleted = ?", courseModels.KindExam, courseID, false).First(&exam).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch course exam: %w", err)
	}
	return &exam, nil
}

// Questions loads the question set with options, ordered for display
func (s *AssessmentService) Questions(assessmentID uint) ([]courseModels.Question, map[uint][]courseModels.Option, error) {
	var questions []courseModels.Question
	if err := s.db.Where("assessment_id = ? AND is_deleted = ?", assessmentID, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return nil, nil, fmt.Errorf("fetch questions: %w", err)
	}

	questionIDs := make([]uint, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	options := make(map[uint][]courseModels.Option)
	if len(questionIDs) > 0 {
		var opts []courseModels.Option
		if err := s.db.Where("question_id IN ? AND is_deleted = ?", questionIDs, false).
			Order("order_index asc").Find(&opts).Error; err != nil {
			return nil, nil, fmt.Errorf("fetch options: %w", err)
		}
		for _, opt := range opts {
			options[opt.QuestionID] = append(options[opt.QuestionID], opt)
		}
	}
	return questions, options, nil
}

// Submit grades the answers and persists one immutable attempt. There is
// no partial in-progress state: an attempt either lands fully scored or
// not at all.
func (s *AssessmentService) Submit(userID, assessmentID uint, answers []Answer) (*courseModels.Attempt, GradeResult, error) {
	assessment, err := s.Get(assessmentID)
	if err != nil {
		return nil, GradeResult{}, err
	}

	questions, options, err := s.Questions(assessmentID)
	if err != nil {
		return nil, GradeResult{}, err
	}

	result := Grade(questions, options, answers, assessment.PassScore)

	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return nil, GradeResult{}, fmt.Errorf("encode answers: %w", err)
	}

	attempt := courseModels.Attempt{
		UserID:       userID,
		AssessmentID: assessmentID,
		Score:        result.Score,
		Passed:       result.Passed,
		Answers:      rawAnswers,
	}
	if err := s.db.Create(&attempt).Error; err != nil {
		return nil, GradeResult{}, fmt.Errorf("save attempt: %w", err)
	}
	return &attempt, result, nil
}

// LastAttempt returns the most recent attempt for the pair, or nil
func (s *AssessmentService) LastAttempt(userID, assessmentID uint) (*courseModels.Attempt, error) {
	var attempt courseModels.Attempt
	err := s.db.Where("user_id = ? AND assessment_id = ? AND is_deleted = ?", userID, assessmentID, false).
		Order("created_at desc").First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch last attempt: %w", err)
	}
	return &attempt, nil
}

// GatePassed reports whether the lesson's quiz gate allows advancing.
// A lesson without a quiz, or with an optional quiz, gates nothing. A
// required quiz with no attempts blocks.
func (s *AssessmentService) GatePassed(userID, lessonID uint) (bool, error) {
	quiz, err := s.QuizForLesson(lessonID)
	if err != nil {
		return false, err
	}
	if quiz == nil || !quiz.Required {
		return true, nil
	}
	last, err := s.LastAttempt(userID, quiz.ID)
	if err != nil {
		return false, err
	}
	return last != nil && last.Passed, nil
}

// RequireGate returns ErrQuizNotPassed when the lesson's required quiz
// blocks advancing
func (s *AssessmentService) RequireGate(userID, lessonID uint) error {
	passed, err := s.GatePassed(userID, lessonID)
	if err != nil {
		return err
	}
	if !passed {
		return ErrQuizNotPassed
	}
	return nil
}
