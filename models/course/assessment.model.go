package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Assessment kinds
const (
	KindQuiz = "QUIZ" // attached to a single lesson
	KindExam = "EXAM" // final exam for a course
)

// Question types
const (
	QuestionSingle    = "single"
	QuestionMultiple  = "multiple"
	QuestionTrueFalse = "true_false"
	QuestionShortText = "short_text"
)

// Assessment is either a per-lesson quiz or a per-course final exam.
// Quizzes and exams share one table and one grading path so the two
// cannot drift apart behaviorally. A lesson has at most one quiz and a
// course has at most one exam.
type Assessment struct {
	gorm.Model
	Kind      string `json:"kind" gorm:"not null;index"` // QUIZ or EXAM
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	LessonID  *uint  `json:"lesson_id" gorm:"uniqueIndex"` // set for quizzes only
	Title     string `json:"title"`
	PassScore int    `json:"pass_score" gorm:"default:70"` // 0-100, inclusive threshold

	// For quizzes: passing is required before advancing past the lesson.
	// For exams: passing is required before a certificate can be issued.
	Required bool `json:"required" gorm:"default:false"`

	IsDeleted bool `gorm:"default:false"`
}

// Question belongs to one assessment
type Question struct {
	gorm.Model
	AssessmentID uint   `json:"assessment_id" gorm:"index;not null"`
	OrderIndex   int    `json:"order_index" gorm:"default:0"`
	Type         string `json:"type" gorm:"not null"` // single, multiple, true_false, short_text
	Prompt       string `json:"prompt" gorm:"type:text"`
	MediaURL     string `json:"media_url"`
	Explanation  string `json:"explanation" gorm:"type:text"` // shown after grading
	IsDeleted    bool   `gorm:"default:false"`
}

// Option belongs to one question. short_text questions have no options.
type Option struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	IsDeleted  bool   `gorm:"default:false"`
}

// Attempt is an immutable record of one graded submission. It is never
// updated after insert; the user's current standing is the most recent
// attempt by creation time.
type Attempt struct {
	gorm.Model
	UserID       uint           `json:"user_id" gorm:"index;not null"`
	AssessmentID uint           `json:"assessment_id" gorm:"index;not null"`
	Score        int            `json:"score"` // 0-100
	Passed       bool           `json:"passed" gorm:"default:false"`
	Answers      datatypes.JSON `json:"answers"` // raw submitted payload kept for audit / manual review
	IsDeleted    bool           `gorm:"default:false"`
}
