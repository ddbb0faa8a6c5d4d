package course

import (
	"time"

	"gorm.io/gorm"
)

// Lesson represents a single lesson within a course, ordered by OrderIndex.
// Order indexes are comparison-ordered, not necessarily contiguous.
type Lesson struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Content         string `json:"content" gorm:"type:text"` // rich text / HTML
	VideoURL        string `json:"video_url"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"`
	IsFree          bool   `json:"is_free" gorm:"default:false"` // viewable without enrollment
	IsDeleted       bool   `gorm:"default:false"`
}

// LessonProgress tracks a user's completion of a single lesson.
// Created on first lesson view, flipped to completed when the user
// explicitly advances past the lesson.
type LessonProgress struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"uniqueIndex:idx_user_lesson;not null"`
	LessonID         uint       `json:"lesson_id" gorm:"uniqueIndex:idx_user_lesson;not null"`
	Completed        bool       `json:"completed" gorm:"default:false"`
	CompletedAt      *time.Time `json:"completed_at"`
	WatchTimeSeconds int        `json:"watch_time_seconds" gorm:"default:0"`
	IsDeleted        bool       `gorm:"default:false"`
}
