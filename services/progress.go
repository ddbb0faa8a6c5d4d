package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	courseModels "academia/models/course"

	"gorm.io/gorm"
)

// ProgressService tracks lesson completion and derives course progress
// from it. It is the sole writer of Enrollment.Progress.
type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// RecordWatchTime upserts the lesson progress row with accumulated watch
// time. The row is created on first lesson view.
func (s *ProgressService) RecordWatchTime(userID, lessonID uint, seconds int) error {
	if seconds < 0 {
		seconds = 0
	}
	var progress courseModels.LessonProgress
	err := s.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = courseModels.LessonProgress{
			UserID:           userID,
			LessonID:         lessonID,
			WatchTimeSeconds: seconds,
		}
		if err := s.db.Create(&progress).Error; err != nil {
			return fmt.Errorf("create lesson progress: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch lesson progress: %w", err)
	}
	progress.WatchTimeSeconds += seconds
	if err := s.db.Save(&progress).Error; err != nil {
		return fmt.Errorf("update lesson progress: %w", err)
	}
	return nil
}

// MarkLessonCompleted upserts the lesson progress row as completed and
// recomputes the course progress.
func (s *ProgressService) MarkLessonCompleted(userID, lessonID uint) error {
	var lesson courseModels.Lesson
	if err := s.db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("fetch lesson: %w", err)
	}

	now := time.Now()
	var progress courseModels.LessonProgress
	err := s.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = courseModels.LessonProgress{
			UserID:      userID,
			LessonID:    lessonID,
			Completed:   true,
			CompletedAt: &now,
		}
		if err := s.db.Create(&progress).Error; err != nil {
			return fmt.Errorf("create lesson progress: %w", err)
		}
	case err != nil:
		return fmt.Errorf("fetch lesson progress: %w", err)
	default:
		if !progress.Completed {
			progress.Completed = true
			progress.CompletedAt = &now
			if err := s.db.Save(&progress).Error; err != nil {
				return fmt.Errorf("update lesson progress: %w", err)
			}
		}
	}

	return s.RecomputeCourseProgress(userID, lesson.CourseID)
}

// RecomputeCourseProgress rederives the enrollment progress percentage
// from completed lessons. A course with no lessons is left untouched.
// The computation reads the full completed set and writes an idempotent
// result, so concurrent recomputations are last-write-wins safe.
func (s *ProgressService) RecomputeCourseProgress(userID, courseID uint) error {
	var total int64
	if err := s.db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&total).Error; err != nil {
		return fmt.Errorf("count lessons: %w", err)
	}
	if total == 0 {
		return nil
	}

	var completed int64
	if err := s.db.Model(&courseModels.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.user_id = ? AND lessons.course_id = ? AND lesson_progresses.completed = ? AND lessons.is_deleted = ?",
			userID, courseID, true, false).
		Count(&completed).Error; err != nil {
		return fmt.Errorf("count completed lessons: %w", err)
	}

	percent := int(math.Round(100 * float64(completed) / float64(total)))
	return s.SetProgress(userID, courseID, percent)
}

// SetProgress writes a clamped progress value onto the enrollment.
// CompletedAt is stamped the moment progress reaches 100 and cleared if
// progress ever regresses below 100, so a corrected course never keeps a
// stale completion timestamp.
func (s *ProgressService) SetProgress(userID, courseID uint, percent int) error {
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	var enrollment courseModels.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotEnrolled
		}
		return fmt.Errorf("fetch enrollment: %w", err)
	}

	enrollment.Progress = percent
	if percent == 100 {
		if enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
		}
	} else {
		enrollment.CompletedAt = nil
	}

	if err := s.db.Save(&enrollment).Error; err != nil {
		return fmt.Errorf("update enrollment progress: %w", err)
	}
	return nil
}

// CourseStudyTime sums study seconds over the user's completed lessons
// in the course. Lessons watched without recorded watch time fall back
// to their nominal duration.
func (s *ProgressService) CourseStudyTime(userID, courseID uint) (int, error) {
	type row struct {
		WatchTimeSeconds int
		DurationMinutes  int
	}
	var rows []row
	if err := s.db.Model(&courseModels.LessonProgress{}).
		Select("lesson_progresses.watch_time_seconds, lessons.duration_minutes").
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.user_id = ? AND lessons.course_id = ? AND lesson_progresses.completed = ?", userID, courseID, true).
		Scan(&rows).Error; err != nil {
		return 0, fmt.Errorf("sum study time: %w", err)
	}

	seconds := 0
	for _, r := range rows {
		if r.WatchTimeSeconds > 0 {
			seconds += r.WatchTimeSeconds
		} else {
			seconds += r.DurationMinutes * 60
		}
	}
	return seconds, nil
}
