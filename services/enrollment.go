package services

import (
	"errors"
	"fmt"
	"strings"

	courseModels "academia/models/course"

	"gorm.io/gorm"
)

// EnrollmentService creates and inspects course enrollments
type EnrollmentService struct {
	db *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{db: db}
}

// Enroll creates the (user, course) enrollment at progress 0. The pair
// is unique at the database level; racing inserts and repeat calls both
// come back as ErrAlreadyEnrolled, which callers may treat as success.
func (s *EnrollmentService) Enroll(userID, courseID uint) (*courseModels.Enrollment, error) {
	var existing courseModels.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&existing).Error
	if err == nil {
		return &existing, ErrAlreadyEnrolled
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("fetch enrollment: %w", err)
	}

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Progress: 0,
	}
	if err := s.db.Create(&enrollment).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost the race: somebody enrolled first. Benign.
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("create enrollment: %w", err)
	}

	s.db.Model(&courseModels.Course{}).Where("id = ?", courseID).
		UpdateColumn("student_count", gorm.Expr("student_count + 1"))

	return &enrollment, nil
}

// IsEnrolled reports whether the user has an active enrollment
func (s *EnrollmentService) IsEnrolled(userID, courseID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return count > 0, nil
}

// Get returns the enrollment for the pair
func (s *EnrollmentService) Get(userID, courseID uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, fmt.Errorf("fetch enrollment: %w", err)
	}
	return &enrollment, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
