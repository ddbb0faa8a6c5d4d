package services

import (
	"errors"
	"fmt"
	"time"

	courseModels "academia/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateService decides certificate eligibility and issues
// certificate records.
type CertificateService struct {
	db          *gorm.DB
	enrollments *EnrollmentService
	assessments *AssessmentService
}

func NewCertificateService(db *gorm.DB) *CertificateService {
	return &CertificateService{
		db:          db,
		enrollments: NewEnrollmentService(db),
		assessments: NewAssessmentService(db),
	}
}

// IsEligible reports whether the user may receive the course certificate.
// Progress must be at least 99: the percentage is rounded up from lesson
// counts, so a 99 reading can already mean everything is completed.
// When the course has a required final exam the latest attempt must have
// passed; a course without an exam satisfies that condition vacuously.
func (s *CertificateService) IsEligible(userID, courseID uint) (bool, error) {
	enrollment, err := s.enrollments.Get(userID, courseID)
	if err != nil {
		if errors.Is(err, ErrNotEnrolled) {
			return false, nil
		}
		return false, err
	}
	if enrollment.Progress < 99 {
		return false, nil
	}

	exam, err := s.assessments.ExamForCourse(courseID)
	if err != nil {
		return false, err
	}
	if exam == nil || !exam.Required {
		return true, nil
	}

	last, err := s.assessments.LastAttempt(userID, exam.ID)
	if err != nil {
		return false, err
	}
	return last != nil && last.Passed, nil
}

// Issue creates the certificate record once eligibility holds. Issuing
// is idempotent per (user, course): repeat calls return the existing
// certificate.
func (s *CertificateService) Issue(userID, courseID uint) (*courseModels.Certificate, error) {
	var existing courseModels.Certificate
	err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("fetch certificate: %w", err)
	}

	eligible, err := s.IsEligible(userID, courseID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrNotEligible
	}

	cert := courseModels.Certificate{
		UserID:       userID,
		CourseID:     courseID,
		SerialNumber: uuid.NewString(),
		IssuedAt:     time.Now(),
	}
	if err := s.db.Create(&cert).Error; err != nil {
		if isUniqueViolation(err) {
			// Concurrent issue: fetch whichever insert won.
			if ferr := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).
				First(&cert).Error; ferr == nil {
				return &cert, nil
			}
		}
		return nil, fmt.Errorf("create certificate: %w", err)
	}
	return &cert, nil
}

// ForUser lists the user's issued certificates, newest first
func (s *CertificateService) ForUser(userID uint) ([]courseModels.Certificate, error) {
	var certs []courseModels.Certificate
	if err := s.db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("issued_at desc").Find(&certs).Error; err != nil {
		return nil, fmt.Errorf("fetch certificates: %w", err)
	}
	return certs, nil
}
