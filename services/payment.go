package services

import (
	"errors"
	"fmt"
	"time"

	courseModels "academia/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentService records manual payment claims and resolves them. No
// payment gateway is involved; admins review claims by hand.
type PaymentService struct {
	db          *gorm.DB
	enrollments *EnrollmentService
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db, enrollments: NewEnrollmentService(db)}
}

// CreateRequest files a pending payment claim for a paid course. The
// claimed amount is not validated against the course price in this
// version; the reviewing admin checks it by hand.
func (s *PaymentService) CreateRequest(userID, courseID uint, method string, details datatypes.JSON) (*courseModels.PaymentRequest, error) {
	var course courseModels.Course
	if err := s.db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch course: %w", err)
	}

	enrolled, err := s.enrollments.IsEnrolled(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	// Only one open claim per (user, course) at a time.
	var pending int64
	if err := s.db.Model(&courseModels.PaymentRequest{}).
		Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
			userID, courseID, courseModels.PaymentPending, false).
		Count(&pending).Error; err != nil {
		return nil, fmt.Errorf("check pending requests: %w", err)
	}
	if pending > 0 {
		return nil, ErrConflict
	}

	request := courseModels.PaymentRequest{
		UserID:   userID,
		CourseID: courseID,
		Method:   method,
		Details:  details,
		Status:   courseModels.PaymentPending,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("create payment request: %w", err)
	}
	return &request, nil
}

// Approve transitions a pending request to approved and enrolls the
// student, as one transaction: if the enrollment insert fails the
// approval rolls back so the request can be retried. The status guard is
// a conditional update, so a second concurrent approval sees zero rows
// affected and fails with ErrConflict instead of double-processing.
func (s *PaymentService) Approve(requestID, reviewerID uint) (*courseModels.PaymentRequest, error) {
	var request courseModels.PaymentRequest

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", requestID, false).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("fetch payment request: %w", err)
		}

		now := time.Now()
		res := tx.Model(&courseModels.PaymentRequest{}).
			Where("id = ? AND status = ?", requestID, courseModels.PaymentPending).
			Updates(map[string]interface{}{
				"status":      courseModels.PaymentApproved,
				"reviewed_by": reviewerID,
				"reviewed_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("approve payment request: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		enrollments := NewEnrollmentService(tx)
		if _, err := enrollments.Enroll(request.UserID, request.CourseID); err != nil && !errors.Is(err, ErrAlreadyEnrolled) {
			return err
		}

		request.Status = courseModels.PaymentApproved
		request.ReviewedBy = &reviewerID
		request.ReviewedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Reject transitions a pending request to rejected with the same
// pending-status guard as Approve.
func (s *PaymentService) Reject(requestID, reviewerID uint) (*courseModels.PaymentRequest, error) {
	var request courseModels.PaymentRequest
	if err := s.db.Where("id = ? AND is_deleted = ?", requestID, false).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch payment request: %w", err)
	}

	now := time.Now()
	res := s.db.Model(&courseModels.PaymentRequest{}).
		Where("id = ? AND status = ?", requestID, courseModels.PaymentPending).
		Updates(map[string]interface{}{
			"status":      courseModels.PaymentRejected,
			"reviewed_by": reviewerID,
			"reviewed_at": now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("reject payment request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrConflict
	}

	request.Status = courseModels.PaymentRejected
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &now
	return &request, nil
}

// Pending lists unresolved requests, oldest first
func (s *PaymentService) Pending() ([]courseModels.PaymentRequest, error) {
	var requests []courseModels.PaymentRequest
	if err := s.db.Where("status = ? AND is_deleted = ?", courseModels.PaymentPending, false).
		Order("created_at asc").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("fetch pending requests: %w", err)
	}
	return requests, nil
}

// ForUser lists the user's own requests, newest first
func (s *PaymentService) ForUser(userID uint) ([]courseModels.PaymentRequest, error) {
	var requests []courseModels.PaymentRequest
	if err := s.db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("fetch payment requests: %w", err)
	}
	return requests, nil
}
