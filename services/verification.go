package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"academia/models"
	courseModels "academia/models/course"

	"gorm.io/gorm"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 8
	codeRetries  = 5
)

// VerificationService manages the public CV profile: the shareable
// verification code, visibility, and the read-only public projection.
type VerificationService struct {
	db       *gorm.DB
	rng      *rand.Rand
	progress *ProgressService
}

func NewVerificationService(db *gorm.DB) *VerificationService {
	return &VerificationService{
		db:       db,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		progress: NewProgressService(db),
	}
}

// CompletedCourse is one entry in the public CV
type CompletedCourse struct {
	CourseID       uint       `json:"course_id"`
	Title          string     `json:"title"`
	Category       string     `json:"category"`
	InstructorName string     `json:"instructor_name"`
	CompletedAt    *time.Time `json:"completed_at"`
}

// PublicProfile is the read-only projection resolved from a code
type PublicProfile struct {
	Name              string            `json:"name"`
	ProfileImage      string            `json:"profile_image"`
	VerificationCode  string            `json:"verification_code"`
	CompletedCourses  []CompletedCourse `json:"completed_courses"`
	TotalStudySeconds int               `json:"total_study_seconds"`
}

// GetOrCreateCode returns the user's verification code, generating a
// fresh unique one on first request. Generation retries a handful of
// times on collision before giving up.
func (s *VerificationService) GetOrCreateCode(userID uint) (string, error) {
	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("fetch user: %w", err)
	}
	if user.VerificationCode != nil {
		return *user.VerificationCode, nil
	}

	for attempt := 0; attempt < codeRetries; attempt++ {
		code := s.newCode()

		var count int64
		if err := s.db.Model(&models.User{}).Where("verification_code = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("check code uniqueness: %w", err)
		}
		if count > 0 {
			continue
		}

		if err := s.db.Model(&user).Update("verification_code", code).Error; err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return "", fmt.Errorf("save verification code: %w", err)
		}
		return code, nil
	}
	return "", ErrGenerationExhausted
}

// ToggleVisibility flips the public flag and returns the new state
func (s *VerificationService) ToggleVisibility(userID uint) (bool, error) {
	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("fetch user: %w", err)
	}

	newState := !user.IsPublic
	if err := s.db.Model(&user).Update("is_public", newState).Error; err != nil {
		return false, fmt.Errorf("update visibility: %w", err)
	}
	return newState, nil
}

// ResolvePublicProfile resolves a verification code to the public CV.
// It returns ErrNotFound unless a profile carries the code and has
// opted into public visibility.
func (s *VerificationService) ResolvePublicProfile(code string) (*PublicProfile, error) {
	var user models.User
	err := s.db.Where("verification_code = ? AND is_public = ? AND is_deleted = ?", code, true, false).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve code: %w", err)
	}

	var enrollments []courseModels.Enrollment
	if err := s.db.Where("user_id = ? AND progress = ? AND is_deleted = ?", user.ID, 100, false).
		Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("fetch completed enrollments: %w", err)
	}

	profile := PublicProfile{
		Name:             user.Name,
		ProfileImage:     user.ProfileImage,
		VerificationCode: code,
	}

	for _, e := range enrollments {
		var c courseModels.Course
		if err := s.db.Where("id = ?", e.CourseID).First(&c).Error; err != nil {
			continue
		}

		var category courseModels.Category
		s.db.Where("id = ?", c.CategoryID).First(&category)
		var instructor models.User
		s.db.Where("id = ?", c.InstructorID).First(&instructor)

		profile.CompletedCourses = append(profile.CompletedCourses, CompletedCourse{
			CourseID:       c.ID,
			Title:          c.Title,
			Category:       category.Name,
			InstructorName: instructor.Name,
			CompletedAt:    e.CompletedAt,
		})

		seconds, err := s.progress.CourseStudyTime(user.ID, c.ID)
		if err == nil {
			profile.TotalStudySeconds += seconds
		}
	}

	return &profile, nil
}

func (s *VerificationService) newCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = codeAlphabet[s.rng.Intn(len(codeAlphabet))]
	}
	return string(code)
}
