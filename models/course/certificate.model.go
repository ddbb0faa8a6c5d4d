package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued certificate for course completion
type Certificate struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"uniqueIndex:idx_cert_user_course;not null"`
	CourseID     uint      `json:"course_id" gorm:"uniqueIndex:idx_cert_user_course;not null"`
	SerialNumber string    `json:"serial_number" gorm:"unique"`
	IssuedAt     time.Time `json:"issued_at"`
	IsDeleted    bool      `gorm:"default:false"`
}
