package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage     string     `gorm:"default:''"`
	Name             string     `gorm:"default:''"`
	Email            string     `gorm:"unique;not null"`
	Mobile           string     `gorm:"default:''"`
	Role             string     `gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	Password         string     `gorm:"not null"`
	IsEmailVerified  bool       `gorm:"default:false"`
	LastLogin        *time.Time `json:"last_login"`

	// Public CV profile. VerificationCode is assigned lazily the first
	// time the user asks for a shareable profile link and never changes
	// afterwards.
	IsPublic         bool    `gorm:"default:false" json:"is_public"`
	VerificationCode *string `gorm:"uniqueIndex;size:8" json:"verification_code"`

	FailedLoginAttempts int        `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsBlocked           bool       `gorm:"default:false"`
	IsDeleted           bool       `gorm:"default:false"`
}
