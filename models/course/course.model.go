package course

import "gorm.io/gorm"

// Category groups courses for browsing
type Category struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	Slug      string `json:"slug" gorm:"uniqueIndex"`
	IsDeleted bool   `gorm:"default:false"`
}

// Course represents a learning course
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Description  string  `json:"description" gorm:"type:text"`
	Price        float64 `json:"price" gorm:"default:0"` // 0 means free
	CategoryID   uint    `json:"category_id" gorm:"index"`
	InstructorID uint    `json:"instructor_id" gorm:"index"`
	ThumbnailURL string  `json:"thumbnail_url"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`

	// Denormalized counters, refreshed by the stats scheduler
	Rating       float64 `json:"rating" gorm:"default:0"`
	StudentCount int64   `json:"student_count" gorm:"default:0"`

	IsDeleted bool `gorm:"default:false"`
}
