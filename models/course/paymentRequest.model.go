package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment methods accepted for manual review
const (
	MethodPagoMovil = "pago_movil"
	MethodBinance   = "binance"
	MethodPaypal    = "paypal"
)

// Payment request statuses
const (
	PaymentPending  = "PENDING"
	PaymentApproved = "APPROVED"
	PaymentRejected = "REJECTED"
)

// PaymentRequest is a student's manual payment claim for a paid course.
// No gateway is involved: an administrator reviews the claim and either
// approves it (which enrolls the student) or rejects it. Once resolved
// the status is terminal.
type PaymentRequest struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"index;not null"`
	CourseID uint   `json:"course_id" gorm:"index;not null"`
	Method   string `json:"method" gorm:"not null"` // pago_movil, binance, paypal

	// Free-form claim payload: full name, ID number, reference digits,
	// method-specific fields, experience notes.
	Details datatypes.JSON `json:"details"`

	Status     string     `json:"status" gorm:"default:'PENDING';index"`
	ReviewedBy *uint      `json:"reviewed_by"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	IsDeleted  bool       `gorm:"default:false"`
}
