package services

import "errors"

// Sentinel errors returned by the services. Controllers map these onto
// HTTP statuses; anything else is a store failure and surfaces as a
// generic 500 with the underlying message logged.
var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("already processed")
	ErrAlreadyEnrolled     = errors.New("already enrolled")
	ErrNotEnrolled         = errors.New("not enrolled")
	ErrNotEligible         = errors.New("not eligible")
	ErrQuizNotPassed       = errors.New("required quiz not passed")
	ErrGenerationExhausted = errors.New("verification code generation exhausted")
)
