package services

import (
	"testing"

	courseModels "academia/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func claimDetails() datatypes.JSON {
	return datatypes.JSON([]byte(`{"full_name":"Maria Perez","id_number":"V12345678","reference":"493021"}`))
}

func TestCreatePaymentRequest(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 29.99)

	payments := NewPaymentService(db)

	request, err := payments.CreateRequest(user.ID, course.ID, courseModels.MethodPagoMovil, claimDetails())
	require.NoError(t, err)
	assert.Equal(t, courseModels.PaymentPending, request.Status)

	// Second claim while one is still pending is rejected
	_, err = payments.CreateRequest(user.ID, course.ID, courseModels.MethodBinance, claimDetails())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreatePaymentRequestUnknownCourse(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")

	_, err := NewPaymentService(db).CreateRequest(user.ID, 9999, courseModels.MethodPaypal, claimDetails())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePaymentRequestAlreadyEnrolled(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 29.99)

	_, err := NewEnrollmentService(db).Enroll(user.ID, course.ID)
	require.NoError(t, err)

	_, err = NewPaymentService(db).CreateRequest(user.ID, course.ID, courseModels.MethodPagoMovil, claimDetails())
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestApproveEnrollsExactlyOnce(t *testing.T) {
	db := testDB(t)
	student := createUser(t, db, "student@example.com")
	admin := createUser(t, db, "admin@example.com")
	course := createCourse(t, db, 29.99)

	payments := NewPaymentService(db)

	request, err := payments.CreateRequest(student.ID, course.ID, courseModels.MethodPagoMovil, claimDetails())
	require.NoError(t, err)

	approved, err := payments.Approve(request.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.PaymentApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, admin.ID, *approved.ReviewedBy)
	assert.NotNil(t, approved.ReviewedAt)

	// A second approve races against the first and must lose
	_, err = payments.Approve(request.ID, admin.ID)
	assert.ErrorIs(t, err, ErrConflict)

	var enrollmentCount int64
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&enrollmentCount).Error)
	assert.Equal(t, int64(1), enrollmentCount)

	var approvedCount int64
	require.NoError(t, db.Model(&courseModels.PaymentRequest{}).
		Where("id = ? AND status = ?", request.ID, courseModels.PaymentApproved).
		Count(&approvedCount).Error)
	assert.Equal(t, int64(1), approvedCount)
}

func TestRejectDoesNotEnroll(t *testing.T) {
	db := testDB(t)
	student := createUser(t, db, "student@example.com")
	admin := createUser(t, db, "admin@example.com")
	course := createCourse(t, db, 29.99)

	payments := NewPaymentService(db)

	request, err := payments.CreateRequest(student.ID, course.ID, courseModels.MethodPagoMovil, claimDetails())
	require.NoError(t, err)

	rejected, err := payments.Reject(request.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.PaymentRejected, rejected.Status)

	enrolled, err := NewEnrollmentService(db).IsEnrolled(student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	// Cannot flip a settled request
	_, err = payments.Approve(request.ID, admin.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRejectedClaimAllowsRetry(t *testing.T) {
	db := testDB(t)
	student := createUser(t, db, "student@example.com")
	admin := createUser(t, db, "admin@example.com")
	course := createCourse(t, db, 29.99)

	payments := NewPaymentService(db)

	first, err := payments.CreateRequest(student.ID, course.ID, courseModels.MethodPagoMovil, claimDetails())
	require.NoError(t, err)
	_, err = payments.Reject(first.ID, admin.ID)
	require.NoError(t, err)

	second, err := payments.CreateRequest(student.ID, course.ID, courseModels.MethodBinance, claimDetails())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestPendingListsOnlyPending(t *testing.T) {
	db := testDB(t)
	student := createUser(t, db, "student@example.com")
	admin := createUser(t, db, "admin@example.com")
	courseA := createCourse(t, db, 29.99)
	courseB := createCourse(t, db, 49.99)

	payments := NewPaymentService(db)

	settled, err := payments.CreateRequest(student.ID, courseA.ID, courseModels.MethodPagoMovil, claimDetails())
	require.NoError(t, err)
	_, err = payments.Reject(settled.ID, admin.ID)
	require.NoError(t, err)

	open, err := payments.CreateRequest(student.ID, courseB.ID, courseModels.MethodPaypal, claimDetails())
	require.NoError(t, err)

	pending, err := payments.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, open.ID, pending[0].ID)
}
