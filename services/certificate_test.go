package services

import (
	"testing"

	courseModels "academia/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibilityProgressBoundary(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)

	_, err := NewEnrollmentService(db).Enroll(user.ID, course.ID)
	require.NoError(t, err)

	progress := NewProgressService(db)
	certs := NewCertificateService(db)

	// 99 is enough: the percentage rounds up from lesson counts
	require.NoError(t, progress.SetProgress(user.ID, course.ID, 99))
	eligible, err := certs.IsEligible(user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, eligible)

	require.NoError(t, progress.SetProgress(user.ID, course.ID, 98))
	eligible, err = certs.IsEligible(user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, eligible)
}

func TestEligibilityRequiresExamPass(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)

	_, err := NewEnrollmentService(db).Enroll(user.ID, course.ID)
	require.NoError(t, err)
	require.NoError(t, NewProgressService(db).SetProgress(user.ID, course.ID, 100))

	exam := courseModels.Assessment{
		Kind:      courseModels.KindExam,
		CourseID:  course.ID,
		PassScore: 70,
		Required:  true,
	}
	require.NoError(t, db.Create(&exam).Error)
	q := courseModels.Question{AssessmentID: exam.ID, Type: courseModels.QuestionSingle, Prompt: "Final question"}
	require.NoError(t, db.Create(&q).Error)
	right := courseModels.Option{QuestionID: q.ID, Text: "right", IsCorrect: true}
	wrong := courseModels.Option{QuestionID: q.ID, Text: "wrong"}
	require.NoError(t, db.Create(&right).Error)
	require.NoError(t, db.Create(&wrong).Error)

	certs := NewCertificateService(db)

	// Full progress but no passing attempt: not eligible
	eligible, err := certs.IsEligible(user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, eligible)

	_, _, err = NewAssessmentService(db).Submit(user.ID, exam.ID, []Answer{{QuestionID: q.ID, SelectedOptionIDs: []uint{right.ID}}})
	require.NoError(t, err)

	eligible, err = certs.IsEligible(user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, eligible)
}

func TestEligibilityOptionalExamDoesNotGate(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)

	_, err := NewEnrollmentService(db).Enroll(user.ID, course.ID)
	require.NoError(t, err)
	require.NoError(t, NewProgressService(db).SetProgress(user.ID, course.ID, 100))

	exam := courseModels.Assessment{
		Kind:      courseModels.KindExam,
		CourseID:  course.ID,
		PassScore: 70,
		Required:  false,
	}
	require.NoError(t, db.Create(&exam).Error)

	eligible, err := NewCertificateService(db).IsEligible(user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, eligible)
}

func TestEligibilityWithoutEnrollment(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)

	eligible, err := NewCertificateService(db).IsEligible(user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, eligible)
}

func TestIssueIsIdempotent(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)

	_, err := NewEnrollmentService(db).Enroll(user.ID, course.ID)
	require.NoError(t, err)
	require.NoError(t, NewProgressService(db).SetProgress(user.ID, course.ID, 100))

	certs := NewCertificateService(db)

	first, err := certs.Issue(user.ID, course.ID)
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f-]{36}$`, first.SerialNumber)

	second, err := certs.Issue(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.SerialNumber, second.SerialNumber)
}

func TestIssueRefusedWhenNotEligible(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)

	_, err := NewEnrollmentService(db).Enroll(user.ID, course.ID)
	require.NoError(t, err)
	require.NoError(t, NewProgressService(db).SetProgress(user.ID, course.ID, 50))

	_, err = NewCertificateService(db).Issue(user.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotEligible)
}
