package services

import (
	"testing"

	courseModels "academia/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeIsIdempotent(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)
	lessons := createLessons(t, db, course.ID, 3)

	enrollments := NewEnrollmentService(db)
	_, err := enrollments.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	progress := NewProgressService(db)
	require.NoError(t, progress.MarkLessonCompleted(user.ID, lessons[0].ID))

	first, err := enrollments.Get(user.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, progress.RecomputeCourseProgress(user.ID, course.ID))
	second, err := enrollments.Get(user.ID, course.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Progress, second.Progress)
	assert.Equal(t, 33, second.Progress)
}

func TestMarkLessonCompletedTwiceDoesNotInflate(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)
	lessons := createLessons(t, db, course.ID, 2)

	_, err := NewEnrollmentService(db).Enroll(user.ID, course.ID)
	require.NoError(t, err)

	progress := NewProgressService(db)
	require.NoError(t, progress.MarkLessonCompleted(user.ID, lessons[0].ID))
	require.NoError(t, progress.MarkLessonCompleted(user.ID, lessons[0].ID))

	enrollment, err := NewEnrollmentService(db).Get(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, enrollment.Progress)
}

func TestSetProgressCompletionTimestamp(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)

	enrollments := NewEnrollmentService(db)
	_, err := enrollments.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	progress := NewProgressService(db)

	require.NoError(t, progress.SetProgress(user.ID, course.ID, 80))
	e, err := enrollments.Get(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, e.Progress)
	assert.Nil(t, e.CompletedAt)

	require.NoError(t, progress.SetProgress(user.ID, course.ID, 100))
	e, err = enrollments.Get(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, e.Progress)
	assert.NotNil(t, e.CompletedAt)

	// A data correction below 100 must clear the stale timestamp
	require.NoError(t, progress.SetProgress(user.ID, course.ID, 90))
	e, err = enrollments.Get(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, e.Progress)
	assert.Nil(t, e.CompletedAt)
}

func TestSetProgressClamps(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)

	enrollments := NewEnrollmentService(db)
	_, err := enrollments.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	progress := NewProgressService(db)

	require.NoError(t, progress.SetProgress(user.ID, course.ID, 150))
	e, _ := enrollments.Get(user.ID, course.ID)
	assert.Equal(t, 100, e.Progress)

	require.NoError(t, progress.SetProgress(user.ID, course.ID, -10))
	e, _ = enrollments.Get(user.ID, course.ID)
	assert.Equal(t, 0, e.Progress)
}

func TestRecomputeSkipsEmptyCourse(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)

	enrollments := NewEnrollmentService(db)
	_, err := enrollments.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	// No lessons: recompute must leave the enrollment untouched
	require.NoError(t, NewProgressService(db).RecomputeCourseProgress(user.ID, course.ID))

	e, err := enrollments.Get(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, e.Progress)
	assert.Nil(t, e.CompletedAt)
}

func TestFreeCourseEndToEnd(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)
	lessons := createLessons(t, db, course.ID, 3)

	enrollments := NewEnrollmentService(db)
	enrollment, err := enrollments.Enroll(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, enrollment.Progress)

	progress := NewProgressService(db)

	require.NoError(t, progress.MarkLessonCompleted(user.ID, lessons[0].ID))
	e, _ := enrollments.Get(user.ID, course.ID)
	assert.Equal(t, 33, e.Progress)

	require.NoError(t, progress.MarkLessonCompleted(user.ID, lessons[1].ID))
	e, _ = enrollments.Get(user.ID, course.ID)
	assert.Equal(t, 67, e.Progress)

	require.NoError(t, progress.MarkLessonCompleted(user.ID, lessons[2].ID))
	e, _ = enrollments.Get(user.ID, course.ID)
	assert.Equal(t, 100, e.Progress)
	assert.NotNil(t, e.CompletedAt)

	// No exam on this course: the certificate is available
	eligible, err := NewCertificateService(db).IsEligible(user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, eligible)
}

func TestCourseStudyTimeFallsBackToDuration(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)
	lessons := createLessons(t, db, course.ID, 2) // 10 minutes each

	_, err := NewEnrollmentService(db).Enroll(user.ID, course.ID)
	require.NoError(t, err)

	progress := NewProgressService(db)
	require.NoError(t, progress.RecordWatchTime(user.ID, lessons[0].ID, 300))
	require.NoError(t, progress.MarkLessonCompleted(user.ID, lessons[0].ID))
	require.NoError(t, progress.MarkLessonCompleted(user.ID, lessons[1].ID))

	seconds, err := progress.CourseStudyTime(user.ID, course.ID)
	require.NoError(t, err)
	// 300s recorded + the second lesson's nominal 10 minutes
	assert.Equal(t, 300+600, seconds)
}

func TestEnrollIsIdempotent(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)

	enrollments := NewEnrollmentService(db)
	_, err := enrollments.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	_, err = enrollments.Enroll(user.ID, course.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	var count int64
	db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}
