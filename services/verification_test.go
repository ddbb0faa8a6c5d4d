package services

import (
	"fmt"
	"regexp"
	"testing"

	courseModels "academia/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codeShape = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestCodeGenerationIsUniqueAcrossUsers(t *testing.T) {
	db := testDB(t)
	verification := NewVerificationService(db)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		user := createUser(t, db, fmt.Sprintf("user%d@example.com", i))

		code, err := verification.GetOrCreateCode(user.ID)
		require.NoError(t, err)
		require.Regexp(t, codeShape, code)

		_, dup := seen[code]
		require.False(t, dup, "code %q issued twice", code)
		seen[code] = struct{}{}
	}
}

func TestCodeIsStablePerUser(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	verification := NewVerificationService(db)

	first, err := verification.GetOrCreateCode(user.ID)
	require.NoError(t, err)
	second, err := verification.GetOrCreateCode(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestToggleVisibility(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	verification := NewVerificationService(db)

	visible, err := verification.ToggleVisibility(user.ID)
	require.NoError(t, err)
	assert.True(t, visible)

	visible, err = verification.ToggleVisibility(user.ID)
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestResolvePublicProfile(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	instructor := createUser(t, db, "teacher@example.com")

	category := courseModels.Category{Name: "Backend", Slug: "backend"}
	require.NoError(t, db.Create(&category).Error)

	course := courseModels.Course{
		Title:        "Test Course",
		Price:        0,
		IsPublished:  true,
		CategoryID:   category.ID,
		InstructorID: instructor.ID,
	}
	require.NoError(t, db.Create(&course).Error)
	lessons := createLessons(t, db, course.ID, 2)

	_, err := NewEnrollmentService(db).Enroll(user.ID, course.ID)
	require.NoError(t, err)

	progress := NewProgressService(db)
	for _, lesson := range lessons {
		require.NoError(t, progress.MarkLessonCompleted(user.ID, lesson.ID))
	}

	verification := NewVerificationService(db)
	code, err := verification.GetOrCreateCode(user.ID)
	require.NoError(t, err)

	// Private until the owner opts in
	_, err = verification.ResolvePublicProfile(code)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = verification.ToggleVisibility(user.ID)
	require.NoError(t, err)

	profile, err := verification.ResolvePublicProfile(code)
	require.NoError(t, err)
	assert.Equal(t, user.Name, profile.Name)
	assert.Equal(t, code, profile.VerificationCode)
	require.Len(t, profile.CompletedCourses, 1)

	completed := profile.CompletedCourses[0]
	assert.Equal(t, course.ID, completed.CourseID)
	assert.Equal(t, "Backend", completed.Category)
	assert.Equal(t, instructor.Name, completed.InstructorName)
	assert.NotNil(t, completed.CompletedAt)

	// Both 10 minute lessons completed without watch telemetry fall
	// back to their durations.
	assert.Equal(t, 1200, profile.TotalStudySeconds)
}

func TestResolveUnknownCode(t *testing.T) {
	db := testDB(t)

	_, err := NewVerificationService(db).ResolvePublicProfile("ZZZZ9999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIncompleteCoursesStayOffProfile(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)
	lessons := createLessons(t, db, course.ID, 3)

	_, err := NewEnrollmentService(db).Enroll(user.ID, course.ID)
	require.NoError(t, err)
	require.NoError(t, NewProgressService(db).MarkLessonCompleted(user.ID, lessons[0].ID))

	verification := NewVerificationService(db)
	code, err := verification.GetOrCreateCode(user.ID)
	require.NoError(t, err)
	_, err = verification.ToggleVisibility(user.ID)
	require.NoError(t, err)

	profile, err := verification.ResolvePublicProfile(code)
	require.NoError(t, err)
	assert.Empty(t, profile.CompletedCourses)
}
