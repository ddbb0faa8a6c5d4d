package services

import (
	"testing"
	"time"

	courseModels "academia/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRecordsImmutableAttempts(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)
	lesson := createLessons(t, db, course.ID, 1)[0]

	quiz := courseModels.Assessment{
		Kind:      courseModels.KindQuiz,
		CourseID:  course.ID,
		LessonID:  &lesson.ID,
		PassScore: 100,
		Required:  true,
	}
	require.NoError(t, db.Create(&quiz).Error)

	q := courseModels.Question{AssessmentID: quiz.ID, Type: courseModels.QuestionSingle, Prompt: "2+2?"}
	require.NoError(t, db.Create(&q).Error)
	right := courseModels.Option{QuestionID: q.ID, Text: "4", IsCorrect: true}
	wrong := courseModels.Option{QuestionID: q.ID, Text: "5"}
	require.NoError(t, db.Create(&right).Error)
	require.NoError(t, db.Create(&wrong).Error)

	svc := NewAssessmentService(db)

	// First attempt fails
	attempt, result, err := svc.Submit(user.ID, quiz.ID, []Answer{{QuestionID: q.ID, SelectedOptionIDs: []uint{wrong.ID}}})
	require.NoError(t, err)
	assert.Equal(t, 0, attempt.Score)
	assert.False(t, result.Passed)

	// Force a distinct created_at so ordering is deterministic
	db.Model(attempt).Update("created_at", time.Now().Add(-time.Minute))

	// Second attempt passes
	attempt2, result2, err := svc.Submit(user.ID, quiz.ID, []Answer{{QuestionID: q.ID, SelectedOptionIDs: []uint{right.ID}}})
	require.NoError(t, err)
	assert.Equal(t, 100, attempt2.Score)
	assert.True(t, result2.Passed)

	// Both attempts stay in history; the latest defines current state
	var count int64
	db.Model(&courseModels.Attempt{}).Where("user_id = ? AND assessment_id = ?", user.ID, quiz.ID).Count(&count)
	assert.EqualValues(t, 2, count)

	last, err := svc.LastAttempt(user.ID, quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.Passed)
	assert.Equal(t, attempt2.ID, last.ID)
}

func TestLastAttemptNilWhenNone(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")

	last, err := NewAssessmentService(db).LastAttempt(user.ID, 42)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestGatePassed(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "student@example.com")
	course := createCourse(t, db, 0)
	lessons := createLessons(t, db, course.ID, 2)

	svc := NewAssessmentService(db)

	// A lesson without a quiz gates nothing
	passed, err := svc.GatePassed(user.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.True(t, passed)

	quiz := courseModels.Assessment{
		Kind:      courseModels.KindQuiz,
		CourseID:  course.ID,
		LessonID:  &lessons[1].ID,
		PassScore: 100,
		Required:  true,
	}
	require.NoError(t, db.Create(&quiz).Error)
	q := courseModels.Question{AssessmentID: quiz.ID, Type: courseModels.QuestionTrueFalse, Prompt: "Go has generics."}
	require.NoError(t, db.Create(&q).Error)
	right := courseModels.Option{QuestionID: q.ID, Text: "True", IsCorrect: true}
	wrong := courseModels.Option{QuestionID: q.ID, Text: "False"}
	require.NoError(t, db.Create(&right).Error)
	require.NoError(t, db.Create(&wrong).Error)

	// Required quiz with no attempts blocks
	passed, err = svc.GatePassed(user.ID, lessons[1].ID)
	require.NoError(t, err)
	assert.False(t, passed)

	// Failing attempt still blocks
	_, _, err = svc.Submit(user.ID, quiz.ID, []Answer{{QuestionID: q.ID, SelectedOptionIDs: []uint{wrong.ID}}})
	require.NoError(t, err)
	passed, err = svc.GatePassed(user.ID, lessons[1].ID)
	require.NoError(t, err)
	assert.False(t, passed)

	// Passing attempt unblocks
	_, _, err = svc.Submit(user.ID, quiz.ID, []Answer{{QuestionID: q.ID, SelectedOptionIDs: []uint{right.ID}}})
	require.NoError(t, err)
	passed, err = svc.GatePassed(user.ID, lessons[1].ID)
	require.NoError(t, err)
	assert.True(t, passed)

	// An optional quiz never blocks
	db.Model(&quiz).Update("required", false)
	db.Where("assessment_id = ?", quiz.ID).Delete(&courseModels.Attempt{})
	passed, err = svc.GatePassed(user.ID, lessons[1].ID)
	require.NoError(t, err)
	assert.True(t, passed)
}
