package services

import (
	"testing"

	"academia/models"
	courseModels "academia/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Category{},
		&courseModels.Course{},
		&courseModels.Lesson{},
		&courseModels.LessonProgress{},
		&courseModels.Enrollment{},
		&courseModels.Assessment{},
		&courseModels.Question{},
		&courseModels.Option{},
		&courseModels.Attempt{},
		&courseModels.PaymentRequest{},
		&courseModels.Certificate{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, price float64) courseModels.Course {
	t.Helper()
	course := courseModels.Course{
		Title:       "Test Course",
		Description: "A course used in tests",
		Price:       price,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createLessons(t *testing.T, db *gorm.DB, courseID uint, n int) []courseModels.Lesson {
	t.Helper()
	lessons := make([]courseModels.Lesson, n)
	for i := 0; i < n; i++ {
		lessons[i] = courseModels.Lesson{
			CourseID:        courseID,
			Title:           "Lesson",
			OrderIndex:      (i + 1) * 10,
			DurationMinutes: 10,
		}
		require.NoError(t, db.Create(&lessons[i]).Error)
	}
	return lessons
}
