package utils

import (
	"academia/database"
	courseModels "academia/models/course"
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func logScheduler(message string) {
	log.Printf("[STATS-SCHEDULER] %s", message)
}

// RefreshCourseCounters rewrites the denormalized per-course student
// counters from the enrollment table. Enrollment inserts bump the
// counter optimistically; this pass corrects any drift.
func RefreshCourseCounters(db *gorm.DB) {
	var courses []courseModels.Course
	if err := db.Where("is_deleted = ?", false).Find(&courses).Error; err != nil {
		logScheduler("Failed to load courses: " + err.Error())
		return
	}

	for _, c := range courses {
		var count int64
		db.Model(&courseModels.Enrollment{}).
			Where("course_id = ? AND is_deleted = ?", c.ID, false).
			Count(&count)

		if count != c.StudentCount {
			db.Model(&courseModels.Course{}).Where("id = ?", c.ID).
				UpdateColumn("student_count", count)
		}
	}
}

// InitializeStatsScheduler starts the nightly counter refresh
func InitializeStatsScheduler() *cron.Cron {
	logScheduler("Initializing stats scheduler...")

	c := cron.New()

	c.AddFunc("0 3 * * *", func() {
		logScheduler("Refreshing course counters")
		RefreshCourseCounters(database.Database.Db)
	})

	c.Start()

	logScheduler("Stats scheduler initialized")
	return c
}
