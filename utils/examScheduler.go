package utils

import (
	"edadmin/database"
	courseModels "edadmin/models/course"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[EXAM-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// InitializeExamScheduler starts the validity sweep that deactivates exams
// whose validity timestamp has passed
func InitializeExamScheduler() {
	logScheduler("Initializing exam validity scheduler...")

	c := cron.New()

	// Run every 15 minutes
	c.AddFunc("*/15 * * * *", func() {
		ExpireExams()
	})

	c.Start()
	logScheduler("Exam validity scheduler started - runs every 15 minutes")
}

// ExpireExams flips Active exams past their validity to Inactive
func ExpireExams() {
	db := database.Database.Db
	now := time.Now()

	var expired []courseModels.CourseContent
	if err := db.
		Where("content_type = ? AND exam_status = ? AND is_deleted = ?", courseModels.ContentTypeExam, courseModels.ExamStatusActive, false).
		Where("validity IS NOT NULL AND validity <= ?", now).
		Find(&expired).Error; err != nil {
		logScheduler("Error fetching expired exams: " + err.Error())
		return
	}

	for _, content := range expired {
		content.ExamStatus = courseModels.ExamStatusInactive
		if err := db.Save(&content).Error; err != nil {
			logScheduler("Error deactivating exam: " + err.Error())
			continue
		}
		logScheduler("Exam deactivated past validity: " + content.Title)
	}

	if len(expired) > 0 {
		logScheduler("Validity sweep complete")
	}
}
