package attemptController

import (
	"edadmin/database"
	"edadmin/middleware"
	"edadmin/models"
	courseModels "edadmin/models/course"
	"edadmin/utils"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SubmitAnswer is one submitted answer. Answer is a string for typed answers
// or a list of image URLs for handwritten ones.
type SubmitAnswer struct {
	Question uint            `json:"question"`
	Answer   json.RawMessage `json:"answer"`
}

// SubmitAttemptRequest is the attempt submission payload
type SubmitAttemptRequest struct {
	Answers   []SubmitAnswer `json:"answers"`
	StartedAt string         `json:"started_at"`
	EndedAt   string         `json:"ended_at"`
}

// UpdateCQMarksRequest carries the complete mark array for one attempt. The
// array replaces the stored answers wholesale; there is no per-question patch.
type UpdateCQMarksRequest struct {
	Marks []courseModels.AttemptAnswer `json:"marks"`
}

func decodeAnswerString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// SubmitExamAttempt records a student's attempt. MCQ and GAPS attempts are
// scored immediately; CQ attempts stay unchecked until a reviewer enters
// marks.
func SubmitExamAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	examID := c.Locals("examID").(int)

	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND content_type = ? AND is_deleted = ?", examID, courseModels.ContentTypeExam, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	if content.ExamStatus != courseModels.ExamStatusActive {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Exam is not active!", nil)
	}

	if content.Validity != nil && content.Validity.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Exam validity has expired!", nil)
	}

	// Check enrollment
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, content.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	reqData, ok := c.Locals("validatedAttempt").(*SubmitAttemptRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var rightCount, wrongCount int
	var obtained float64
	checked := content.QuestionType != models.QuestionTypeCQ

	entries := make([]courseModels.AttemptAnswer, len(reqData.Answers))
	for i, ans := range reqData.Answers {
		entries[i] = courseModels.AttemptAnswer{
			Question: ans.Question,
			Answer:   ans.Answer,
		}

		if content.QuestionType == models.QuestionTypeCQ {
			continue
		}

		var question models.Question
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", ans.Question, false).First(&question).Error; err != nil {
			continue
		}

		submitted, ok := decodeAnswerString(ans.Answer)
		if !ok {
			wrongCount++
			obtained -= content.NegativeMarks
			continue
		}

		right := false
		switch question.Type {
		case models.QuestionTypeMCQ:
			right = submitted == question.Answer
		case models.QuestionTypeGAPS:
			var acceptable []string
			if err := json.Unmarshal(question.Answers, &acceptable); err == nil {
				for _, a := range acceptable {
					if a == submitted {
						right = true
						break
					}
				}
			}
		}

		if right {
			rightCount++
			obtained += content.PositiveMarks
			entries[i].Mark = content.PositiveMarks
		} else {
			wrongCount++
			obtained -= content.NegativeMarks
		}
	}

	rawEntries, err := json.Marshal(entries)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid answers!", nil)
	}

	now := time.Now()
	attempt := courseModels.ExamAttempt{
		AttemptRef:    uuid.NewString(),
		UserID:        userID,
		ContentID:     uint(examID),
		Answers:       rawEntries,
		RightCount:    rightCount,
		WrongCount:    wrongCount,
		TotalMarks:    content.TotalMarks,
		ObtainedMarks: obtained,
		IsChecked:     checked,
		IsPassed:      checked && obtained >= content.PassingMarks,
		SubmittedAt:   &now,
	}

	if t, err := time.Parse(time.RFC3339, reqData.StartedAt); err == nil {
		attempt.StartedAt = &t
	}
	if t, err := time.Parse(time.RFC3339, reqData.EndedAt); err == nil {
		attempt.EndedAt = &t
	}

	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		log.Printf("Error creating exam attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attempt submitted!", attempt)
}

// GetExamAttempt fetches one student's latest attempt for an exam
func GetExamAttempt(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	studentID := c.Locals("studentID").(int)
	examID := c.Locals("examID").(int)

	var attempt courseModels.ExamAttempt
	if err := database.Database.Db.
		Where("user_id = ? AND content_id = ? AND is_deleted = ?", studentID, examID, false).
		Order("created_at desc").First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully!", attempt)
}

// UpdateCQMarks stores reviewer marks for a CQ attempt in one batch and
// finalizes the result. The payload replaces the attempt's answer entries
// wholesale, so it must carry exactly one entry per stored answer.
func UpdateCQMarks(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var reviewer models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&reviewer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if reviewer.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	studentID := c.Locals("studentID").(int)
	examID := c.Locals("examID").(int)

	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND content_type = ? AND is_deleted = ?", examID, courseModels.ContentTypeExam, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	var attempt courseModels.ExamAttempt
	if err := database.Database.Db.
		Where("user_id = ? AND content_id = ? AND is_deleted = ?", studentID, examID, false).
		Order("created_at desc").First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	reqData, ok := c.Locals("validatedMarks").(*UpdateCQMarksRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var stored []courseModels.AttemptAnswer
	if err := json.Unmarshal(attempt.Answers, &stored); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read attempt answers!", nil)
	}

	if len(reqData.Marks) != len(stored) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Mark list must cover every answer!", nil)
	}

	storedQuestions := make(map[uint]bool, len(stored))
	for _, entry := range stored {
		storedQuestions[entry.Question] = true
	}
	for _, entry := range reqData.Marks {
		if !storedQuestions[entry.Question] {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Mark list references an unknown question!", nil)
		}
	}

	var obtained float64
	for _, entry := range reqData.Marks {
		obtained += entry.Mark
	}

	rawEntries, err := json.Marshal(reqData.Marks)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid mark list!", nil)
	}

	attempt.Answers = rawEntries
	attempt.ObtainedMarks = obtained
	attempt.IsChecked = true
	attempt.IsPassed = obtained >= content.PassingMarks

	if err := database.Database.Db.Save(&attempt).Error; err != nil {
		log.Printf("Error updating CQ marks: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update marks!", nil)
	}

	// Notify the student (async)
	go func(a courseModels.ExamAttempt, examTitle string) {
		var student models.User
		if err := database.Database.Db.Select("name, email").First(&student, a.UserID).Error; err == nil && student.Email != "" {
			utils.SendResultEmail(student.Email, student.Name, examTitle, a.ObtainedMarks, a.TotalMarks, a.IsPassed)
		}
	}(attempt, content.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Marks updated successfully!", attempt)
}

// AdminGetExamResults lists all attempts for an exam
func AdminGetExamResults(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	examID := c.Locals("examID").(int)

	var attempts []courseModels.ExamAttempt
	if err := database.Database.Db.
		Where("content_id = ? AND is_deleted = ?", examID, false).
		Order("created_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully!", fiber.Map{
		"attempts": attempts,
		"total":    len(attempts),
	})
}
