package controllers

import (
	"edadmin/database"
	"edadmin/middleware"
	"edadmin/models"
	courseModels "edadmin/models/course"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ExamContentRequest carries the full exam definition. Updates are
// full-replace: the payload supplies every exam field including the complete
// question id list, superseding whatever the server currently holds.
type ExamContentRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	QuestionType    string  `json:"question_type"`
	TotalQuestions  int     `json:"total_questions"`
	TotalMarks      float64 `json:"total_marks"`
	PassingMarks    float64 `json:"passing_marks"`
	PositiveMarks   float64 `json:"positive_marks"`
	NegativeMarks   float64 `json:"negative_marks"`
	DurationHours   int     `json:"duration_hours"`
	DurationMinutes int     `json:"duration_minutes"`
	DurationSeconds int     `json:"duration_seconds"`
	Validity        string  `json:"validity"` // RFC3339, optional
	Questions       []uint  `json:"questions"`
	ExamStatus      string  `json:"exam_status"`
}

// verifyExamQuestions checks that every id references a live question of the
// exam's question type
func verifyExamQuestions(ids []uint, questionType string) (bad []uint) {
	for _, id := range ids {
		var q models.Question
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&q).Error; err != nil {
			bad = append(bad, id)
			continue
		}
		if q.Type != questionType {
			bad = append(bad, id)
		}
	}
	return bad
}

// AdminCreateExamContent creates a new EXAM content within a course
func AdminCreateExamContent(c *fiber.Ctx) error {
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

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedExamContent").(*ExamContentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if len(reqData.Questions) > reqData.TotalQuestions {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question list exceeds total questions!", nil)
	}

	if bad := verifyExamQuestions(reqData.Questions, reqData.QuestionType); len(bad) > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question list contains unknown or mismatched questions!", fiber.Map{
			"invalid_ids": bad,
		})
	}

	// Get the next order index
	var maxOrder int
	database.Database.Db.Model(&courseModels.CourseContent{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)

	content := courseModels.CourseContent{
		CourseID:        uint(courseID),
		Title:           reqData.Title,
		Description:     reqData.Description,
		ContentType:     courseModels.ContentTypeExam,
		OrderIndex:      maxOrder + 1,
		QuestionType:    reqData.QuestionType,
		TotalQuestions:  reqData.TotalQuestions,
		TotalMarks:      reqData.TotalMarks,
		PassingMarks:    reqData.PassingMarks,
		PositiveMarks:   reqData.PositiveMarks,
		NegativeMarks:   reqData.NegativeMarks,
		DurationHours:   reqData.DurationHours,
		DurationMinutes: reqData.DurationMinutes,
		DurationSeconds: reqData.DurationSeconds,
		ExamStatus:      courseModels.ExamStatusActive,
	}

	if validity, ok := c.Locals("validatedValidity").(*time.Time); ok {
		content.Validity = validity
	}

	if reqData.ExamStatus != "" {
		content.ExamStatus = reqData.ExamStatus
	}

	raw, err := json.Marshal(reqData.Questions)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question list!", nil)
	}
	content.QuestionIDs = raw

	if err := database.Database.Db.Create(&content).Error; err != nil {
		log.Printf("Error creating exam content: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Exam created successfully!", content)
}

// GetCourseContent fetches one content item, including the embedded exam
// definition for EXAM contents
func GetCourseContent(c *fiber.Ctx) error {
	contentID := c.Locals("contentID").(int)

	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", content)
}

// AdminUpdateExamContent replaces the exam definition of an EXAM content.
// The question id list is replaced wholesale; there is no per-id patching.
func AdminUpdateExamContent(c *fiber.Ctx) error {
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

	contentID := c.Locals("contentID").(int)

	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if content.ContentType != courseModels.ContentTypeExam {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is not an exam!", nil)
	}

	reqData, ok := c.Locals("validatedExamContent").(*ExamContentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.QuestionType != "" && reqData.QuestionType != content.QuestionType {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Exam question type cannot be changed!", nil)
	}

	if len(reqData.Questions) > reqData.TotalQuestions {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question list exceeds total questions!", nil)
	}

	if bad := verifyExamQuestions(reqData.Questions, content.QuestionType); len(bad) > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question list contains unknown or mismatched questions!", fiber.Map{
			"invalid_ids": bad,
		})
	}

	content.Title = reqData.Title
	content.Description = reqData.Description
	content.TotalQuestions = reqData.TotalQuestions
	content.TotalMarks = reqData.TotalMarks
	content.PassingMarks = reqData.PassingMarks
	content.PositiveMarks = reqData.PositiveMarks
	content.NegativeMarks = reqData.NegativeMarks
	content.DurationHours = reqData.DurationHours
	content.DurationMinutes = reqData.DurationMinutes
	content.DurationSeconds = reqData.DurationSeconds
	if validity, ok := c.Locals("validatedValidity").(*time.Time); ok {
		content.Validity = validity
	}
	if reqData.ExamStatus != "" {
		content.ExamStatus = reqData.ExamStatus
	}

	raw, err := json.Marshal(reqData.Questions)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question list!", nil)
	}
	content.QuestionIDs = raw

	if err := database.Database.Db.Save(&content).Error; err != nil {
		log.Printf("Error updating exam content: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam updated successfully!", content)
}

// AdminDeleteContent soft deletes a content item
func AdminDeleteContent(c *fiber.Ctx) error {
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

	contentID := c.Locals("contentID").(int)

	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	content.IsDeleted = true
	if err := database.Database.Db.Save(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully!", nil)
}

// AdminGetCourseContents lists a course's contents in order
func AdminGetCourseContents(c *fiber.Ctx) error {
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

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var contents []courseModels.CourseContent
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch contents!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contents fetched successfully!", fiber.Map{
		"course":        course,
		"contents":      contents,
		"total_content": len(contents),
	})
}
