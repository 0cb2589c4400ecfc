package questionController

import (
	"edadmin/database"
	"edadmin/middleware"
	"edadmin/models"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
)

// QuestionWithTags is a question joined with its tag ids for responses
type QuestionWithTags struct {
	models.Question
	Tags []uint `json:"tags,omitempty"`
}

func loadQuestionTags(questionID uint) []uint {
	var links []models.QuestionTag
	database.Database.Db.Where("question_id = ? AND is_deleted = ?", questionID, false).Find(&links)

	tagIDs := make([]uint, len(links))
	for i, l := range links {
		tagIDs[i] = l.TagID
	}
	return tagIDs
}

// AdminCreateQuestion creates a new bank question of a given type
func AdminCreateQuestion(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedQuestion").(*CreateQuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	question := models.Question{
		Type:        reqData.Type,
		Title:       reqData.Title,
		Explanation: reqData.Explanation,
		Answer:      reqData.Answer,
		CreatedBy:   userID,
	}

	if len(reqData.Options) > 0 {
		raw, err := json.Marshal(reqData.Options)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options!", nil)
		}
		question.Options = raw
	}

	if len(reqData.Answers) > 0 {
		raw, err := json.Marshal(reqData.Answers)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid answers!", nil)
		}
		question.Answers = raw
	}

	tx := database.Database.Db.Begin()

	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	// An absent tag list and an empty one are treated identically: no links
	for _, tagID := range reqData.Tags {
		link := models.QuestionTag{QuestionID: question.ID, TagID: tagID}
		if err := tx.Create(&link).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to attach tags!", nil)
		}
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", QuestionWithTags{
		Question: question,
		Tags:     reqData.Tags,
	})
}

// AdminUpdateQuestion partially updates a question. The question type is the
// discriminant and cannot be changed after creation.
func AdminUpdateQuestion(c *fiber.Ctx) error {
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

	questionID := c.Locals("questionID").(int)

	var question models.Question
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuestionUpdate").(*UpdateQuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Type != "" && reqData.Type != question.Type {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question type cannot be changed!", nil)
	}

	if reqData.Title != "" {
		question.Title = reqData.Title
	}
	if reqData.Explanation != "" {
		question.Explanation = reqData.Explanation
	}
	if reqData.Answer != "" {
		question.Answer = reqData.Answer
	}
	if len(reqData.Options) > 0 {
		raw, _ := json.Marshal(reqData.Options)
		question.Options = raw
	}
	if len(reqData.Answers) > 0 {
		raw, _ := json.Marshal(reqData.Answers)
		question.Answers = raw
	}

	tx := database.Database.Db.Begin()

	if err := tx.Save(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	// Replace tag links only when a tag list was supplied
	if reqData.Tags != nil {
		if err := tx.Model(&models.QuestionTag{}).Where("question_id = ?", question.ID).Update("is_deleted", true).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update tags!", nil)
		}
		for _, tagID := range reqData.Tags {
			link := models.QuestionTag{QuestionID: question.ID, TagID: tagID}
			if err := tx.Create(&link).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update tags!", nil)
			}
		}
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully!", QuestionWithTags{
		Question: question,
		Tags:     loadQuestionTags(question.ID),
	})
}

// AdminDeleteQuestion soft deletes a question and its tag links
func AdminDeleteQuestion(c *fiber.Ctx) error {
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

	questionID := c.Locals("questionID").(int)

	var question models.Question
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	tx := database.Database.Db.Begin()

	question.IsDeleted = true
	if err := tx.Save(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	if err := tx.Model(&models.QuestionTag{}).Where("question_id = ?", question.ID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question tags!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// GetQuestion fetches a single question with its tags
func GetQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question models.Question
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question fetched successfully!", QuestionWithTags{
		Question: question,
		Tags:     loadQuestionTags(question.ID),
	})
}
