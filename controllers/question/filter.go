package questionController

import (
	"edadmin/database"
	"edadmin/middleware"
	"edadmin/models"
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// expandTagSet walks the tag hierarchy downward and returns the input ids
// plus every descendant id
func expandTagSet(tagIDs []uint) []uint {
	seen := make(map[uint]bool)
	result := make([]uint, 0, len(tagIDs))
	for _, id := range tagIDs {
		seen[id] = true
		result = append(result, id)
	}

	frontier := tagIDs
	for len(frontier) > 0 {
		var children []models.Tag
		database.Database.Db.Where("parent_id IN ? AND is_deleted = ?", frontier, false).Find(&children)

		frontier = nil
		for _, tag := range children {
			if !seen[tag.ID] {
				seen[tag.ID] = true
				result = append(result, tag.ID)
				frontier = append(frontier, tag.ID)
			}
		}
	}

	return result
}

// FilterQuestionsByTags returns a page of questions matching the exact tag set
func FilterQuestionsByTags(c *fiber.Ctx) error {
	return filterQuestions(c, false)
}

// FilterQuestionsByTagsDepth returns a page of questions matching the tag set
// expanded through the tag hierarchy
func FilterQuestionsByTagsDepth(c *fiber.Ctx) error {
	return filterQuestions(c, true)
}

// filterQuestions is the shared core of the two filter endpoints. The two
// modes differ only in whether the tag set is expanded before matching; the
// filter and response shapes are identical.
func filterQuestions(c *fiber.Ctx, depth bool) error {
	reqData, ok := c.Locals("validatedFilter").(*FilterQuestionsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tagIDs := reqData.Tags
	if depth && len(tagIDs) > 0 {
		tagIDs = expandTagSet(tagIDs)
	}

	buildQuery := func() *gorm.DB {
		db := database.Database.Db.Model(&models.Question{}).Where("questions.is_deleted = ?", false)
		if reqData.Type != "" {
			db = db.Where("questions.type = ?", reqData.Type)
		}
		if reqData.Search != "" {
			db = db.Where("LOWER(questions.title) LIKE ?", "%"+strings.ToLower(reqData.Search)+"%")
		}
		if len(tagIDs) > 0 {
			sub := database.Database.Db.Model(&models.QuestionTag{}).
				Select("question_id").
				Where("tag_id IN ? AND is_deleted = ?", tagIDs, false)
			db = db.Where("questions.id IN (?)", sub)
		}
		return db
	}

	var totalDoc int64
	if err := buildQuery().Count(&totalDoc).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	offset := (reqData.Page - 1) * reqData.Limit

	var questions []models.Question
	if err := buildQuery().
		Order("created_at desc").
		Offset(offset).
		Limit(reqData.Limit).
		Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	result := make([]QuestionWithTags, len(questions))
	for i, q := range questions {
		result[i] = QuestionWithTags{
			Question: q,
			Tags:     loadQuestionTags(q.ID),
		}
	}

	totalPage := 0
	if reqData.Limit > 0 {
		totalPage = int(math.Ceil(float64(totalDoc) / float64(reqData.Limit)))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", fiber.Map{
		"result": result,
		"meta": fiber.Map{
			"page":      reqData.Page,
			"limit":     reqData.Limit,
			"totalPage": totalPage,
			"totalDoc":  totalDoc,
		},
	})
}
