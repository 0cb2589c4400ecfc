package questionRoutes

import (
	questionController "edadmin/controllers/question"
	"edadmin/middleware"
	questionValidator "edadmin/validators/question"

	"github.com/gofiber/fiber/v2"
)

// SetupQuestionRoutes sets up question bank and tag routes
func SetupQuestionRoutes(app *fiber.App) {
	questionGroup := app.Group("/questions")

	// Filter endpoints before the id route so the literal paths win
	questionGroup.Get("/filter-tags", middleware.JWTMiddleware, questionValidator.FilterQuestions(), questionController.FilterQuestionsByTags)
	questionGroup.Get("/filter-tags-depth", middleware.JWTMiddleware, questionValidator.FilterQuestions(), questionController.FilterQuestionsByTagsDepth)

	questionGroup.Post("/", middleware.JWTMiddleware, questionValidator.CreateQuestion(), questionController.AdminCreateQuestion)
	questionGroup.Get("/:question_id", middleware.JWTMiddleware, questionValidator.QuestionID(), questionController.GetQuestion)
	questionGroup.Patch("/:question_id", middleware.JWTMiddleware, questionValidator.UpdateQuestion(), questionController.AdminUpdateQuestion)
	questionGroup.Delete("/:question_id", middleware.JWTMiddleware, questionValidator.QuestionID(), questionController.AdminDeleteQuestion)

	tagGroup := app.Group("/tags")
	tagGroup.Get("/", middleware.JWTMiddleware, questionController.GetTags)
	tagGroup.Post("/", middleware.JWTMiddleware, questionController.AdminCreateTag)
	tagGroup.Delete("/:tag_id", middleware.JWTMiddleware, questionController.AdminDeleteTag)
}
