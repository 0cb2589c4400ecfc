package attemptRoutes

import (
	attemptController "edadmin/controllers/attempt"
	"edadmin/middleware"
	attemptValidator "edadmin/validators/attempt"

	"github.com/gofiber/fiber/v2"
)

// SetupAttemptRoutes sets up exam attempt and grading routes
func SetupAttemptRoutes(app *fiber.App) {
	app.Post("/exams/:exam_id/attempt", middleware.JWTMiddleware, attemptValidator.SubmitAttempt(), attemptController.SubmitExamAttempt)

	attemptGroup := app.Group("/exam-attempts")
	attemptGroup.Get("/:user_id/:exam_id", middleware.JWTMiddleware, attemptValidator.AttemptKey(), attemptController.GetExamAttempt)
	attemptGroup.Patch("/:user_id/:exam_id/update-cq-mark", middleware.JWTMiddleware, attemptValidator.UpdateCQMarks(), attemptController.UpdateCQMarks)

	app.Get("/admin/exams/:exam_id/results", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("review-attempts"), attemptValidator.ExamID(), attemptController.AdminGetExamResults)
}
