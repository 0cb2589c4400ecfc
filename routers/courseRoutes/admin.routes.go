package courseRoutes

import (
	controllers "edadmin/controllers/course"
	"edadmin/middleware"
	courseValidator "edadmin/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course")

	// Course CRUD
	adminGroup.Post("/create", middleware.JWTMiddleware, courseValidator.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", middleware.JWTMiddleware, courseValidator.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, courseValidator.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Get("/list", middleware.JWTMiddleware, courseValidator.CourseList(), controllers.AdminGetAllCourses)
	adminGroup.Post("/:id/publish", middleware.JWTMiddleware, courseValidator.PublishCourse(), controllers.AdminPublishCourse)

	// Exam content management
	adminGroup.Post("/:id/exam", middleware.JWTMiddleware, courseValidator.CreateExamContent(), controllers.AdminCreateExamContent)
	adminGroup.Get("/:id/contents", middleware.JWTMiddleware, courseValidator.CourseID(), controllers.AdminGetCourseContents)
}
