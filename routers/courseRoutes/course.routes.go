package courseRoutes

import (
	controllers "edadmin/controllers/course"
	"edadmin/middleware"
	courseValidator "edadmin/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	courseGroup.Get("/list", middleware.JWTMiddleware, courseValidator.CourseList(), controllers.GetPublishedCourses)
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, courseValidator.CourseID(), controllers.EnrollCourse)

	// Content fetch shared by students and the admin console
	contentGroup := app.Group("/course-contents")
	contentGroup.Get("/:id", middleware.JWTMiddleware, courseValidator.ContentID(), controllers.GetCourseContent)
	contentGroup.Patch("/:id/update", middleware.JWTMiddleware, courseValidator.UpdateExamContent(), controllers.AdminUpdateExamContent)
	contentGroup.Delete("/:id", middleware.JWTMiddleware, courseValidator.ContentID(), controllers.AdminDeleteContent)
}
