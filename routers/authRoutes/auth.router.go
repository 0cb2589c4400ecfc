package authRoutes

import (
	authController "edadmin/controllers/auth"
	"edadmin/middleware"
	authValidator "edadmin/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up authentication routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Get("/profile", middleware.JWTMiddleware, authController.GetProfile)
}
