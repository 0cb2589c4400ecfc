package courseValidator

import (
	"edadmin/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Author      string `json:"author"`
			Duration    int64  `json:"duration"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		} else if len(strings.TrimSpace(reqData.Description)) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := c.ParamsInt("id")
		if err != nil || courseID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Author      string `json:"author"`
			Duration    int64  `json:"duration"`
			Status      string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Status != "" && reqData.Status != "DRAFT" && reqData.Status != "ACTIVE" && reqData.Status != "INACTIVE" {
			errors["status"] = "Status must be DRAFT, ACTIVE or INACTIVE!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := c.ParamsInt("id")
		if err != nil || courseID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

func PublishCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := c.ParamsInt("id")
		if err != nil || courseID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		reqData := new(struct {
			Publish *bool `json:"publish"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Publish == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"publish": "Publish flag is required!"})
		}

		c.Locals("courseID", courseID)
		c.Locals("publishStatus", *reqData.Publish)
		return c.Next()
	}
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		// Validate Page
		if reqData.Page == nil || *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		// Validate Limit
		if reqData.Limit == nil || *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}
