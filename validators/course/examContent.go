package courseValidator

import (
	controllers "edadmin/controllers/course"
	"edadmin/middleware"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// validateExamFields checks the shared exam payload rules and returns the
// parsed validity timestamp when one was supplied
func validateExamFields(reqData *controllers.ExamContentRequest, errors map[string]string) *time.Time {
	if strings.TrimSpace(reqData.Title) == "" {
		errors["title"] = "Title is required!"
	}

	if reqData.QuestionType != "MCQ" && reqData.QuestionType != "CQ" && reqData.QuestionType != "GAPS" {
		errors["question_type"] = "Question type must be MCQ, CQ or GAPS!"
	}

	if reqData.TotalQuestions < 0 {
		errors["total_questions"] = "Total questions must not be negative!"
	}
	if reqData.TotalMarks < 0 {
		errors["total_marks"] = "Total marks must not be negative!"
	}
	if reqData.PassingMarks < 0 {
		errors["passing_marks"] = "Passing marks must not be negative!"
	} else if reqData.PassingMarks > reqData.TotalMarks {
		errors["passing_marks"] = "Passing marks must not exceed total marks!"
	}
	if reqData.PositiveMarks < 0 {
		errors["positive_marks"] = "Positive marks must not be negative!"
	}
	if reqData.NegativeMarks < 0 {
		errors["negative_marks"] = "Negative marks must not be negative!"
	}

	if reqData.DurationHours < 0 || reqData.DurationHours > 23 {
		errors["duration_hours"] = "Hours must be between 0 and 23!"
	}
	if reqData.DurationMinutes < 0 || reqData.DurationMinutes > 59 {
		errors["duration_minutes"] = "Minutes must be between 0 and 59!"
	}
	if reqData.DurationSeconds < 0 || reqData.DurationSeconds > 59 {
		errors["duration_seconds"] = "Seconds must be between 0 and 59!"
	}

	if reqData.ExamStatus != "" && reqData.ExamStatus != "Active" && reqData.ExamStatus != "Inactive" {
		errors["exam_status"] = "Status must be Active or Inactive!"
	}

	if reqData.Validity == "" {
		return nil
	}

	t, err := time.Parse(time.RFC3339, reqData.Validity)
	if err != nil {
		errors["validity"] = "Validity must be an RFC3339 timestamp!"
		return nil
	}
	return &t
}

// CreateExamContent validates the exam creation payload
func CreateExamContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := c.ParamsInt("id")
		if err != nil || courseID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}

		reqData := new(controllers.ExamContentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		validity := validateExamFields(reqData, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedExamContent", reqData)
		c.Locals("validatedValidity", validity)
		return c.Next()
	}
}

// UpdateExamContent validates the full-replace exam update payload
func UpdateExamContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentID, err := c.ParamsInt("id")
		if err != nil || contentID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content id!", nil)
		}

		reqData := new(controllers.ExamContentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		validity := validateExamFields(reqData, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("contentID", contentID)
		c.Locals("validatedExamContent", reqData)
		c.Locals("validatedValidity", validity)
		return c.Next()
	}
}

// ContentID validates the content id path parameter
func ContentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentID, err := c.ParamsInt("id")
		if err != nil || contentID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content id!", nil)
		}

		c.Locals("contentID", contentID)
		return c.Next()
	}
}
