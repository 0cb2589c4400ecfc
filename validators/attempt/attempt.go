package attemptValidator

import (
	attemptController "edadmin/controllers/attempt"
	"edadmin/middleware"

	"github.com/gofiber/fiber/v2"
)

// SubmitAttempt validates an attempt submission
func SubmitAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		examID, err := c.ParamsInt("exam_id")
		if err != nil || examID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
		}

		reqData := new(attemptController.SubmitAttemptRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Answers) == 0 {
			errors["answers"] = "At least one answer is required!"
		}
		for _, ans := range reqData.Answers {
			if ans.Question == 0 {
				errors["answers"] = "Every answer must reference a question!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("examID", examID)
		c.Locals("validatedAttempt", reqData)
		return c.Next()
	}
}

// AttemptKey validates the (student, exam) path parameters
func AttemptKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentID, err := c.ParamsInt("user_id")
		if err != nil || studentID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
		}

		examID, err := c.ParamsInt("exam_id")
		if err != nil || examID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
		}

		c.Locals("studentID", studentID)
		c.Locals("examID", examID)
		return c.Next()
	}
}

// UpdateCQMarks validates the batched mark payload
func UpdateCQMarks() fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentID, err := c.ParamsInt("user_id")
		if err != nil || studentID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
		}

		examID, err := c.ParamsInt("exam_id")
		if err != nil || examID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
		}

		reqData := new(attemptController.UpdateCQMarksRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Marks) == 0 {
			errors["marks"] = "Mark list must not be empty!"
		}
		for _, entry := range reqData.Marks {
			if entry.Question == 0 {
				errors["marks"] = "Every mark must reference a question!"
				break
			}
			if entry.Mark < 0 {
				errors["marks"] = "Marks must not be negative!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("studentID", studentID)
		c.Locals("examID", examID)
		c.Locals("validatedMarks", reqData)
		return c.Next()
	}
}

// ExamID validates the exam id path parameter
func ExamID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		examID, err := c.ParamsInt("exam_id")
		if err != nil || examID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
		}

		c.Locals("examID", examID)
		return c.Next()
	}
}
