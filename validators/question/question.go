package questionValidator

import (
	questionController "edadmin/controllers/question"
	"edadmin/middleware"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateQuestion validates the create payload. The question type drives the
// field requirements: MCQ needs 4 non-empty options and an answer equal to
// one of them, CQ needs a free-text answer, GAPS needs at least one answer.
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(questionController.CreateQuestionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Type":
					errors["type"] = "Type must be one of MCQ, CQ or GAPS!"
				case "Title":
					errors["title"] = "Question body is required!"
				}
			}
		}

		switch reqData.Type {
		case "MCQ":
			validateMCQFields(reqData.Options, reqData.Answer, errors)
		case "CQ":
			if strings.TrimSpace(reqData.Answer) == "" {
				errors["answer"] = "Answer is required!"
			}
		case "GAPS":
			if len(reqData.Answers) == 0 {
				errors["answers"] = "At least one answer is required!"
			}
			for _, a := range reqData.Answers {
				if strings.TrimSpace(a) == "" {
					errors["answers"] = "Answers must not be empty!"
					break
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// UpdateQuestion validates a partial update payload
func UpdateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		questionID, err := c.ParamsInt("question_id")
		if err != nil || questionID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
		}

		reqData := new(questionController.UpdateQuestionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				if fieldErr.Field() == "Type" {
					errors["type"] = "Type must be one of MCQ, CQ or GAPS!"
				}
			}
		}

		// Partial payloads only carry what changes, but supplied fields must
		// still be whole: an options list is all four or nothing
		if len(reqData.Options) > 0 {
			validateMCQFields(reqData.Options, reqData.Answer, errors)
		}
		for _, a := range reqData.Answers {
			if strings.TrimSpace(a) == "" {
				errors["answers"] = "Answers must not be empty!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("questionID", questionID)
		c.Locals("validatedQuestionUpdate", reqData)
		return c.Next()
	}
}

func validateMCQFields(options []string, answer string, errors map[string]string) {
	if len(options) != 4 {
		errors["options"] = "Exactly 4 options are required!"
		return
	}
	for _, opt := range options {
		if strings.TrimSpace(opt) == "" {
			errors["options"] = "Options must not be empty!"
			return
		}
	}
	if strings.TrimSpace(answer) == "" {
		errors["answer"] = "Answer is required!"
		return
	}
	for _, opt := range options {
		if opt == answer {
			return
		}
	}
	errors["answer"] = "Answer must match one of the options!"
}

// QuestionID validates the question id path parameter
func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		questionID, err := c.ParamsInt("question_id")
		if err != nil || questionID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
		}

		c.Locals("questionID", questionID)
		return c.Next()
	}
}

// FilterQuestions validates the query string of the filter endpoints
func FilterQuestions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(questionController.FilterQuestionsRequest)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		} else if reqData.Limit > 100 {
			errors["limit"] = "Limit must not exceed 100!"
		}
		if reqData.Type != "" && reqData.Type != "MCQ" && reqData.Type != "CQ" && reqData.Type != "GAPS" {
			errors["type"] = "Type must be one of MCQ, CQ or GAPS!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFilter", reqData)
		return c.Next()
	}
}
