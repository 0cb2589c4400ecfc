package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"edadmin/config"
	"edadmin/database"
	"edadmin/middleware"
	"edadmin/models"
	courseModels "edadmin/models/course"
	"edadmin/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userSeq uint64

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()
	database.ConnectTestDb()

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	return app
}

func createUser(t *testing.T, role string) (uint, string) {
	t.Helper()

	user := models.User{
		Name:     "Test User",
		Email:    fmt.Sprintf("user-%d@test.local", atomic.AddUint64(&userSeq, 1)),
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user.ID, token
}

func createCourse(t *testing.T) uint {
	t.Helper()
	course := courseModels.Course{Title: "Test Course", Status: "ACTIVE"}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course.ID
}

func createBankQuestion(t *testing.T, qType string) uint {
	t.Helper()
	question := models.Question{Type: qType, Title: "a bank question", Answer: "0"}
	require.NoError(t, database.Database.Db.Create(&question).Error)
	return question.ID
}

func examPayload(questions []uint) map[string]interface{} {
	return map[string]interface{}{
		"title":            "Weekly Exam",
		"question_type":    "MCQ",
		"total_questions":  3,
		"total_marks":      30.0,
		"passing_marks":    10.0,
		"positive_marks":   1.0,
		"negative_marks":   0.25,
		"duration_minutes": 30,
		"questions":        questions,
	}
}

type contentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ID          uint            `json:"ID"`
		CourseID    uint            `json:"course_id"`
		ContentType string          `json:"content_type"`
		QuestionIDs json.RawMessage `json:"question_ids"`
		ExamStatus  string          `json:"exam_status"`
		TotalMarks  float64         `json:"total_marks"`
	} `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (int, contentResponse) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed contentResponse
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func storedQuestionIDs(t *testing.T, raw json.RawMessage) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, json.Unmarshal(raw, &ids))
	return ids
}

func TestCreateExamContent(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "ADMIN")
	courseID := createCourse(t)

	q1 := createBankQuestion(t, "MCQ")
	q2 := createBankQuestion(t, "MCQ")

	status, resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/admin/course/%d/exam", courseID), token, examPayload([]uint{q1, q2}))

	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, courseID, resp.Data.CourseID)
	assert.Equal(t, "EXAM", resp.Data.ContentType)
	assert.Equal(t, "Active", resp.Data.ExamStatus)
	assert.Equal(t, []uint{q1, q2}, storedQuestionIDs(t, resp.Data.QuestionIDs))
}

func TestCreateExamRejectsOversizedQuestionList(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "ADMIN")
	courseID := createCourse(t)

	questions := []uint{
		createBankQuestion(t, "MCQ"),
		createBankQuestion(t, "MCQ"),
		createBankQuestion(t, "MCQ"),
		createBankQuestion(t, "MCQ"),
	}

	// Payload allows 3 questions, 4 supplied
	status, resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/admin/course/%d/exam", courseID), token, examPayload(questions))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Question list exceeds total questions!", resp.Message)
}

func TestCreateExamRejectsMismatchedQuestionType(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "ADMIN")
	courseID := createCourse(t)

	cq := createBankQuestion(t, "CQ")

	status, resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/admin/course/%d/exam", courseID), token, examPayload([]uint{cq}))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Question list contains unknown or mismatched questions!", resp.Message)
}

func TestCreateExamRequiresAdmin(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "STUDENT")
	courseID := createCourse(t)

	status, _ := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/admin/course/%d/exam", courseID), token, examPayload(nil))

	assert.Equal(t, http.StatusForbidden, status)
}

func TestUpdateExamReplacesQuestionList(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "ADMIN")
	courseID := createCourse(t)

	q1 := createBankQuestion(t, "MCQ")
	q2 := createBankQuestion(t, "MCQ")
	q3 := createBankQuestion(t, "MCQ")

	status, created := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/admin/course/%d/exam", courseID), token, examPayload([]uint{q1, q2}))
	require.Equal(t, http.StatusCreated, status)

	// The new list replaces the old one wholesale; q1 and q2 drop out
	status, updated := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/course-contents/%d/update", created.Data.ID), token, examPayload([]uint{q3}))

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []uint{q3}, storedQuestionIDs(t, updated.Data.QuestionIDs))

	status, fetched := doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/course-contents/%d", created.Data.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []uint{q3}, storedQuestionIDs(t, fetched.Data.QuestionIDs))
}

func TestUpdateExamQuestionTypeImmutable(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "ADMIN")
	courseID := createCourse(t)

	q1 := createBankQuestion(t, "MCQ")

	status, created := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/admin/course/%d/exam", courseID), token, examPayload([]uint{q1}))
	require.Equal(t, http.StatusCreated, status)

	payload := examPayload(nil)
	payload["question_type"] = "CQ"

	status, resp := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/course-contents/%d/update", created.Data.ID), token, payload)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Exam question type cannot be changed!", resp.Message)
}

func TestUpdateRejectsNonExamContent(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "ADMIN")
	courseID := createCourse(t)

	content := courseModels.CourseContent{
		CourseID:    courseID,
		Title:       "Reading material",
		ContentType: courseModels.ContentTypeText,
		TextContent: "some text",
	}
	require.NoError(t, database.Database.Db.Create(&content).Error)

	status, resp := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/course-contents/%d/update", content.ID), token, examPayload(nil))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Content is not an exam!", resp.Message)
}

func TestUpdateExamValidation(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "ADMIN")

	cases := []struct {
		name  string
		patch func(map[string]interface{})
	}{
		{"missing title", func(p map[string]interface{}) { p["title"] = "" }},
		{"bad question type", func(p map[string]interface{}) { p["question_type"] = "ESSAY" }},
		{"passing above total", func(p map[string]interface{}) { p["passing_marks"] = 50.0 }},
		{"bad validity", func(p map[string]interface{}) { p["validity"] = "tomorrow" }},
		{"bad status", func(p map[string]interface{}) { p["exam_status"] = "Paused" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := examPayload(nil)
			tc.patch(payload)

			status, _ := doJSON(t, app, http.MethodPatch, "/course-contents/1/update", token, payload)
			assert.Equal(t, http.StatusUnprocessableEntity, status)
		})
	}
}
