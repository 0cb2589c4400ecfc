package questionController_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"

	"edadmin/config"
	"edadmin/database"
	"edadmin/middleware"
	"edadmin/models"
	"edadmin/routers/questionRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userSeq uint64

func setupApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	config.LoadConfig()
	database.ConnectTestDb()

	app := fiber.New()
	questionRoutes.SetupQuestionRoutes(app)

	admin := models.User{
		Name:     "Admin",
		Email:    fmt.Sprintf("admin-%d@test.local", atomic.AddUint64(&userSeq, 1)),
		Password: "hashed",
		Role:     "ADMIN",
	}
	require.NoError(t, database.Database.Db.Create(&admin).Error)

	token, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)

	return app, token
}

func createTag(t *testing.T, name string, parentID *uint) uint {
	t.Helper()
	tag := models.Tag{Name: name, ParentID: parentID}
	require.NoError(t, database.Database.Db.Create(&tag).Error)
	return tag.ID
}

func createQuestion(t *testing.T, qType, title string, tagIDs ...uint) uint {
	t.Helper()
	question := models.Question{Type: qType, Title: title, Answer: "0"}
	require.NoError(t, database.Database.Db.Create(&question).Error)
	for _, tagID := range tagIDs {
		link := models.QuestionTag{QuestionID: question.ID, TagID: tagID}
		require.NoError(t, database.Database.Db.Create(&link).Error)
	}
	return question.ID
}

type filterResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Result []struct {
			ID    uint   `json:"ID"`
			Type  string `json:"type"`
			Title string `json:"title"`
			Tags  []uint `json:"tags"`
		} `json:"result"`
		Meta struct {
			Page      int   `json:"page"`
			Limit     int   `json:"limit"`
			TotalPage int   `json:"totalPage"`
			TotalDoc  int64 `json:"totalDoc"`
		} `json:"meta"`
	} `json:"data"`
}

func doFilter(t *testing.T, app *fiber.App, token, path string, query url.Values) filterResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path+"?"+query.Encode(), nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed filterResponse
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.True(t, parsed.Success)
	return parsed
}

func resultIDs(resp filterResponse) []uint {
	ids := make([]uint, 0, len(resp.Data.Result))
	for _, q := range resp.Data.Result {
		ids = append(ids, q.ID)
	}
	return ids
}

func tagQuery(tagIDs ...uint) url.Values {
	v := url.Values{"page": {"1"}, "limit": {"20"}}
	for _, id := range tagIDs {
		v.Add("tags", strconv.FormatUint(uint64(id), 10))
	}
	return v
}

func TestFilterTagsMatchesExactTagOnly(t *testing.T) {
	app, token := setupApp(t)

	parent := createTag(t, "mathematics", nil)
	child := createTag(t, "algebra", &parent)

	parentQ := createQuestion(t, "MCQ", "a general maths question", parent)
	childQ := createQuestion(t, "MCQ", "an algebra question", child)

	resp := doFilter(t, app, token, "/questions/filter-tags", tagQuery(parent))

	assert.Contains(t, resultIDs(resp), parentQ)
	assert.NotContains(t, resultIDs(resp), childQ)
	assert.Equal(t, int64(1), resp.Data.Meta.TotalDoc)
}

func TestFilterTagsDepthIncludesDescendants(t *testing.T) {
	app, token := setupApp(t)

	parent := createTag(t, "science", nil)
	child := createTag(t, "physics", &parent)
	grandchild := createTag(t, "mechanics", &child)

	parentQ := createQuestion(t, "MCQ", "a science question", parent)
	childQ := createQuestion(t, "MCQ", "a physics question", child)
	grandchildQ := createQuestion(t, "MCQ", "a mechanics question", grandchild)
	createQuestion(t, "MCQ", "an untagged question")

	resp := doFilter(t, app, token, "/questions/filter-tags-depth", tagQuery(parent))

	ids := resultIDs(resp)
	assert.Contains(t, ids, parentQ)
	assert.Contains(t, ids, childQ)
	assert.Contains(t, ids, grandchildQ)
	assert.Equal(t, int64(3), resp.Data.Meta.TotalDoc)
}

func TestFilterSharedShapeAcrossModes(t *testing.T) {
	app, token := setupApp(t)

	tag := createTag(t, "history", nil)
	createQuestion(t, "CQ", "a history question", tag)

	exact := doFilter(t, app, token, "/questions/filter-tags", tagQuery(tag))
	depth := doFilter(t, app, token, "/questions/filter-tags-depth", tagQuery(tag))

	// A leaf tag filters identically in both modes
	assert.Equal(t, resultIDs(exact), resultIDs(depth))
	assert.Equal(t, exact.Data.Meta, depth.Data.Meta)
}

func TestFilterByTypeAndSearch(t *testing.T) {
	app, token := setupApp(t)

	tag := createTag(t, "geography", nil)
	mcq := createQuestion(t, "MCQ", "Name the capital of France", tag)
	createQuestion(t, "CQ", "Describe the capital of France", tag)

	query := tagQuery(tag)
	query.Set("type", "MCQ")
	query.Set("search", "capital")

	resp := doFilter(t, app, token, "/questions/filter-tags", query)

	require.Len(t, resp.Data.Result, 1)
	assert.Equal(t, mcq, resp.Data.Result[0].ID)
	assert.Equal(t, "MCQ", resp.Data.Result[0].Type)
}

func TestFilterPaginationMeta(t *testing.T) {
	app, token := setupApp(t)

	tag := createTag(t, "chemistry", nil)
	for i := 0; i < 5; i++ {
		createQuestion(t, "MCQ", fmt.Sprintf("chemistry question %d", i), tag)
	}

	query := tagQuery(tag)
	query.Set("limit", "2")
	query.Set("page", "2")

	resp := doFilter(t, app, token, "/questions/filter-tags", query)

	assert.Len(t, resp.Data.Result, 2)
	assert.Equal(t, 2, resp.Data.Meta.Page)
	assert.Equal(t, 2, resp.Data.Meta.Limit)
	assert.Equal(t, 3, resp.Data.Meta.TotalPage)
	assert.Equal(t, int64(5), resp.Data.Meta.TotalDoc)
}

func TestFilterPastLastPageIsEmpty(t *testing.T) {
	app, token := setupApp(t)

	tag := createTag(t, "biology", nil)
	createQuestion(t, "MCQ", "a biology question", tag)

	query := tagQuery(tag)
	query.Set("page", "5")

	resp := doFilter(t, app, token, "/questions/filter-tags", query)

	assert.Empty(t, resp.Data.Result)
	assert.Equal(t, int64(1), resp.Data.Meta.TotalDoc)
}

func TestFilterRejectsBadQuery(t *testing.T) {
	app, token := setupApp(t)

	for _, query := range []url.Values{
		{"page": {"0"}, "limit": {"20"}},
		{"page": {"1"}, "limit": {"0"}},
		{"page": {"1"}, "limit": {"101"}},
		{"page": {"1"}, "limit": {"20"}, "type": {"ESSAY"}},
	} {
		req := httptest.NewRequest(http.MethodGet, "/questions/filter-tags?"+query.Encode(), nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	}
}

func TestFilterRequiresToken(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/questions/filter-tags?page=1&limit=20", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
