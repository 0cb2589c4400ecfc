package console

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// cacheTagQuestions tags cached question pages for invalidation after a
// question mutation
const cacheTagQuestions = "questions"

// APIError is a remote failure carrying the server-provided message when one
// was present
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Meta is the pagination metadata of list endpoints
type Meta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	TotalPage int   `json:"totalPage"`
	TotalDoc  int64 `json:"totalDoc"`
}

// Question is the console view of a bank question
type Question struct {
	ID          uint     `json:"ID"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Explanation string   `json:"explanation"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Answers     []string `json:"answers"`
	Tags        []uint   `json:"tags"`
}

// QuestionPage is one page of filter results
type QuestionPage struct {
	Result []Question `json:"result"`
	Meta   Meta       `json:"meta"`
}

// Exam is the console view of an EXAM course content
type Exam struct {
	ID              uint       `json:"ID"`
	CourseID        uint       `json:"course_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	QuestionType    string     `json:"question_type"`
	TotalQuestions  int        `json:"total_questions"`
	TotalMarks      float64    `json:"total_marks"`
	PassingMarks    float64    `json:"passing_marks"`
	PositiveMarks   float64    `json:"positive_marks"`
	NegativeMarks   float64    `json:"negative_marks"`
	DurationHours   int        `json:"duration_hours"`
	DurationMinutes int        `json:"duration_minutes"`
	DurationSeconds int        `json:"duration_seconds"`
	Validity        *time.Time `json:"validity"`
	Questions       []uint     `json:"question_ids"`
	ExamStatus      string     `json:"exam_status"`
}

// MarkEntry is one answer entry of an attempt. Answer is a string for typed
// answers or a list of image URLs for handwritten ones, so it stays raw.
type MarkEntry struct {
	Question uint            `json:"question"`
	Answer   json.RawMessage `json:"answer"`
	Mark     float64         `json:"mark"`
}

// Attempt is the console view of one student's exam attempt
type Attempt struct {
	ID            uint        `json:"ID"`
	UserID        uint        `json:"user_id"`
	ContentID     uint        `json:"content_id"`
	Answers       []MarkEntry `json:"answers"`
	TotalMarks    float64     `json:"total_marks"`
	ObtainedMarks float64     `json:"obtained_marks"`
	IsChecked     bool        `json:"is_checked"`
	IsPassed      bool        `json:"is_passed"`
}

// NewQuestion is the create payload. An empty tag list is omitted from the
// payload rather than sent as an empty array.
type NewQuestion struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Explanation string   `json:"explanation,omitempty"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer,omitempty"`
	Answers     []string `json:"answers,omitempty"`
	Tags        []uint   `json:"tags,omitempty"`
}

// ExamUpdate is the full-replace exam payload: it supplies every exam field
// plus the complete question id list
type ExamUpdate struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	QuestionType    string  `json:"question_type"`
	TotalQuestions  int     `json:"total_questions"`
	TotalMarks      float64 `json:"total_marks"`
	PassingMarks    float64 `json:"passing_marks"`
	PositiveMarks   float64 `json:"positive_marks"`
	NegativeMarks   float64 `json:"negative_marks"`
	DurationHours   int     `json:"duration_hours"`
	DurationMinutes int     `json:"duration_minutes"`
	DurationSeconds int     `json:"duration_seconds"`
	Validity        string  `json:"validity,omitempty"`
	Questions       []uint  `json:"questions"`
	ExamStatus      string  `json:"exam_status,omitempty"`
}

// QuestionFilter is the filter shape shared by the two retrieval modes
type QuestionFilter struct {
	Tags   []uint
	Type   string
	Search string
	Page   int
	Limit  int
}

func (f QuestionFilter) values() url.Values {
	v := url.Values{}
	for _, tag := range f.Tags {
		v.Add("tags", strconv.FormatUint(uint64(tag), 10))
	}
	if f.Type != "" {
		v.Set("type", f.Type)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("limit", strconv.Itoa(f.Limit))
	return v
}

// Client talks to the platform REST API with a bearer token. No retries are
// performed; a remote failure surfaces once to the caller.
type Client struct {
	http  *resty.Client
	cache *ResponseCache
}

// NewClient builds a client for the given API base URL and bearer token
func NewClient(baseURL, token string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetAuthToken(token).
			SetTimeout(30 * time.Second),
	}
}

// WithCache attaches a session response cache to the client
func (c *Client) WithCache(cache *ResponseCache) *Client {
	c.cache = cache
	return c
}

func decodeEnvelope(resp *resty.Response, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return &APIError{StatusCode: resp.StatusCode()}
	}

	if resp.IsError() || !env.Success {
		return &APIError{StatusCode: resp.StatusCode(), Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// FilterQuestions fetches a page of questions matching the filter. The two
// retrieval modes share the filter and response shapes and differ only in
// which endpoint is called: depth expands the tag match through the tag
// hierarchy, entirely server-side.
func (c *Client) FilterQuestions(filter QuestionFilter, depth bool) (*QuestionPage, error) {
	path := "/questions/filter-tags"
	if depth {
		path = "/questions/filter-tags-depth"
	}

	values := filter.values()
	fingerprint := path + "?" + values.Encode()

	if c.cache != nil {
		if data, ok := c.cache.Get(fingerprint); ok {
			if page, ok := data.(*QuestionPage); ok {
				return page, nil
			}
		}
	}

	resp, err := c.http.R().SetQueryParamsFromValues(values).Get(path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	var page QuestionPage
	if err := decodeEnvelope(resp, &page); err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Put(fingerprint, &page, cacheTagQuestions)
	}

	return &page, nil
}

// GetExam fetches an exam aggregate including its question id list
func (c *Client) GetExam(examID uint) (*Exam, error) {
	resp, err := c.http.R().Get(fmt.Sprintf("/course-contents/%d", examID))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	var exam Exam
	if err := decodeEnvelope(resp, &exam); err != nil {
		return nil, err
	}
	return &exam, nil
}

// UpdateExam replaces the exam definition, question list included
func (c *Client) UpdateExam(examID uint, update ExamUpdate) (*Exam, error) {
	resp, err := c.http.R().SetBody(update).Patch(fmt.Sprintf("/course-contents/%d/update", examID))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	var exam Exam
	if err := decodeEnvelope(resp, &exam); err != nil {
		return nil, err
	}
	return &exam, nil
}

// CreateQuestion creates a bank question and invalidates cached question
// pages
func (c *Client) CreateQuestion(req NewQuestion) (*Question, error) {
	resp, err := c.http.R().SetBody(req).Post("/questions")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	var question Question
	if err := decodeEnvelope(resp, &question); err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.InvalidateTag(cacheTagQuestions)
	}

	return &question, nil
}

// GetAttempt fetches one student's attempt for an exam
func (c *Client) GetAttempt(studentID, examID uint) (*Attempt, error) {
	resp, err := c.http.R().Get(fmt.Sprintf("/exam-attempts/%d/%d", studentID, examID))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	var attempt Attempt
	if err := decodeEnvelope(resp, &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

// UpdateCQMarks submits the complete mark array for an attempt in one call
func (c *Client) UpdateCQMarks(studentID, examID uint, entries []MarkEntry) error {
	resp, err := c.http.R().
		SetBody(map[string]interface{}{"marks": entries}).
		Patch(fmt.Sprintf("/exam-attempts/%d/%d/update-cq-mark", studentID, examID))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	return decodeEnvelope(resp, nil)
}
