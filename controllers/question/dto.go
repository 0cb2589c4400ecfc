package questionController

// CreateQuestionRequest is the create payload. Type-specific fields are
// checked by the validator middleware before the handler runs.
type CreateQuestionRequest struct {
	Type        string   `json:"type" validate:"required,oneof=MCQ CQ GAPS"`
	Title       string   `json:"title" validate:"required"`
	Explanation string   `json:"explanation"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Answers     []string `json:"answers"`
	Tags        []uint   `json:"tags"`
}

// UpdateQuestionRequest is a partial update. A non-empty Type must match the
// stored type. A nil Tags slice leaves tag links untouched; an empty one
// clears them.
type UpdateQuestionRequest struct {
	Type        string   `json:"type" validate:"omitempty,oneof=MCQ CQ GAPS"`
	Title       string   `json:"title"`
	Explanation string   `json:"explanation"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Answers     []string `json:"answers"`
	Tags        []uint   `json:"tags"`
}

// FilterQuestionsRequest is the parsed query string of the filter endpoints
type FilterQuestionsRequest struct {
	Tags   []uint `query:"tags"`
	Type   string `query:"type"`
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}
