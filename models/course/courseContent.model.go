package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content types
const (
	ContentTypeText  = "TEXT"
	ContentTypeVideo = "VIDEO"
	ContentTypeExam  = "EXAM"
)

// Exam statuses
const (
	ExamStatusActive   = "Active"
	ExamStatusInactive = "Inactive"
)

// CourseContent represents content within a course. For EXAM content the
// exam definition is embedded: QuestionIDs holds the ordered question id
// list and is always replaced wholesale on update, never patched per id.
// The backend enforces len(QuestionIDs) <= TotalQuestions.
type CourseContent struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentType string `json:"content_type" gorm:"default:'TEXT'"` // TEXT, VIDEO, EXAM
	TextContent string `json:"text_content" gorm:"type:text"`      // For TEXT type
	VideoURL    string `json:"video_url"`                          // For VIDEO type
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`

	// Exam fields (EXAM type only)
	QuestionType    string         `json:"question_type"` // MCQ, CQ, GAPS
	TotalQuestions  int            `json:"total_questions" gorm:"default:0"`
	TotalMarks      float64        `json:"total_marks" gorm:"default:0"`
	PassingMarks    float64        `json:"passing_marks" gorm:"default:0"`
	PositiveMarks   float64        `json:"positive_marks" gorm:"default:0"`
	NegativeMarks   float64        `json:"negative_marks" gorm:"default:0"`
	DurationHours   int            `json:"duration_hours" gorm:"default:0"`
	DurationMinutes int            `json:"duration_minutes" gorm:"default:0"`
	DurationSeconds int            `json:"duration_seconds" gorm:"default:0"`
	Validity        *time.Time     `json:"validity"`
	QuestionIDs     datatypes.JSON `json:"question_ids"`
	ExamStatus      string         `json:"exam_status" gorm:"default:'Active'"` // Active, Inactive

	IsDeleted bool `gorm:"default:false"`
}
