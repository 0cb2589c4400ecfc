package course

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ExamAttempt is one student's attempt at an EXAM content. Answers is a JSON
// array of AttemptAnswer entries; for CQ exams the marks are filled in later
// by a reviewer in a single batch update.
type ExamAttempt struct {
	gorm.Model
	AttemptRef    string         `json:"attempt_ref" gorm:"uniqueIndex"`
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	ContentID     uint           `json:"content_id" gorm:"index;not null"`
	Answers       datatypes.JSON `json:"answers"`
	RightCount    int            `json:"right_count" gorm:"default:0"`
	WrongCount    int            `json:"wrong_count" gorm:"default:0"`
	TotalMarks    float64        `json:"total_marks" gorm:"default:0"`
	ObtainedMarks float64        `json:"obtained_marks" gorm:"default:0"`
	IsChecked     bool           `json:"is_checked" gorm:"default:false"`
	IsPassed      bool           `json:"is_passed" gorm:"default:false"`
	StartedAt     *time.Time     `json:"started_at"`
	EndedAt       *time.Time     `json:"ended_at"`
	SubmittedAt   *time.Time     `json:"submitted_at"`
	IsDeleted     bool           `gorm:"default:false"`
}

// AttemptAnswer is one entry of ExamAttempt.Answers. Answer is either a
// string or a list of image URLs (handwritten answer photographs), so it is
// kept as raw JSON and decoded by the consumer.
type AttemptAnswer struct {
	Question uint            `json:"question"`
	Answer   json.RawMessage `json:"answer"`
	Mark     float64         `json:"mark"`
}
