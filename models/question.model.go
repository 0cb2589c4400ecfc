package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types. Type is the discriminant and is immutable after creation.
const (
	QuestionTypeMCQ  = "MCQ"
	QuestionTypeCQ   = "CQ"
	QuestionTypeGAPS = "GAPS"
)

// Question is a bank question of one of three kinds.
// MCQ: Options holds exactly 4 strings and Answer equals one of them.
// CQ: Answer holds the expected free-text answer.
// GAPS: Answers holds one or more acceptable answers in order.
type Question struct {
	gorm.Model
	Type        string         `json:"type" gorm:"index;not null"`
	Title       string         `json:"title" gorm:"type:text;not null"` // rich text body
	Explanation string         `json:"explanation" gorm:"type:text"`
	Options     datatypes.JSON `json:"options"` // MCQ only
	Answer      string         `json:"answer" gorm:"type:text"`
	Answers     datatypes.JSON `json:"answers"` // GAPS only
	CreatedBy   uint           `json:"created_by" gorm:"index"`
	IsDeleted   bool           `gorm:"default:false"`
}

// QuestionTag links a question to a tag
type QuestionTag struct {
	gorm.Model
	QuestionID uint `json:"question_id" gorm:"index;not null"`
	TagID      uint `json:"tag_id" gorm:"index;not null"`
	IsDeleted  bool `gorm:"default:false"`
}
