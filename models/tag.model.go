package models

import "gorm.io/gorm"

// Tag labels questions for filtering. ParentID forms the hierarchy used by
// the depth filter: a depth search on a tag also matches its descendants.
type Tag struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null;index"`
	ParentID  *uint  `json:"parent_id" gorm:"index"`
	IsDeleted bool   `gorm:"default:false"`
}
