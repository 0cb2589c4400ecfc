package models

import "gorm.io/gorm"

// Branch represents a physical branch/campus of the platform
type Branch struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	IsDeleted bool   `gorm:"default:false"`
}
