package pagebuilder

import (
	"time"

	"gorm.io/datatypes"
)

// PuckComponent is one building block of the landing-page editor. Content,
// Root and Zones hold the editor's JSON verbatim.
type PuckComponent struct {
	ID        int64          `gorm:"primaryKey"`
	Slug      string         `gorm:"column:slug;uniqueIndex;not null"`
	Title     string         `gorm:"column:title;not null"`
	Content   datatypes.JSON `gorm:"column:content"`
	Root      datatypes.JSON `gorm:"column:root"`
	Zones     datatypes.JSON `gorm:"column:zones"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (PuckComponent) TableName() string {
	return "puck_components"
}
