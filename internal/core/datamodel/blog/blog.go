package blog

import (
	"time"

	"gorm.io/datatypes"
)

// BlogComponent stores one editor-produced blog document keyed by slug.
// Content is the raw page-builder JSON; the backend never interprets it.
type BlogComponent struct {
	ID        int64          `gorm:"primaryKey"`
	Slug      string         `gorm:"column:slug;uniqueIndex;not null"`
	Content   datatypes.JSON `gorm:"column:content"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (BlogComponent) TableName() string {
	return "blog_components"
}
