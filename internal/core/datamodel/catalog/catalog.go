package catalog

import "time"

// SystemModule is one named functional area ("Blog", "Images", ...) that
// permissions are scoped against. Name is normalized once at write time.
type SystemModule struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (SystemModule) TableName() string {
	return "system_modules"
}
