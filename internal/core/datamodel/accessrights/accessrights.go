package accessrights

import "time"

// AccessRight is the four-boolean grant record for one (user, module) pair.
// The composite unique index is the backstop against double provisioning:
// a racing second provision fails loudly instead of duplicating rows.
// ModuleName is denormalized from system_modules for lookup speed only; the
// module row stays authoritative.
type AccessRight struct {
	ID         int64     `gorm:"primaryKey"`
	UserID     int64     `gorm:"column:user_id;not null;uniqueIndex:idx_access_rights_user_module;index"`
	ModuleID   int64     `gorm:"column:module_id;not null;uniqueIndex:idx_access_rights_user_module"`
	ModuleName string    `gorm:"column:module_name;not null;index"`
	CanCreate  bool      `gorm:"column:can_create;default:false"`
	CanRead    bool      `gorm:"column:can_read;default:false"`
	CanUpdate  bool      `gorm:"column:can_update;default:false"`
	CanDelete  bool      `gorm:"column:can_delete;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (AccessRight) TableName() string {
	return "access_rights"
}
