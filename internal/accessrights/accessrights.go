package accessrights

import (
	"time"

	accessrightsDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/accessrights"
)

// Permission names one of the four boolean grant fields. The values are the
// wire-level identifiers routes declare their requirements with.
type Permission string

const (
	CanCreate Permission = "canCreate"
	CanRead   Permission = "canRead"
	CanUpdate Permission = "canUpdate"
	CanDelete Permission = "canDelete"
)

// Requirement is one (module, permission) pair a route declares.
type Requirement struct {
	Module     string     `json:"module"`
	Permission Permission `json:"permission"`
}

func (r Requirement) String() string {
	return r.Module + "." + string(r.Permission)
}

// Req is shorthand for declaring route requirements at registration time.
func Req(module string, permission Permission) Requirement {
	return Requirement{Module: module, Permission: permission}
}

// Flags carries the four booleans used to initialize a user's grant rows.
type Flags struct {
	CanCreate bool `json:"can_create"`
	CanRead   bool `json:"can_read"`
	CanUpdate bool `json:"can_update"`
	CanDelete bool `json:"can_delete"`
}

// DenyAll is the default for regular signups.
func DenyAll() Flags {
	return Flags{}
}

// AllowAll is used for seed/superadmin accounts.
func AllowAll() Flags {
	return Flags{CanCreate: true, CanRead: true, CanUpdate: true, CanDelete: true}
}

// Grant is the domain view of one access_rights row.
type Grant struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	ModuleID   int64     `json:"module_id"`
	ModuleName string    `json:"module_name"`
	CanCreate  bool      `json:"can_create"`
	CanRead    bool      `json:"can_read"`
	CanUpdate  bool      `json:"can_update"`
	CanDelete  bool      `json:"can_delete"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Has reports whether the named boolean field is set on this grant.
func (g *Grant) Has(p Permission) bool {
	switch p {
	case CanCreate:
		return g.CanCreate
	case CanRead:
		return g.CanRead
	case CanUpdate:
		return g.CanUpdate
	case CanDelete:
		return g.CanDelete
	}
	return false
}

func ToDataModel(g *Grant) *accessrightsDatamodel.AccessRight {
	return &accessrightsDatamodel.AccessRight{
		ID:         g.ID,
		UserID:     g.UserID,
		ModuleID:   g.ModuleID,
		ModuleName: g.ModuleName,
		CanCreate:  g.CanCreate,
		CanRead:    g.CanRead,
		CanUpdate:  g.CanUpdate,
		CanDelete:  g.CanDelete,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

func FromDataModel(r *accessrightsDatamodel.AccessRight) *Grant {
	return &Grant{
		ID:         r.ID,
		UserID:     r.UserID,
		ModuleID:   r.ModuleID,
		ModuleName: r.ModuleName,
		CanCreate:  r.CanCreate,
		CanRead:    r.CanRead,
		CanUpdate:  r.CanUpdate,
		CanDelete:  r.CanDelete,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func FromDataModels(rows []*accessrightsDatamodel.AccessRight) []Grant {
	grants := make([]Grant, 0, len(rows))
	for _, row := range rows {
		grants = append(grants, *FromDataModel(row))
	}
	return grants
}
