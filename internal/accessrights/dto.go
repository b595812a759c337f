package accessrights

import (
	"errors"

	accessrightsDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/accessrights"
)

// UpdateAccessRightDTO is a partial update: only the booleans present in the
// request body are merged into the stored row.
type UpdateAccessRightDTO struct {
	CanCreate *bool `json:"can_create,omitempty"`
	CanRead   *bool `json:"can_read,omitempty"`
	CanUpdate *bool `json:"can_update,omitempty"`
	CanDelete *bool `json:"can_delete,omitempty"`
}

func (dto UpdateAccessRightDTO) Validate() error {
	if dto.CanCreate == nil && dto.CanRead == nil && dto.CanUpdate == nil && dto.CanDelete == nil {
		return errors.New("at least one permission field is required")
	}
	return nil
}

// ApplyTo merges the set fields into a stored row, leaving the rest alone.
func (dto UpdateAccessRightDTO) ApplyTo(row *accessrightsDatamodel.AccessRight) {
	if dto.CanCreate != nil {
		row.CanCreate = *dto.CanCreate
	}
	if dto.CanRead != nil {
		row.CanRead = *dto.CanRead
	}
	if dto.CanUpdate != nil {
		row.CanUpdate = *dto.CanUpdate
	}
	if dto.CanDelete != nil {
		row.CanDelete = *dto.CanDelete
	}
}

type GrantsResponse struct {
	Permissions []Grant `json:"permissions"`
}
