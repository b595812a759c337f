package postgres

import (
	"github.com/unilanding/cms-backend/internal/accessrights"
	accessrightsDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/accessrights"
	"gorm.io/gorm"
)

type AccessRightRepository struct {
	db *gorm.DB
}

func NewAccessRightRepository(db *gorm.DB) accessrights.RepositoryAPI {
	return &AccessRightRepository{db: db}
}

// CreateBatch inserts the full row set in one statement. A duplicate
// (user_id, module_id) pair fails the whole batch; callers treat that as a
// provisioning error, not something to repair silently.
func (r *AccessRightRepository) CreateBatch(rows []*accessrightsDatamodel.AccessRight) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(rows).Error
}

func (r *AccessRightRepository) GetByUser(userID int64) ([]*accessrightsDatamodel.AccessRight, error) {
	var rows []*accessrightsDatamodel.AccessRight
	err := r.db.Where("user_id = ?", userID).Order("module_name ASC").Find(&rows).Error
	return rows, err
}

func (r *AccessRightRepository) GetByUserAndModule(userID int64, moduleName string) ([]*accessrightsDatamodel.AccessRight, error) {
	var rows []*accessrightsDatamodel.AccessRight
	err := r.db.Where("user_id = ? AND module_name = ?", userID, moduleName).Find(&rows).Error
	return rows, err
}

func (r *AccessRightRepository) Save(rows []*accessrightsDatamodel.AccessRight) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Save(rows).Error
}
