package postgres

import (
	"github.com/unilanding/cms-backend/internal/catalog"
	catalogDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/catalog"
	"gorm.io/gorm"
)

type ModuleRepository struct {
	db *gorm.DB
}

func NewModuleRepository(db *gorm.DB) catalog.RepositoryAPI {
	return &ModuleRepository{db: db}
}

func (r *ModuleRepository) GetAll() ([]*catalogDatamodel.SystemModule, error) {
	var modules []*catalogDatamodel.SystemModule
	err := r.db.Order("name ASC").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) GetByName(name string) (*catalogDatamodel.SystemModule, error) {
	var module catalogDatamodel.SystemModule
	err := r.db.Where("name = ?", name).First(&module).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &module, nil
}

func (r *ModuleRepository) Create(module *catalogDatamodel.SystemModule) error {
	return r.db.Create(module).Error
}
