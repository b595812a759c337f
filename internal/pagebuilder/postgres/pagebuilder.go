package postgres

import (
	"errors"

	pagebuilderDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/pagebuilder"
	"github.com/unilanding/cms-backend/internal/pagebuilder"
	"gorm.io/gorm"
)

type PuckComponentRepository struct {
	db *gorm.DB
}

func NewPuckComponentRepository(db *gorm.DB) pagebuilder.RepositoryAPI {
	return &PuckComponentRepository{db: db}
}

func (r *PuckComponentRepository) GetBySlug(slug string) (*pagebuilderDatamodel.PuckComponent, error) {
	var row pagebuilderDatamodel.PuckComponent
	err := r.db.Where("slug = ?", slug).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *PuckComponentRepository) List(limit, offset int) ([]*pagebuilderDatamodel.PuckComponent, int64, error) {
	var total int64
	if err := r.db.Model(&pagebuilderDatamodel.PuckComponent{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*pagebuilderDatamodel.PuckComponent
	err := r.db.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

func (r *PuckComponentRepository) Create(row *pagebuilderDatamodel.PuckComponent) error {
	return r.db.Create(row).Error
}

func (r *PuckComponentRepository) Update(row *pagebuilderDatamodel.PuckComponent) error {
	return r.db.Save(row).Error
}

func (r *PuckComponentRepository) DeleteBySlug(slug string) (int64, error) {
	result := r.db.Where("slug = ?", slug).Delete(&pagebuilderDatamodel.PuckComponent{})
	return result.RowsAffected, result.Error
}
