package postgres

import (
	"errors"

	"github.com/unilanding/cms-backend/internal/blog"
	blogDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/blog"
	"gorm.io/gorm"
)

type BlogComponentRepository struct {
	db *gorm.DB
}

func NewBlogComponentRepository(db *gorm.DB) blog.RepositoryAPI {
	return &BlogComponentRepository{db: db}
}

func (r *BlogComponentRepository) GetBySlug(slug string) (*blogDatamodel.BlogComponent, error) {
	var row blogDatamodel.BlogComponent
	err := r.db.Where("slug = ?", slug).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *BlogComponentRepository) List(limit, offset int) ([]*blogDatamodel.BlogComponent, int64, error) {
	var total int64
	if err := r.db.Model(&blogDatamodel.BlogComponent{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*blogDatamodel.BlogComponent
	err := r.db.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

func (r *BlogComponentRepository) Create(row *blogDatamodel.BlogComponent) error {
	return r.db.Create(row).Error
}

func (r *BlogComponentRepository) Update(row *blogDatamodel.BlogComponent) error {
	return r.db.Save(row).Error
}

func (r *BlogComponentRepository) DeleteBySlug(slug string) (int64, error) {
	result := r.db.Where("slug = ?", slug).Delete(&blogDatamodel.BlogComponent{})
	return result.RowsAffected, result.Error
}
