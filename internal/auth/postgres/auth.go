package postgres

import (
	"errors"
	"strconv"

	userDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// UserRepository satisfies both auth.RepositoryAPI and the access-rights
// package's UserResolver, so dual-key resolution lives in exactly one place.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *userDatamodel.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var row userDatamodel.User
	err := r.db.Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var row userDatamodel.User
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetByIDOrCode resolves the dual-key lookup the permission endpoints use:
// a value that parses as an integer is treated as the primary key, anything
// else as the external code. An integer miss falls through to the code
// lookup because 8-digit external codes are themselves numeric.
func (r *UserRepository) GetByIDOrCode(idOrCode string) (*userDatamodel.User, error) {
	if id, err := strconv.ParseInt(idOrCode, 10, 64); err == nil {
		row, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		if row != nil {
			return row, nil
		}
	}

	var row userDatamodel.User
	err := r.db.Where("external_code = ?", idOrCode).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *UserRepository) Update(user *userDatamodel.User) error {
	return r.db.Save(user).Error
}

// ResolveUserID maps an id-or-code key to the numeric primary key grant rows
// are stored under. Missing users surface as (0, nil); the caller decides
// the error shape.
func (r *UserRepository) ResolveUserID(idOrCode string) (int64, error) {
	row, err := r.GetByIDOrCode(idOrCode)
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, nil
	}
	return row.ID, nil
}
