package catalog

import (
	"strings"
	"time"

	catalogDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/catalog"
)

type Module struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Module) IsActiveModule() bool {
	return m.IsActive
}

// NormalizeName trims surrounding whitespace. Normalization happens once on
// the write path; lookups are exact matches against the stored name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

func NewModule(name string, active bool) *Module {
	now := time.Now()
	return &Module{
		Name:      NormalizeName(name),
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ToDataModel(m *Module) *catalogDatamodel.SystemModule {
	return &catalogDatamodel.SystemModule{
		ID:        m.ID,
		Name:      m.Name,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromDataModel(m *catalogDatamodel.SystemModule) *Module {
	return &Module{
		ID:        m.ID,
		Name:      m.Name,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
