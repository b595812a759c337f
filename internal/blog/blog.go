package blog

import (
	"encoding/json"
	"time"

	blogDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/blog"
	"gorm.io/datatypes"
)

// Component is the sanitized blog document returned to clients.
type Component struct {
	ID        int64           `json:"id"`
	Slug      string          `json:"slug"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func FromDataModel(row *blogDatamodel.BlogComponent) *Component {
	return &Component{
		ID:        row.ID,
		Slug:      row.Slug,
		Content:   json.RawMessage(row.Content),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func FromDataModels(rows []*blogDatamodel.BlogComponent) []Component {
	components := make([]Component, 0, len(rows))
	for _, row := range rows {
		components = append(components, *FromDataModel(row))
	}
	return components
}

func toJSONColumn(raw json.RawMessage) datatypes.JSON {
	return datatypes.JSON(raw)
}
