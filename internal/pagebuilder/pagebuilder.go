package pagebuilder

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	pagebuilderDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/pagebuilder"
	"gorm.io/datatypes"
)

// Component is one landing-page building block as seen by clients. Content,
// Root and Zones are opaque editor JSON.
type Component struct {
	ID        int64           `json:"id"`
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	Root      json.RawMessage `json:"root,omitempty"`
	Zones     json.RawMessage `json:"zones,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func FromDataModel(row *pagebuilderDatamodel.PuckComponent) *Component {
	return &Component{
		ID:        row.ID,
		Slug:      row.Slug,
		Title:     row.Title,
		Content:   json.RawMessage(row.Content),
		Root:      json.RawMessage(row.Root),
		Zones:     json.RawMessage(row.Zones),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func FromDataModels(rows []*pagebuilderDatamodel.PuckComponent) []Component {
	components := make([]Component, 0, len(rows))
	for _, row := range rows {
		components = append(components, *FromDataModel(row))
	}
	return components
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a title: lowercase, runs of anything
// outside [a-z0-9] collapse into single hyphens.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func toJSONColumn(raw json.RawMessage) datatypes.JSON {
	return datatypes.JSON(raw)
}
