package pagebuilder

import "encoding/json"

// CreateComponentDTO carries a new building block. Slug is optional; when
// absent it is derived from the title.
type CreateComponentDTO struct {
	Slug    string          `json:"slug,omitempty"`
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
	Root    json.RawMessage `json:"root,omitempty"`
	Zones   json.RawMessage `json:"zones,omitempty"`
}

// UpdateComponentDTO is a partial update; nil JSON fields are left alone.
type UpdateComponentDTO struct {
	Title   string          `json:"title,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
	Root    json.RawMessage `json:"root,omitempty"`
	Zones   json.RawMessage `json:"zones,omitempty"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// IsValidation marks the error for the transport layer's 400 mapping.
func (v ValidationError) IsValidation() {}

func (d CreateComponentDTO) Validate() error {
	if d.Title == "" && d.Slug == "" {
		return ValidationError{Msg: "title or slug is required"}
	}
	if len(d.Content) == 0 || !json.Valid(d.Content) {
		return ValidationError{Msg: "content must be a valid JSON document"}
	}
	if err := validOptionalJSON(d.Root, "root"); err != nil {
		return err
	}
	return validOptionalJSON(d.Zones, "zones")
}

func (d UpdateComponentDTO) Validate() error {
	if d.Title == "" && len(d.Content) == 0 && len(d.Root) == 0 && len(d.Zones) == 0 {
		return ValidationError{Msg: "at least one field is required"}
	}
	if err := validOptionalJSON(d.Content, "content"); err != nil {
		return err
	}
	if err := validOptionalJSON(d.Root, "root"); err != nil {
		return err
	}
	return validOptionalJSON(d.Zones, "zones")
}

func validOptionalJSON(raw json.RawMessage, field string) error {
	if len(raw) > 0 && !json.Valid(raw) {
		return ValidationError{Msg: field + " must be a valid JSON document"}
	}
	return nil
}

// ComponentsResponse is the paginated list shape.
type ComponentsResponse struct {
	Components []Component `json:"components"`
	Total      int64       `json:"total"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
}
