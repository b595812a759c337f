package blog

import (
	"encoding/json"
	"regexp"
	"strings"
)

// UpsertComponentDTO carries one blog document. Content is stored verbatim;
// only the slug is validated because it becomes part of a URL.
type UpsertComponentDTO struct {
	Slug    string          `json:"slug"`
	Content json.RawMessage `json:"content"`
}

type UpdateComponentDTO struct {
	Content json.RawMessage `json:"content"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// IsValidation marks the error for the transport layer's 400 mapping.
func (v ValidationError) IsValidation() {}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func (d UpsertComponentDTO) Validate() error {
	if !slugPattern.MatchString(strings.TrimSpace(d.Slug)) {
		return ValidationError{Msg: "slug must be lowercase letters, digits and hyphens"}
	}
	if len(d.Content) == 0 || !json.Valid(d.Content) {
		return ValidationError{Msg: "content must be a valid JSON document"}
	}
	return nil
}

func (d UpdateComponentDTO) Validate() error {
	if len(d.Content) == 0 || !json.Valid(d.Content) {
		return ValidationError{Msg: "content must be a valid JSON document"}
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
