package auth

import (
	"regexp"
	"strings"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterDTO carries the fields required to create an account. ExternalCode
// is the student-number style secondary key (8 or 9 digits).
type RegisterDTO struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"full_name"`
	ExternalCode string `json:"external_code"`
}

// UpdateUserDTO is a partial profile update; zero-value fields are skipped.
type UpdateUserDTO struct {
	Email        string `json:"email,omitempty"`
	FullName     string `json:"full_name,omitempty"`
	ExternalCode string `json:"external_code,omitempty"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// IsValidation marks the error for the transport layer's 400 mapping.
func (v ValidationError) IsValidation() {}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	lowerPattern = regexp.MustCompile(`[a-z]`)
	digitPattern = regexp.MustCompile(`[0-9]`)
	codePattern  = regexp.MustCompile(`^[0-9]{8,9}$`)
)

// Validate checks required fields and returns a ValidationError on failure.
func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d RegisterDTO) Validate() error {
	if d.Email == "" || !emailPattern.MatchString(d.Email) {
		return ValidationError{Msg: "a valid email is required"}
	}
	if err := validatePassword(d.Password); err != nil {
		return err
	}
	if strings.TrimSpace(d.FullName) == "" {
		return ValidationError{Msg: "full_name is required"}
	}
	if !codePattern.MatchString(d.ExternalCode) {
		return ValidationError{Msg: "external_code must be 8 or 9 digits"}
	}
	return nil
}

func (d UpdateUserDTO) Validate() error {
	if d.Email == "" && d.FullName == "" && d.ExternalCode == "" {
		return ValidationError{Msg: "at least one field is required"}
	}
	if d.Email != "" && !emailPattern.MatchString(d.Email) {
		return ValidationError{Msg: "a valid email is required"}
	}
	if d.ExternalCode != "" && !codePattern.MatchString(d.ExternalCode) {
		return ValidationError{Msg: "external_code must be 8 or 9 digits"}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 || len(password) > 50 {
		return ValidationError{Msg: "password must be between 6 and 50 characters"}
	}
	if !upperPattern.MatchString(password) || !lowerPattern.MatchString(password) || !digitPattern.MatchString(password) {
		return ValidationError{Msg: "password must have an uppercase, lowercase letter and a number"}
	}
	return nil
}
