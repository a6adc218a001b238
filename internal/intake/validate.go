// Package intake holds the consultation booking rules shared by the HTTP
// service and Go clients: field validation and the form submission state machine.
package intake

import (
	"careerpath-backend/internal/models"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// Minimum field lengths, counted in characters after trimming.
const (
	MinFullNameLen = 2
	MinPhoneLen    = 7
	MinConcernsLen = 10
)

// ErrMissingFields is returned when any of the six fields is empty.
var ErrMissingFields = errors.New("missing required fields")

// ValidationError names the first field that failed and the user-facing message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// HasRequiredFields reports whether all six fields are present and non-blank.
func HasRequiredFields(req models.CreateConsultationRequest) bool {
	for _, v := range []string{req.FullName, req.Email, req.Phone, string(req.PreferredMode), req.PreferredDate, req.Concerns} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// Validate checks the booking form and returns the first failure as a *ValidationError.
// Fields are checked in form order.
func Validate(req models.CreateConsultationRequest) error {
	if charCount(req.FullName) < MinFullNameLen {
		return &ValidationError{Field: "fullName", Message: "Please enter your full name"}
	}
	if !validEmail(req.Email) {
		return &ValidationError{Field: "email", Message: "Enter a valid email"}
	}
	if charCount(req.Phone) < MinPhoneLen {
		return &ValidationError{Field: "phone", Message: "Enter a valid phone number"}
	}
	if !req.PreferredMode.Valid() {
		return &ValidationError{Field: "preferredMode", Message: "Choose video, audio, or chat"}
	}
	if strings.TrimSpace(req.PreferredDate) == "" {
		return &ValidationError{Field: "preferredDate", Message: "Please select a date"}
	}
	if _, err := ParseDate(req.PreferredDate); err != nil {
		return &ValidationError{Field: "preferredDate", Message: "Please select a valid date (YYYY-MM-DD)"}
	}
	if charCount(req.Concerns) < MinConcernsLen {
		return &ValidationError{Field: "concerns", Message: "Please describe your concerns (min 10 chars)"}
	}
	return nil
}

// ParseDate parses a preferred date in the form's YYYY-MM-DD layout.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(models.DateLayout, strings.TrimSpace(s))
}

// Normalize trims surrounding whitespace from every field.
func Normalize(req models.CreateConsultationRequest) models.CreateConsultationRequest {
	return models.CreateConsultationRequest{
		FullName:      strings.TrimSpace(req.FullName),
		Email:         strings.TrimSpace(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		PreferredMode: models.ConsultationMode(strings.TrimSpace(string(req.PreferredMode))),
		PreferredDate: strings.TrimSpace(req.PreferredDate),
		Concerns:      strings.TrimSpace(req.Concerns),
	}
}

func charCount(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// validEmail accepts a bare addr-spec whose domain has at least one dot.
func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndex(s, "@")
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
