package services

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"momentum_legal_go/models"
)

// Fallback text for optional fields the visitor left empty
const (
	FallbackNotProvided  = "Not provided"
	FallbackNotSpecified = "Not specified"
)

const minMessageLength = 10

var contactValidator = newContactValidator()

func newContactValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so the form can highlight them
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(contactNameRule, models.ContactSubmission{})
	return v
}

// contactNameRule requires either name or both firstName and lastName
func contactNameRule(sl validator.StructLevel) {
	s := sl.Current().Interface().(models.ContactSubmission)
	if s.Name == "" && (s.FirstName == "" || s.LastName == "") {
		sl.ReportError(s.Name, "name", "Name", "name_required", "")
	}
}

// ValidateContactSubmission checks the submission against the form schema.
// It returns a *ValidationError listing every violated constraint, or nil.
func ValidateContactSubmission(s *models.ContactSubmission) error {
	err := contactValidator.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrors {
		verr.add(fe.Field(), describeFieldError(fe))
	}
	return verr
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "name_required":
		return "Provide a name, or both a first and last name"
	default:
		return fmt.Sprintf("Failed %s validation", fe.Tag())
	}
}

// SanitizeContactSubmission strips control characters, trims every field and
// fills in fallbacks. It also rejects names and messages that only become
// empty (or too short) once whitespace is removed.
func SanitizeContactSubmission(s *models.ContactSubmission) (*models.SanitizedSubmission, error) {
	out := &models.SanitizedSubmission{
		FullName: composeFullName(s),
		Email:    cleanText(s.Email),
		Company:  withFallback(s.Company, FallbackNotProvided),
		Timeline: withFallback(s.Timeline, FallbackNotSpecified),
		Services: withFallback(s.Services, FallbackNotSpecified),
		Budget:   withFallback(s.Budget, FallbackNotSpecified),
		Message:  cleanText(s.Message),
	}

	verr := &ValidationError{}
	if out.FullName == "" {
		verr.add("name", "Name must not be blank")
	}
	if utf8.RuneCountInString(out.Message) < minMessageLength {
		verr.add("message", fmt.Sprintf("Must be at least %d characters", minMessageLength))
	}
	if len(verr.Details) > 0 {
		return nil, verr
	}
	return out, nil
}

// composeFullName prefers name and falls back to "firstName lastName"
func composeFullName(s *models.ContactSubmission) string {
	if name := cleanText(s.Name); name != "" {
		return name
	}
	return strings.TrimSpace(cleanText(s.FirstName) + " " + cleanText(s.LastName))
}

func withFallback(value, fallback string) string {
	if cleaned := cleanText(value); cleaned != "" {
		return cleaned
	}
	return fallback
}

func cleanText(value string) string {
	return strings.TrimSpace(stripControlChars(value))
}

// stripControlChars replaces U+0000-U+001F and U+007F with a space
func stripControlChars(value string) string {
	return strings.Map(func(r rune) rune {
		if r <= 0x1F || r == 0x7F {
			return ' '
		}
		return r
	}, value)
}
