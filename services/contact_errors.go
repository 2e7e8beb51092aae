package services

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ProviderMessageLimit caps how much upstream error text reaches the caller
const ProviderMessageLimit = 200

// ValidationError carries field-keyed reasons for a rejected submission
type ValidationError struct {
	Details map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "invalid submission: " + strings.Join(fields, ", ")
}

func (e *ValidationError) add(field, reason string) {
	if e.Details == nil {
		e.Details = make(map[string][]string)
	}
	e.Details[field] = append(e.Details[field], reason)
}

// MissingConfigError reports deployment settings needed for delivery
type MissingConfigError struct {
	Keys []string
}

func (e *MissingConfigError) Error() string {
	return "Missing environment variables: " + strings.Join(e.Keys, ", ")
}

// UpstreamError means the email provider answered but refused the message
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s rejected the message: %s", e.Provider, truncate(e.Body, ProviderMessageLimit))
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, truncate(e.Body, ProviderMessageLimit))
}

// ProviderMessage is the caller-safe excerpt of the upstream error text
func (e *UpstreamError) ProviderMessage() string {
	return truncate(e.Body, ProviderMessageLimit)
}

// truncate cuts s to at most maxLen characters without splitting a rune
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen])
}
