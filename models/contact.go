package models

import (
	"bytes"
	"encoding/json"
)

// ContactSubmission is the JSON body posted by the website contact form
type ContactSubmission struct {
	Name      string `json:"name" validate:"omitempty,max=120"`
	FirstName string `json:"firstName" validate:"omitempty,max=60"`
	LastName  string `json:"lastName" validate:"omitempty,max=60"`
	Email     string `json:"email" validate:"required,email,max=190"`
	Company   string `json:"company" validate:"omitempty,max=160"`
	Timeline  string `json:"timeline" validate:"omitempty,max=120"`
	Services  string `json:"services" validate:"omitempty,max=240"`
	Message   string `json:"message" validate:"required,min=10,max=2000"`
	Budget    string `json:"budget" validate:"omitempty,max=120"`
	// Hidden field that people never see; bots tend to fill it in
	// Kept raw so a value of any JSON type still counts as filled
	HoneypotField json.RawMessage `json:"honeypotField" validate:"-"`
}

// HoneypotFilled reports whether the hidden field carries anything other
// than null or an empty string
func (s *ContactSubmission) HoneypotFilled() bool {
	raw := bytes.TrimSpace(s.HoneypotField)
	if len(raw) == 0 {
		return false
	}
	return !bytes.Equal(raw, []byte("null")) && !bytes.Equal(raw, []byte(`""`))
}

// SanitizedSubmission is a validated submission with control characters
// removed and fallbacks applied to absent optional fields
type SanitizedSubmission struct {
	FullName string
	Email    string
	Company  string
	Timeline string
	Services string
	Budget   string
	Message  string
}

// EmailJSRequest is the body accepted by the EmailJS send endpoint
type EmailJSRequest struct {
	ServiceID      string                `json:"service_id"`
	TemplateID     string                `json:"template_id"`
	UserID         string                `json:"user_id"`
	AccessToken    string                `json:"accessToken,omitempty"`
	TemplateParams EmailJSTemplateParams `json:"template_params"`
}

// EmailJSTemplateParams are the variables referenced by the EmailJS template
type EmailJSTemplateParams struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Company   string `json:"company"`
	Timeline  string `json:"timeline"`
	Services  string `json:"services"`
	Budget    string `json:"budget"`
	Message   string `json:"message"`
	ToEmail   string `json:"to_email"`
}

// MessageResponse is returned on success
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is returned on every failure path
type ErrorResponse struct {
	Error           string              `json:"error"`
	Details         map[string][]string `json:"details,omitempty"`
	ProviderMessage *string             `json:"providerMessage,omitempty"`
}
