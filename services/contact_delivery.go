package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/resend/resend-go/v2"

	"momentum_legal_go/config"
	"momentum_legal_go/models"
)

// maxProviderResponse bounds how much of a provider response is read
const maxProviderResponse = 64 << 10

// Deliverer hands a sanitized submission to an email provider.
// Implementations make exactly one attempt and never retry.
type Deliverer interface {
	Deliver(ctx context.Context, sub *models.SanitizedSubmission) error
}

// NewDeliverer picks the delivery backend described by the configuration
func NewDeliverer(cfg *config.Config) Deliverer {
	if cfg.EmailTestMode {
		return &LogDeliverer{Inbox: cfg.ContactInbox}
	}
	if cfg.EmailProvider == config.ProviderResend {
		return NewResendDeliverer(cfg)
	}
	return NewEmailJSDeliverer(cfg)
}

// EmailJSDeliverer posts template parameters to the EmailJS REST API
type EmailJSDeliverer struct {
	ServiceID  string
	TemplateID string
	UserID     string
	PrivateKey string
	Endpoint   string
	Inbox      string
	HTTPClient *http.Client
}

func NewEmailJSDeliverer(cfg *config.Config) *EmailJSDeliverer {
	return &EmailJSDeliverer{
		ServiceID:  cfg.EmailJSServiceID,
		TemplateID: cfg.EmailJSTemplateID,
		UserID:     cfg.EmailJSUserID,
		PrivateKey: cfg.EmailJSPrivateKey,
		Endpoint:   cfg.EmailJSURL,
		Inbox:      cfg.ContactInbox,
		HTTPClient: &http.Client{Timeout: cfg.ProviderTimeout},
	}
}

// BuildEmailJSRequest maps a submission onto the EmailJS payload.
// The destination is always the configured inbox, never form input.
func (d *EmailJSDeliverer) BuildEmailJSRequest(sub *models.SanitizedSubmission) models.EmailJSRequest {
	return models.EmailJSRequest{
		ServiceID:   d.ServiceID,
		TemplateID:  d.TemplateID,
		UserID:      d.UserID,
		AccessToken: d.PrivateKey,
		TemplateParams: models.EmailJSTemplateParams{
			FromName:  sub.FullName,
			FromEmail: sub.Email,
			Company:   sub.Company,
			Timeline:  sub.Timeline,
			Services:  sub.Services,
			Budget:    sub.Budget,
			Message:   sub.Message,
			ToEmail:   d.Inbox,
		},
	}
}

func (d *EmailJSDeliverer) Deliver(ctx context.Context, sub *models.SanitizedSubmission) error {
	body, err := json.Marshal(d.BuildEmailJSRequest(sub))
	if err != nil {
		return fmt.Errorf("failed to encode emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs request failed: %w", err)
	}
	defer resp.Body.Close()

	text, readErr := io.ReadAll(io.LimitReader(resp.Body, maxProviderResponse))
	log.Printf("[INFO] EmailJS responded %d in %s", resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Provider: "emailjs", StatusCode: resp.StatusCode, Body: string(text)}
	}
	if readErr != nil {
		return fmt.Errorf("failed to read emailjs response: %w", readErr)
	}
	return nil
}

// ResendDeliverer sends the intake email through the Resend API
type ResendDeliverer struct {
	Client *resend.Client
	From   string
	Inbox  string
}

func NewResendDeliverer(cfg *config.Config) *ResendDeliverer {
	client := resend.NewCustomClient(&http.Client{Timeout: cfg.ProviderTimeout}, cfg.ResendAPIKey)
	return &ResendDeliverer{
		Client: client,
		From:   fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		Inbox:  cfg.ContactInbox,
	}
}

func (d *ResendDeliverer) Deliver(ctx context.Context, sub *models.SanitizedSubmission) error {
	email, err := BuildIntakeEmail(sub, d.Inbox)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    d.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
		ReplyTo: email.ReplyTo,
	}

	sent, err := d.Client.Emails.SendWithContext(ctx, params)
	if err != nil {
		// Transport failures and unreadable replies are ours to report; API refusals are upstream
		var urlErr *url.Error
		if errors.As(err, &urlErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("resend request failed: %w", err)
		}
		if isDecodeError(err) {
			return fmt.Errorf("failed to decode resend response: %w", err)
		}
		return &UpstreamError{Provider: "resend", Body: err.Error()}
	}

	log.Printf("[INFO] Intake email sent via Resend (ID: %s)", sent.Id)
	return nil
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}

// LogDeliverer prints the intake email instead of sending it
type LogDeliverer struct {
	Inbox string
}

func (d *LogDeliverer) Deliver(ctx context.Context, sub *models.SanitizedSubmission) error {
	email, err := BuildIntakeEmail(sub, d.Inbox)
	if err != nil {
		return err
	}
	logEmailToConsole(email)
	log.Printf("✅ Email logged successfully (test mode - not actually sent)")
	return nil
}
