package services

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"log"
	"strings"
	texttemplate "text/template"

	"github.com/microcosm-cc/bluemonday"

	"momentum_legal_go/models"
)

// Email represents an email message
type Email struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

const intakeSubject = "New Contact Form Submission from Momentum Legal Website"

var intakeTextTemplate = texttemplate.Must(texttemplate.New("intake.txt").Parse(`New Contact Form Submission from Momentum Legal Website

Contact Information:
- Name: {{.FullName}}
- Email: {{.Email}}
- Company: {{.Company}}
- Timeline: {{.Timeline}}
- Services: {{.Services}}
- Budget: {{.Budget}}

Message:
{{.Message}}

---
This email was sent from the Momentum Legal website contact form.`))

var intakeHTMLTemplate = htmltemplate.Must(htmltemplate.New("intake.html").Parse(`<h2>New Contact Form Submission</h2>
<table>
<tr><td><strong>Name</strong></td><td>{{.FullName}}</td></tr>
<tr><td><strong>Email</strong></td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
<tr><td><strong>Company</strong></td><td>{{.Company}}</td></tr>
<tr><td><strong>Timeline</strong></td><td>{{.Timeline}}</td></tr>
<tr><td><strong>Services</strong></td><td>{{.Services}}</td></tr>
<tr><td><strong>Budget</strong></td><td>{{.Budget}}</td></tr>
</table>
<h3>Message</h3>
<p>{{.Message}}</p>
<hr>
<p><small>This email was sent from the Momentum Legal website contact form.</small></p>`))

// intakePolicy is applied to the rendered HTML body before it leaves the process
var intakePolicy = bluemonday.UGCPolicy()

// BuildIntakeEmail renders the notification sent to the firm's intake inbox
func BuildIntakeEmail(sub *models.SanitizedSubmission, inbox string) (*Email, error) {
	var text bytes.Buffer
	if err := intakeTextTemplate.Execute(&text, sub); err != nil {
		return nil, fmt.Errorf("failed to render intake text: %w", err)
	}

	var html bytes.Buffer
	if err := intakeHTMLTemplate.Execute(&html, sub); err != nil {
		return nil, fmt.Errorf("failed to render intake html: %w", err)
	}

	return &Email{
		To:       []string{inbox},
		ReplyTo:  sub.Email,
		Subject:  intakeSubject,
		HTMLBody: intakePolicy.Sanitize(html.String()),
		TextBody: text.String(),
	}, nil
}

// logEmailToConsole logs the envelope of an email in test mode. Bodies carry
// visitor details and are only summarized.
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n📧 EMAIL (Test Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("Body: %d text bytes, %d html bytes", len(email.TextBody), len(email.HTMLBody))
	log.Printf("%s\n", separator)
}
