package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"momentum_legal_go/middleware"
	"momentum_legal_go/models"
	"momentum_legal_go/services"
)

const (
	messageEmailSent = "Email sent successfully"
	messageHoneypot  = "Thank you"
)

// ContactHandler serves POST /api/contact
type ContactHandler struct {
	service *services.ContactService
}

func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit validates a contact form submission and forwards it to the intake inbox
func (h *ContactHandler) Submit(c echo.Context) error {
	requestID := middleware.GetRequestID(c)

	var submission models.ContactSubmission
	decodeErr := decodeSubmission(c.Request().Body, &submission)

	// Bots that fill the hidden field are told they succeeded, whatever
	// else is wrong with the body
	if submission.HoneypotFilled() {
		log.Printf("[INFO] contact %s: honeypot triggered by %s", requestID, middleware.ClientIdentifier(c))
		return success(c, messageHoneypot)
	}

	if decodeErr != nil {
		var he *echo.HTTPError
		if errors.As(decodeErr, &he) {
			return decodeErr
		}
		return validationFailed(c, decodeErr)
	}

	if err := services.ValidateContactSubmission(&submission); err != nil {
		return validationFailed(c, err)
	}

	sanitized, err := services.SanitizeContactSubmission(&submission)
	if err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.Submit(c.Request().Context(), sanitized); err != nil {
		return deliveryFailed(c, requestID, err)
	}

	log.Printf("[INFO] contact %s: submission delivered", requestID)
	return success(c, messageEmailSent)
}

// decodeSubmission reads the JSON body, turning decoder failures into
// field-keyed validation errors
func decodeSubmission(body io.Reader, submission *models.ContactSubmission) error {
	err := json.NewDecoder(body).Decode(submission)
	if err == nil {
		return nil
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return echo.ErrStatusRequestEntityTooLarge
	}

	verr := &services.ValidationError{Details: map[string][]string{}}
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		verr.Details["body"] = []string{"Request body is required"}
	case errors.As(err, &typeErr) && typeErr.Field != "":
		verr.Details[typeErr.Field] = []string{"Must be a " + typeErr.Type.String()}
	default:
		verr.Details["body"] = []string{"Request body must be a JSON object"}
	}
	return verr
}

func success(c echo.Context, message string) error {
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, models.MessageResponse{Message: message})
}

func validationFailed(c echo.Context, err error) error {
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "Validation failed",
		Details: verr.Details,
	})
}

func deliveryFailed(c echo.Context, requestID string, err error) error {
	var missing *services.MissingConfigError
	var upstream *services.UpstreamError

	switch {
	case errors.As(err, &missing):
		log.Printf("[ERROR] contact %s: %v", requestID, missing)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: missing.Error()})
	case errors.As(err, &upstream):
		log.Printf("[ERROR] contact %s: %v", requestID, upstream)
		providerMessage := upstream.ProviderMessage()
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:           "Failed to send email",
			ProviderMessage: &providerMessage,
		})
	default:
		log.Printf("[ERROR] contact %s: delivery failed: %v", requestID, err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}
