package services

import (
	"context"

	"momentum_legal_go/config"
	"momentum_legal_go/models"
)

// ContactService forwards accepted contact submissions to the intake inbox
type ContactService struct {
	cfg       *config.Config
	deliverer Deliverer
}

func NewContactService(cfg *config.Config, deliverer Deliverer) *ContactService {
	return &ContactService{cfg: cfg, deliverer: deliverer}
}

// Submit checks that delivery is configured, then makes a single delivery
// attempt. A missing setting is reported as *MissingConfigError before any
// outbound call is made.
func (s *ContactService) Submit(ctx context.Context, sub *models.SanitizedSubmission) error {
	if missing := s.cfg.MissingDeliveryKeys(); len(missing) > 0 {
		return &MissingConfigError{Keys: missing}
	}
	return s.deliverer.Deliver(ctx, sub)
}
