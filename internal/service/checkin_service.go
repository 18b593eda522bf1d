package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Torqix/aarohan-backend/internal/domain"
	"github.com/Torqix/aarohan-backend/internal/events"
	"github.com/Torqix/aarohan-backend/internal/repository"
	"github.com/Torqix/aarohan-backend/pkg/logger"
)

// checkInService implements the CheckInService interface
type checkInService struct {
	regRepo   repository.RegistrationRepository
	publisher events.Publisher
}

// NewCheckInService creates a new CheckInService
func NewCheckInService(regRepo repository.RegistrationRepository, publisher events.Publisher) CheckInService {
	return &checkInService{regRepo: regRepo, publisher: publisher}
}

// CheckIn processes a door scan. The registration must belong to the scanned
// event, be approved, and have its fee settled. The flip itself is a
// conditional update, so two scanners racing on one badge admit exactly once.
func (s *checkInService) CheckIn(ctx context.Context, eventID, registrationID, adminID string) (*domain.Registration, error) {
	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrRegistrationNotFound
	}
	if reg.EventID != eventID {
		return nil, domain.ErrEventMismatch
	}
	if err := reg.EligibleForCheckIn(); err != nil {
		return nil, err
	}

	checked, err := s.regRepo.CheckIn(ctx, registrationID, adminID, time.Now())
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "attendee checked in",
		zap.String("registration_id", checked.ID),
		zap.String("event_id", checked.EventID),
		zap.String("checked_in_by", adminID))

	s.publisher.Publish(ctx, events.TopicRegistrationCheckedIn, checked.ID, events.CheckInEvent{
		RegistrationID: checked.ID,
		EventID:        checked.EventID,
		UserID:         checked.UserID,
		CheckedInBy:    adminID,
		Timestamp:      time.Now(),
	})

	return checked, nil
}
