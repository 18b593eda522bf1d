package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Torqix/aarohan-backend/internal/domain"
	"github.com/Torqix/aarohan-backend/internal/dto"
	"github.com/Torqix/aarohan-backend/internal/events"
	"github.com/Torqix/aarohan-backend/internal/repository"
	"github.com/Torqix/aarohan-backend/pkg/logger"
)

// registrationService implements the RegistrationService interface
type registrationService struct {
	regRepo   repository.RegistrationRepository
	teamRepo  repository.TeamRepository
	publisher events.Publisher
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(regRepo repository.RegistrationRepository, teamRepo repository.TeamRepository, publisher events.Publisher) RegistrationService {
	return &registrationService{
		regRepo:   regRepo,
		teamRepo:  teamRepo,
		publisher: publisher,
	}
}

// Register signs the user up for an event. For team events the request must
// carry a team name (create) or an invite code (join). All admission checks
// happen inside the repository transaction.
func (s *registrationService) Register(ctx context.Context, eventID, userID string, req *dto.RegisterRequest) (*domain.Registration, *domain.Team, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, nil, errors.New(msg)
	}

	reg, err := domain.NewRegistration(eventID, userID, req.Phone, req.College, req.StudentID)
	if err != nil {
		return nil, nil, err
	}

	var team *domain.Team
	if req.InviteCode != "" {
		team, err = s.regRepo.JoinTeam(ctx, reg, req.InviteCode)
	} else {
		team, err = s.regRepo.Register(ctx, reg, req.TeamName)
	}
	if err != nil {
		return nil, nil, err
	}

	logger.InfoCtx(ctx, "registration created",
		zap.String("registration_id", reg.ID),
		zap.String("event_id", eventID),
		zap.String("user_id", userID))

	s.publisher.Publish(ctx, events.TopicRegistrationCreated, reg.ID, events.RegistrationCreatedEvent{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		UserID:         reg.UserID,
		TeamID:         reg.TeamID,
		PaymentStatus:  reg.PaymentStatus,
		Timestamp:      time.Now(),
	})

	return reg, team, nil
}

// GetByID retrieves a registration
func (s *registrationService) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	reg, err := s.regRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrRegistrationNotFound
	}
	return reg, nil
}

// ListByUser retrieves the caller's registrations
func (s *registrationService) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return s.regRepo.ListByUser(ctx, userID)
}

// ListByEvent retrieves an event's registrations for the admin dashboard
func (s *registrationService) ListByEvent(ctx context.Context, eventID string, limit, offset int) ([]*domain.Registration, int, error) {
	return s.regRepo.ListByEvent(ctx, eventID, limit, offset)
}

// UpdateStatus records an admin approve/reject decision
func (s *registrationService) UpdateStatus(ctx context.Context, id, status string) (*domain.Registration, error) {
	if status != domain.RegistrationStatusApproved && status != domain.RegistrationStatusRejected {
		return nil, errors.New("status must be approved or rejected")
	}

	if err := s.regRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	reg, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.TopicRegistrationApproved, reg.ID, events.RegistrationStatusEvent{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		Status:         reg.Status,
		Timestamp:      time.Now(),
	})

	return reg, nil
}

// GetTeam retrieves a team with its members
func (s *registrationService) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrTeamNotFound
	}
	return team, nil
}
