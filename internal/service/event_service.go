package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Torqix/aarohan-backend/internal/domain"
	"github.com/Torqix/aarohan-backend/internal/dto"
	"github.com/Torqix/aarohan-backend/internal/repository"
)

// eventService implements the EventService interface
type eventService struct {
	eventRepo repository.EventRepository
	teamRepo  repository.TeamRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository, teamRepo repository.TeamRepository) EventService {
	return &eventService{eventRepo: eventRepo, teamRepo: teamRepo}
}

// Create creates a new event
func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	event, err := domain.NewEvent(uuid.New().String(), req.Title, req.Description, req.Category, req.Date, req.MaxParticipants)
	if err != nil {
		return nil, err
	}
	event.Location = req.Location
	event.BannerURL = req.BannerURL
	event.IsPaid = req.IsPaid
	event.Price = req.Price
	event.IsTeamEvent = req.IsTeamEvent
	event.MaxTeamSize = req.MaxTeamSize
	if !event.IsTeamEvent {
		event.MaxTeamSize = 1
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// GetByID retrieves an event
func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

// List retrieves events matching the query
func (s *eventService) List(ctx context.Context, query *dto.ListEventsQuery) ([]*domain.Event, int, error) {
	filter := repository.EventFilter{
		Category: query.Category,
		Status:   query.Status,
		Limit:    query.PerPage,
		Offset:   (query.Page - 1) * query.PerPage,
	}
	return s.eventRepo.List(ctx, filter)
}

// Update applies the provided fields to an event
func (s *eventService) Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*domain.Event, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.BannerURL != nil {
		event.BannerURL = *req.BannerURL
	}
	if req.MaxParticipants != nil {
		// Never shrink below the already-admitted count
		if *req.MaxParticipants < event.CurrentParticipants {
			return nil, errors.New("max participants cannot be below current registrations")
		}
		event.MaxParticipants = *req.MaxParticipants
	}
	if req.MaxTeamSize != nil {
		if !event.IsTeamEvent {
			return nil, errors.New("cannot set team size on a solo event")
		}
		// Never shrink below the biggest team already formed
		largest, err := s.teamRepo.LargestSize(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		if *req.MaxTeamSize < largest {
			return nil, errors.New("max team size cannot be below the largest existing team")
		}
		event.MaxTeamSize = *req.MaxTeamSize
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if req.Price != nil {
		event.Price = *req.Price
		event.IsPaid = *req.Price > 0
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event
func (s *eventService) Delete(ctx context.Context, id string) error {
	return s.eventRepo.Delete(ctx, id)
}
