package service

import (
	"context"

	"github.com/Torqix/aarohan-backend/internal/domain"
	"github.com/Torqix/aarohan-backend/internal/dto"
	"github.com/Torqix/aarohan-backend/internal/repository"
)

// EventService handles event lifecycle and browsing
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, query *dto.ListEventsQuery) ([]*domain.Event, int, error)
	Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}

// RegistrationService handles event sign-up, team formation and the admin
// approval queue
type RegistrationService interface {
	Register(ctx context.Context, eventID, userID string, req *dto.RegisterRequest) (*domain.Registration, *domain.Team, error)
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string, limit, offset int) ([]*domain.Registration, int, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Registration, error)
	GetTeam(ctx context.Context, id string) (*domain.Team, error)
}

// PaymentService handles gateway orders and their settlement
type PaymentService interface {
	CreateOrder(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	Verify(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) (*domain.Payment, error)
	MarkFailed(ctx context.Context, userID string, req *dto.MarkFailedRequest) (*domain.Payment, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
}

// CheckInService handles door scans
type CheckInService interface {
	CheckIn(ctx context.Context, eventID, registrationID, adminID string) (*domain.Registration, error)
}

// UserService handles account provisioning from verified tokens
type UserService interface {
	EnsureUser(ctx context.Context, id, email, name string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Repositories bundles the data access dependencies the services share
type Repositories struct {
	Events        repository.EventRepository
	Registrations repository.RegistrationRepository
	Teams         repository.TeamRepository
	Payments      repository.PaymentRepository
	Users         repository.UserRepository
}
