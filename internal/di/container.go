package di

import (
	"github.com/Torqix/aarohan-backend/internal/events"
	"github.com/Torqix/aarohan-backend/internal/gateway"
	"github.com/Torqix/aarohan-backend/internal/handler"
	"github.com/Torqix/aarohan-backend/internal/repository"
	"github.com/Torqix/aarohan-backend/internal/service"
	"github.com/Torqix/aarohan-backend/pkg/database"
)

// Container holds all dependencies for the registration backend
type Container struct {
	// Infrastructure
	DB        *database.PostgresDB
	Publisher events.Publisher
	Gateway   gateway.Gateway

	// Repositories
	EventRepo        repository.EventRepository
	RegistrationRepo repository.RegistrationRepository
	TeamRepo         repository.TeamRepository
	PaymentRepo      repository.PaymentRepository
	UserRepo         repository.UserRepository

	// Services
	EventService        service.EventService
	RegistrationService service.RegistrationService
	PaymentService      service.PaymentService
	CheckInService      service.CheckInService
	UserService         service.UserService

	// Handlers
	HealthHandler       *handler.HealthHandler
	EventHandler        *handler.EventHandler
	RegistrationHandler *handler.RegistrationHandler
	PaymentHandler      *handler.PaymentHandler
	CheckInHandler      *handler.CheckInHandler
	UserHandler         *handler.UserHandler
}

// ContainerConfig contains the infrastructure the container builds on
type ContainerConfig struct {
	DB        *database.PostgresDB
	Publisher events.Publisher
	Gateway   gateway.Gateway
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:        cfg.DB,
		Publisher: cfg.Publisher,
		Gateway:   cfg.Gateway,
	}

	pool := c.DB.Pool()
	c.EventRepo = repository.NewPostgresEventRepository(pool)
	c.RegistrationRepo = repository.NewPostgresRegistrationRepository(pool)
	c.TeamRepo = repository.NewPostgresTeamRepository(pool)
	c.PaymentRepo = repository.NewPostgresPaymentRepository(pool)
	c.UserRepo = repository.NewPostgresUserRepository(pool)

	c.EventService = service.NewEventService(c.EventRepo, c.TeamRepo)
	c.RegistrationService = service.NewRegistrationService(c.RegistrationRepo, c.TeamRepo, c.Publisher)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.RegistrationRepo, c.EventRepo, c.Gateway, c.Publisher)
	c.CheckInService = service.NewCheckInService(c.RegistrationRepo, c.Publisher)
	c.UserService = service.NewUserService(c.UserRepo)

	c.HealthHandler = handler.NewHealthHandler(c.DB)
	c.EventHandler = handler.NewEventHandler(c.EventService)
	c.RegistrationHandler = handler.NewRegistrationHandler(c.RegistrationService)
	c.PaymentHandler = handler.NewPaymentHandler(c.PaymentService)
	c.CheckInHandler = handler.NewCheckInHandler(c.CheckInService)
	c.UserHandler = handler.NewUserHandler(c.UserService)

	return c
}
