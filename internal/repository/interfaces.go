package repository

import (
	"context"
	"time"

	"github.com/Torqix/aarohan-backend/internal/domain"
)

// EventFilter narrows event listings
type EventFilter struct {
	Category string
	Status   string
	Limit    int
	Offset   int
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, filter EventFilter) ([]*domain.Event, int, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
}

// RegistrationRepository defines the interface for registration data access.
// Register and JoinTeam run the full admission decision in one transaction:
// every capacity and uniqueness check happens against rows locked inside it.
type RegistrationRepository interface {
	// Register admits the registration to its event. When teamName is
	// non-empty a new team is created with the registrant as leader. Returns
	// the created team, if any.
	Register(ctx context.Context, reg *domain.Registration, teamName string) (*domain.Team, error)
	// JoinTeam admits the registration into the team identified by
	// inviteCode on the registration's event.
	JoinTeam(ctx context.Context, reg *domain.Registration, inviteCode string) (*domain.Team, error)
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string, limit, offset int) ([]*domain.Registration, int, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// CheckIn flips the checked_in flag exactly once; a second call for the
	// same registration returns domain.ErrAlreadyCheckedIn.
	CheckIn(ctx context.Context, id, adminID string, at time.Time) (*domain.Registration, error)
}

// TeamRepository defines the read-side interface for teams. All team
// mutations go through RegistrationRepository transactions.
type TeamRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Team, error)
	// LargestSize returns the member count of the event's biggest team, 0
	// when the event has none.
	LargestSize(ctx context.Context, eventID string) (int, error)
}

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetPendingByRegistration(ctx context.Context, registrationID string) (*domain.Payment, error)
	// SetGatewayOrder records the gateway order id on a still-pending payment.
	SetGatewayOrder(ctx context.Context, paymentID, orderID string) error
	// CompleteWithRegistration transitions the payment to completed and
	// updates the linked registration's payment fields in one transaction.
	CompleteWithRegistration(ctx context.Context, paymentID, gatewayPaymentID string) (*domain.Payment, error)
	// FailWithRegistration transitions the payment to failed and mirrors
	// the failure onto the registration in one transaction.
	FailWithRegistration(ctx context.Context, paymentID, reason string) (*domain.Payment, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Upsert creates the user on first sign-in or refreshes the mutable
	// profile fields. The stored role always wins over the incoming one.
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
