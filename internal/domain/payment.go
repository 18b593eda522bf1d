package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency is the currency for all registration fees.
const DefaultCurrency = "INR"

// Payment tracks one attempt to pay a registration fee through the gateway.
// A payment transitions out of pending exactly once; a failed payment is
// terminal and a fresh order must be created to retry.
type Payment struct {
	ID               string     `json:"id"`
	RegistrationID   string     `json:"registration_id"`
	UserID           string     `json:"user_id"`
	EventID          string     `json:"event_id"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"` // pending, completed, failed
	GatewayOrderID   string     `json:"gateway_order_id,omitempty"`
	GatewayPaymentID string     `json:"gateway_payment_id,omitempty"`
	ErrorReason      string     `json:"error_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// NewPayment creates a pending payment for a registration.
func NewPayment(registrationID, userID, eventID string, amount float64, currency string) (*Payment, error) {
	if registrationID == "" {
		return nil, errors.New("registration id is required")
	}
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	now := time.Now()
	return &Payment{
		ID:             uuid.New().String(),
		RegistrationID: registrationID,
		UserID:         userID,
		EventID:        eventID,
		Amount:         amount,
		Currency:       currency,
		Status:         PaymentStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// AmountMinorUnits returns the amount in the gateway's minor units (paise).
// Rounded, not truncated: two-decimal prices like 0.29 have no exact float64
// representation and truncation would undercharge by one paisa.
func (p *Payment) AmountMinorUnits() int64 {
	return int64(math.Round(p.Amount * 100))
}

// Complete transitions the payment to completed and records the gateway
// payment id.
func (p *Payment) Complete(gatewayPaymentID string) error {
	if p.Status != PaymentStatusPending {
		return ErrPaymentNotPending
	}
	now := time.Now()
	p.Status = PaymentStatusCompleted
	p.GatewayPaymentID = gatewayPaymentID
	p.CompletedAt = &now
	p.UpdatedAt = now
	return nil
}

// Fail transitions the payment to failed. Called when the user dismisses the
// checkout flow or the gateway reports a failure.
func (p *Payment) Fail(reason string) error {
	if p.Status != PaymentStatusPending {
		return ErrPaymentNotPending
	}
	p.Status = PaymentStatusFailed
	p.ErrorReason = reason
	p.UpdatedAt = time.Now()
	return nil
}

// IsFinal reports whether the payment reached a terminal state.
func (p *Payment) IsFinal() bool {
	return p.Status == PaymentStatusCompleted || p.Status == PaymentStatusFailed
}
