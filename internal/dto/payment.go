package dto

import (
	"time"

	"github.com/Torqix/aarohan-backend/internal/domain"
)

// CreateOrderRequest represents a request to open a payment order for a
// registration. The amount is never taken from the client; it is read from
// the event's price on the server.
type CreateOrderRequest struct {
	RegistrationID string `json:"registration_id" binding:"required"`
}

// CreateOrderResponse carries what the checkout widget needs to open
type CreateOrderResponse struct {
	PaymentID string  `json:"payment_id"`
	OrderID   string  `json:"order_id"`
	Amount    int64   `json:"amount"` // minor units (paise)
	Currency  string  `json:"currency"`
	KeyID     string  `json:"key_id"`
	Price     float64 `json:"price"`
}

// VerifyPaymentRequest represents the gateway callback payload after
// checkout completes
type VerifyPaymentRequest struct {
	PaymentID        string `json:"payment_id" binding:"required"`
	GatewayOrderID   string `json:"razorpay_order_id" binding:"required"`
	GatewayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature        string `json:"razorpay_signature" binding:"required"`
}

// MarkFailedRequest represents a client report that checkout was dismissed
// or the gateway declined
type MarkFailedRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
	Reason    string `json:"reason" binding:"max=500"`
}

// PaymentResponse represents a payment response
type PaymentResponse struct {
	ID               string     `json:"id"`
	RegistrationID   string     `json:"registration_id"`
	UserID           string     `json:"user_id"`
	EventID          string     `json:"event_id"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	GatewayOrderID   string     `json:"gateway_order_id,omitempty"`
	GatewayPaymentID string     `json:"gateway_payment_id,omitempty"`
	ErrorReason      string     `json:"error_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// FromPayment converts a domain Payment to PaymentResponse
func FromPayment(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:               p.ID,
		RegistrationID:   p.RegistrationID,
		UserID:           p.UserID,
		EventID:          p.EventID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Status:           p.Status,
		GatewayOrderID:   p.GatewayOrderID,
		GatewayPaymentID: p.GatewayPaymentID,
		ErrorReason:      p.ErrorReason,
		CreatedAt:        p.CreatedAt,
		CompletedAt:      p.CompletedAt,
	}
}
