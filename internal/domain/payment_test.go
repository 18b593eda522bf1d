package domain

import (
	"testing"
)

func TestNewPayment(t *testing.T) {
	tests := []struct {
		name           string
		registrationID string
		userID         string
		amount         float64
		currency       string
		wantErr        bool
	}{
		{
			name:           "valid payment",
			registrationID: "event-123_user-456",
			userID:         "user-456",
			amount:         500.00,
			currency:       "INR",
			wantErr:        false,
		},
		{
			name:           "missing registration_id",
			registrationID: "",
			userID:         "user-456",
			amount:         500.00,
			currency:       "INR",
			wantErr:        true,
		},
		{
			name:           "missing user_id",
			registrationID: "event-123_user-456",
			userID:         "",
			amount:         500.00,
			currency:       "INR",
			wantErr:        true,
		},
		{
			name:           "zero amount",
			registrationID: "event-123_user-456",
			userID:         "user-456",
			amount:         0,
			currency:       "INR",
			wantErr:        true,
		},
		{
			name:           "negative amount",
			registrationID: "event-123_user-456",
			userID:         "user-456",
			amount:         -100.00,
			currency:       "INR",
			wantErr:        true,
		},
		{
			name:           "empty currency defaults to INR",
			registrationID: "event-123_user-456",
			userID:         "user-456",
			amount:         500.00,
			currency:       "",
			wantErr:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := NewPayment(tt.registrationID, tt.userID, "event-123", tt.amount, tt.currency)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if payment.ID == "" {
				t.Error("Expected payment ID to be set")
			}
			if payment.Status != PaymentStatusPending {
				t.Errorf("Expected status pending, got %s", payment.Status)
			}
			if payment.Currency != "INR" {
				t.Errorf("Expected currency INR, got %s", payment.Currency)
			}
		})
	}
}

func TestPayment_AmountMinorUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{"whole rupees", 500.00, 50000},
		{"exact paise", 499.50, 49950},
		// 0.29 and 1.13 have no exact float64 representation; truncation
		// instead of rounding would convert them one paisa low.
		{"float repr below 29 paise", 0.29, 29},
		{"float repr below 113 paise", 1.13, 113},
		{"float repr below 5807 paise", 58.07, 5807},
		{"large amount", 99999.99, 9999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := NewPayment("event-123_user-456", "user-456", "event-123", tt.amount, "INR")
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got := payment.AmountMinorUnits(); got != tt.want {
				t.Errorf("AmountMinorUnits(%v) = %d, want %d", tt.amount, got, tt.want)
			}
		})
	}
}

func TestPayment_AmountMinorUnitsAllPaise(t *testing.T) {
	// Every two-decimal price up to 1000 rupees must survive the float64
	// round trip without losing a paisa.
	for paise := int64(1); paise <= 100000; paise++ {
		payment := &Payment{Amount: float64(paise) / 100}
		if got := payment.AmountMinorUnits(); got != paise {
			t.Fatalf("AmountMinorUnits(%v) = %d, want %d", payment.Amount, got, paise)
		}
	}
}

func TestPayment_Complete(t *testing.T) {
	payment, _ := NewPayment("event-123_user-456", "user-456", "event-123", 500.00, "INR")

	err := payment.Complete("pay_abc123")
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if payment.Status != PaymentStatusCompleted {
		t.Errorf("Expected status completed, got %s", payment.Status)
	}
	if payment.GatewayPaymentID != "pay_abc123" {
		t.Errorf("Expected gateway_payment_id pay_abc123, got %s", payment.GatewayPaymentID)
	}
	if payment.CompletedAt == nil {
		t.Error("Expected completed_at to be set")
	}

	// Completing twice must fail
	err = payment.Complete("pay_other")
	if err != ErrPaymentNotPending {
		t.Errorf("Expected ErrPaymentNotPending, got %v", err)
	}
}

func TestPayment_Fail(t *testing.T) {
	payment, _ := NewPayment("event-123_user-456", "user-456", "event-123", 500.00, "INR")

	err := payment.Fail("checkout dismissed")
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if payment.Status != PaymentStatusFailed {
		t.Errorf("Expected status failed, got %s", payment.Status)
	}
	if payment.ErrorReason != "checkout dismissed" {
		t.Errorf("Expected error_reason 'checkout dismissed', got '%s'", payment.ErrorReason)
	}

	// Failed is terminal: no transition back to completed
	err = payment.Complete("pay_abc123")
	if err != ErrPaymentNotPending {
		t.Errorf("Expected ErrPaymentNotPending, got %v", err)
	}
}

func TestPayment_IsFinal(t *testing.T) {
	payment, _ := NewPayment("event-123_user-456", "user-456", "event-123", 500.00, "INR")

	if payment.IsFinal() {
		t.Error("Pending payment should not be final")
	}

	payment.Complete("pay_abc123")
	if !payment.IsFinal() {
		t.Error("Completed payment should be final")
	}
}
