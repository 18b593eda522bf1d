package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/Torqix/aarohan-backend/internal/domain"
)

// Order is a payment order opened at the gateway. The client-side checkout
// widget is handed the OrderID and posts back a signed result.
type Order struct {
	ID       string
	Amount   int64 // minor units
	Currency string
}

// Gateway abstracts the payment provider
type Gateway interface {
	// CreateOrder opens an order for the given amount in minor units.
	// Receipt is an opaque reference stored at the provider for
	// reconciliation; we pass the payment id.
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error)
	// VerifySignature checks the checkout callback signature covering
	// orderID and gatewayPaymentID.
	VerifySignature(orderID, gatewayPaymentID, signature string) error
	// KeyID returns the public key id the checkout widget is initialized with.
	KeyID() string
}

// VerifyHMAC checks an HMAC-SHA256 hex signature over "orderID|paymentID"
// using a constant-time comparison.
func VerifyHMAC(secret, orderID, gatewayPaymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return domain.ErrInvalidSignature
	}
	return nil
}
