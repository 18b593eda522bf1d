package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway implements Gateway against the Razorpay Orders API
type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
	secret string
}

// NewRazorpayGateway creates a gateway client from API credentials
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
		secret: keySecret,
	}
}

// CreateOrder opens a Razorpay order. Amount is in paise.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create razorpay order: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return nil, fmt.Errorf("razorpay order response missing id")
	}
	return &Order{
		ID:       orderID,
		Amount:   amountMinor,
		Currency: currency,
	}, nil
}

// VerifySignature checks the checkout callback against the key secret
func (g *RazorpayGateway) VerifySignature(orderID, gatewayPaymentID, signature string) error {
	return VerifyHMAC(g.secret, orderID, gatewayPaymentID, signature)
}

// KeyID returns the public key id for the checkout widget
func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}
