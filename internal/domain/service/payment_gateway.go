package service

import "context"

// GatewayCustomer represents the payer passed to a payment gateway.
type GatewayCustomer struct {
	Name  string
	Email string
	Phone string
}

// GatewayRequest represents a payment-initiation request.
type GatewayRequest struct {
	Reference   string // our payment ID, echoed back on verification
	Amount      float64
	Currency    string
	Description string
	Customer    GatewayCustomer
	RedirectURL string
}

// GatewayResponse represents the gateway's answer to initiation or
// verification. Status is normalized to pending/successful/failed.
type GatewayResponse struct {
	Reference   string
	RedirectURL string
	Status      string
	RawStatus   string
}

// PaymentGatewayService is the narrow interface both providers implement.
type PaymentGatewayService interface {
	InitiatePayment(ctx context.Context, req GatewayRequest) (*GatewayResponse, error)
	VerifyPayment(ctx context.Context, reference string) (*GatewayResponse, error)
}
