package service

import (
	"context"

	"zapshift/internal/domain"
)

// CreateSessionRequest contains the parameters for creating a checkout session
// at the payment gateway.
type CreateSessionRequest struct {
	AmountMinor   int64 // minor currency units
	Currency      string
	ProductName   string
	CustomerEmail string
	ParcelID      string
	ParcelName    string // empty when the caller omits it from session metadata
	SuccessURL    string
	CancelURL     string
}

// PaymentGateway is the interface to the third-party payment processor. The
// gateway owns checkout session lifecycles; this system creates sessions and
// reads their outcome.
type PaymentGateway interface {
	// CreateCheckoutSession creates a hosted checkout session and returns it
	// with the hosted payment page URL populated.
	CreateCheckoutSession(ctx context.Context, req CreateSessionRequest) (*domain.CheckoutSession, error)

	// GetCheckoutSession retrieves a session by id to learn its outcome.
	GetCheckoutSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error)
}
