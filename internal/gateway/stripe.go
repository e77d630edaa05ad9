package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"zapshift/internal/domain"
	"zapshift/internal/service"
)

const (
	metadataParcelID   = "parcelId"
	metadataParcelName = "parcelName"

	retrieveAttempts = 3
	retrieveBackoff  = 200 * time.Millisecond
)

// StripeGateway implements service.PaymentGateway against the Stripe Checkout
// API.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway creates a new StripeGateway.
func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

// CreateCheckoutSession creates a hosted checkout session for a single parcel
// payment.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req service.CreateSessionRequest) (*domain.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params:        stripe.Params{Context: ctx},
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.AddMetadata(metadataParcelID, req.ParcelID)
	if req.ParcelName != "" {
		params.AddMetadata(metadataParcelName, req.ParcelName)
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return toDomainSession(sess), nil
}

// GetCheckoutSession retrieves a session by id. Transient failures are retried
// a bounded number of times; permanent rejections (unknown id, bad key) are
// surfaced immediately.
func (g *StripeGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	}

	var lastErr error
	for attempt := 0; attempt < retrieveAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retrieveBackoff):
			}
		}

		sess, err := g.api.CheckoutSessions.Get(sessionID, params)
		if err == nil {
			return toDomainSession(sess), nil
		}
		if !isTransient(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// isTransient reports whether a Stripe call failed in a way worth retrying:
// server-side errors and transport failures, never 4xx rejections.
func isTransient(err error) bool {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.HTTPStatusCode >= 500
	}
	// Non-API errors are transport-level failures.
	return true
}

// toDomainSession maps a Stripe checkout session to the local view.
func toDomainSession(sess *stripe.CheckoutSession) *domain.CheckoutSession {
	out := &domain.CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: domain.SessionPaymentStatus(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
		CustomerEmail: sess.CustomerEmail,
	}
	if sess.PaymentIntent != nil {
		out.TransactionID = sess.PaymentIntent.ID
	}
	if sess.Metadata != nil {
		out.ParcelID = sess.Metadata[metadataParcelID]
		out.ParcelName = sess.Metadata[metadataParcelName]
	}
	return out
}

// Ensure interface is satisfied.
var _ service.PaymentGateway = (*StripeGateway)(nil)
