package service

import (
	"context"
	"fmt"
	"math"
)

// CheckoutService creates hosted checkout sessions for parcel payments.
type CheckoutService struct {
	gateway    PaymentGateway
	siteDomain string
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(gateway PaymentGateway, siteDomain string) *CheckoutService {
	return &CheckoutService{
		gateway:    gateway,
		siteDomain: siteDomain,
	}
}

// CreateCheckoutRequest contains the parameters for starting a checkout.
type CreateCheckoutRequest struct {
	Cost        float64
	ParcelName  string
	ParcelID    string
	SenderEmail string
}

func (req CreateCheckoutRequest) validate() error {
	if req.ParcelID == "" {
		return ErrInvalidParcelID
	}
	if req.SenderEmail == "" {
		return ErrInvalidSenderEmail
	}
	if req.ParcelName == "" {
		return ErrInvalidParcelName
	}
	if req.Cost <= 0 {
		return ErrInvalidCost
	}
	return nil
}

// CreateCheckout creates a checkout session and returns the hosted payment
// page URL. The success URL carries the session id placeholder so the client
// can call back into payment confirmation after the gateway redirects it.
func (s *CheckoutService) CreateCheckout(ctx context.Context, req CreateCheckoutRequest) (string, error) {
	if err := req.validate(); err != nil {
		return "", err
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, CreateSessionRequest{
		AmountMinor:   toMinorUnits(req.Cost),
		Currency:      "usd",
		ProductName:   fmt.Sprintf("Place pay for: %s", req.ParcelName),
		CustomerEmail: req.SenderEmail,
		ParcelID:      req.ParcelID,
		ParcelName:    req.ParcelName,
		SuccessURL:    s.siteDomain + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.siteDomain + "/dashboard/payment-cancelled",
	})
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// CreateCheckoutLegacy creates a checkout session for the older client flow:
// no parcel name in the session metadata and a success URL without the session
// id placeholder.
func (s *CheckoutService) CreateCheckoutLegacy(ctx context.Context, req CreateCheckoutRequest) (string, error) {
	if err := req.validate(); err != nil {
		return "", err
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, CreateSessionRequest{
		AmountMinor:   toMinorUnits(req.Cost),
		Currency:      "usd",
		ProductName:   req.ParcelName,
		CustomerEmail: req.SenderEmail,
		ParcelID:      req.ParcelID,
		SuccessURL:    s.siteDomain + "/dashboard/payment-success",
		CancelURL:     s.siteDomain + "/dashboard/payment-cancelled",
	})
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// toMinorUnits converts a cost in major currency units to minor units.
func toMinorUnits(cost float64) int64 {
	return int64(math.Round(cost * 100))
}
