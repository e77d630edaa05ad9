package service

import (
	"context"

	"zapshift/internal/domain"
	"zapshift/internal/repository"
)

// PaymentService exposes payment history for authenticated customers.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

// History lists payment records for requestedEmail, most recently paid first.
// A caller may only request history for an email matching their verified
// identity.
func (s *PaymentService) History(ctx context.Context, requestedEmail, verifiedEmail string) ([]*domain.PaymentRecord, error) {
	if requestedEmail == "" {
		return nil, ErrInvalidEmail
	}
	if requestedEmail != verifiedEmail {
		return nil, ErrForbidden
	}
	return s.paymentRepo.ListByCustomerEmail(ctx, requestedEmail)
}
