package repository

import (
	"context"

	"zapshift/internal/domain"
)

// PaymentRepository defines the persistence operations for payment records.
type PaymentRepository interface {
	// Create persists a new payment record. Returns ErrAlreadyExists when a
	// record with the same transaction id is already present; callers rely on
	// this as the insert-if-absent signal for duplicate confirmations.
	Create(ctx context.Context, payment *domain.PaymentRecord) error

	// GetByTransactionID retrieves a payment record by transaction id.
	// Returns nil if no record exists for the given transaction id.
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.PaymentRecord, error)

	// ListByCustomerEmail retrieves payment records for a customer, most
	// recently paid first. An empty email returns all records.
	ListByCustomerEmail(ctx context.Context, email string) ([]*domain.PaymentRecord, error)
}
