package postgres

import (
	"context"
	"database/sql"
	"errors"

	"zapshift/internal/domain"
)

// PaymentRepository implements repository.PaymentRepository using PostgreSQL.
//
// The payments table carries a unique index on transaction_id; Create surfaces
// a violation as repository.ErrAlreadyExists, which makes the insert an atomic
// insert-if-absent and closes the window between the duplicate check and the
// insert during concurrent confirmations.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

// Create persists a new payment record.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.PaymentRecord) error {
	query := `
		INSERT INTO payments (id, amount, currency, customer_email, parcel_id, parcel_name, transaction_id, status, paid_at, tracking_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.Amount,
		payment.Currency,
		payment.CustomerEmail,
		payment.ParcelID,
		payment.ParcelName,
		payment.TransactionID,
		payment.Status,
		payment.PaidAt,
		payment.TrackingID,
	)
	return mapInsertError(err)
}

// GetByTransactionID retrieves a payment record by transaction id.
// Returns nil if no record exists for the given transaction id.
func (r *PaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.PaymentRecord, error) {
	query := `
		SELECT id, amount, currency, customer_email, parcel_id, parcel_name, transaction_id, status, paid_at, tracking_id
		FROM payments WHERE transaction_id = $1
	`
	var p domain.PaymentRecord
	err := r.q.QueryRowContext(ctx, query, transactionID).Scan(
		&p.ID,
		&p.Amount,
		&p.Currency,
		&p.CustomerEmail,
		&p.ParcelID,
		&p.ParcelName,
		&p.TransactionID,
		&p.Status,
		&p.PaidAt,
		&p.TrackingID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ListByCustomerEmail retrieves payment records for a customer, most recently
// paid first.
func (r *PaymentRepository) ListByCustomerEmail(ctx context.Context, email string) ([]*domain.PaymentRecord, error) {
	query := `
		SELECT id, amount, currency, customer_email, parcel_id, parcel_name, transaction_id, status, paid_at, tracking_id
		FROM payments
	`
	args := []any{}
	if email != "" {
		query += ` WHERE customer_email = $1`
		args = append(args, email)
	}
	query += ` ORDER BY paid_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.PaymentRecord
	for rows.Next() {
		var p domain.PaymentRecord
		if err := rows.Scan(&p.ID, &p.Amount, &p.Currency, &p.CustomerEmail, &p.ParcelID, &p.ParcelName, &p.TransactionID, &p.Status, &p.PaidAt, &p.TrackingID); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}
