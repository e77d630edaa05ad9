package postgres

import (
	"context"
	"database/sql"
	"errors"

	"zapshift/internal/domain"
	"zapshift/internal/repository"
)

// ParcelRepository implements repository.ParcelRepository using PostgreSQL.
type ParcelRepository struct {
	q Querier
}

// NewParcelRepository creates a new PostgreSQL parcel repository.
func NewParcelRepository(db *sql.DB) *ParcelRepository {
	return &ParcelRepository{q: db}
}

// NewParcelRepositoryWithTx creates a parcel repository using a transaction.
func NewParcelRepositoryWithTx(tx *sql.Tx) *ParcelRepository {
	return &ParcelRepository{q: tx}
}

// Create persists a new parcel.
func (r *ParcelRepository) Create(ctx context.Context, parcel *domain.Parcel) error {
	query := `
		INSERT INTO parcels (id, sender_email, name, cost, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.q.ExecContext(ctx, query,
		parcel.ID,
		parcel.SenderEmail,
		parcel.Name,
		parcel.Cost,
		parcel.PaymentStatus,
		parcel.CreatedAt,
	)
	return err
}

// List retrieves parcels ordered by creation time, newest first.
func (r *ParcelRepository) List(ctx context.Context, senderEmail string) ([]*domain.Parcel, error) {
	query := `
		SELECT id, sender_email, name, cost, payment_status, COALESCE(tracking_id, ''), created_at
		FROM parcels
	`
	args := []any{}
	if senderEmail != "" {
		query += ` WHERE sender_email = $1`
		args = append(args, senderEmail)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parcels []*domain.Parcel
	for rows.Next() {
		var p domain.Parcel
		if err := rows.Scan(&p.ID, &p.SenderEmail, &p.Name, &p.Cost, &p.PaymentStatus, &p.TrackingID, &p.CreatedAt); err != nil {
			return nil, err
		}
		parcels = append(parcels, &p)
	}
	return parcels, rows.Err()
}

// GetByID retrieves a parcel by ID.
func (r *ParcelRepository) GetByID(ctx context.Context, id string) (*domain.Parcel, error) {
	query := `
		SELECT id, sender_email, name, cost, payment_status, COALESCE(tracking_id, ''), created_at
		FROM parcels WHERE id = $1
	`
	var p domain.Parcel
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.SenderEmail,
		&p.Name,
		&p.Cost,
		&p.PaymentStatus,
		&p.TrackingID,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Delete removes a parcel by ID.
func (r *ParcelRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM parcels WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MarkPaid sets the parcel's payment status to paid and assigns the tracking id.
// The tracking id is written only once; a parcel that already carries one keeps it.
func (r *ParcelRepository) MarkPaid(ctx context.Context, id, trackingID string) error {
	query := `
		UPDATE parcels
		SET payment_status = $1, tracking_id = COALESCE(tracking_id, $2)
		WHERE id = $3
	`
	result, err := r.q.ExecContext(ctx, query, domain.ParcelPaid, trackingID, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
