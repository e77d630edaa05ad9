package repository

import (
	"context"

	"zapshift/internal/domain"
)

// ParcelRepository defines the persistence operations for parcels.
type ParcelRepository interface {
	// Create persists a new parcel.
	Create(ctx context.Context, parcel *domain.Parcel) error

	// List retrieves parcels ordered by creation time, newest first.
	// An empty senderEmail returns all parcels.
	List(ctx context.Context, senderEmail string) ([]*domain.Parcel, error)

	// GetByID retrieves a parcel by ID.
	GetByID(ctx context.Context, id string) (*domain.Parcel, error)

	// Delete removes a parcel by ID.
	Delete(ctx context.Context, id string) error

	// MarkPaid sets the parcel's payment status to paid and assigns the
	// tracking id.
	MarkPaid(ctx context.Context, id, trackingID string) error
}
