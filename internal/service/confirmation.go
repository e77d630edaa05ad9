package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"zapshift/internal/domain"
	internalRedis "zapshift/internal/redis"
	"zapshift/internal/repository"
)

const (
	// sessionLockTTL bounds how long a confirmation may hold the per-session lock.
	sessionLockTTL = 15 * time.Second

	// gatewayTimeout bounds the session lookup so a stalled gateway cannot
	// hold a confirmation request open indefinitely.
	gatewayTimeout = 10 * time.Second
)

// ConfirmationService reconciles a gateway checkout session into a paid parcel
// and an immutable payment record. Confirmation is idempotent per transaction
// id: the first call records the payment and assigns a tracking id, every
// later call returns the same tracking id without mutating anything.
type ConfirmationService struct {
	gateway     PaymentGateway
	paymentRepo repository.PaymentRepository
	parcelRepo  repository.ParcelRepository
	lockStore   internalRedis.SessionLockInterface
}

// NewConfirmationService creates a new ConfirmationService. lockStore may be
// nil; the lock only reduces duplicate gateway work, correctness comes from
// the unique index on transaction id.
func NewConfirmationService(
	gateway PaymentGateway,
	paymentRepo repository.PaymentRepository,
	parcelRepo repository.ParcelRepository,
	lockStore internalRedis.SessionLockInterface,
) *ConfirmationService {
	return &ConfirmationService{
		gateway:     gateway,
		paymentRepo: paymentRepo,
		parcelRepo:  parcelRepo,
		lockStore:   lockStore,
	}
}

// ConfirmResult is the outcome of a confirmation call.
type ConfirmResult struct {
	Success         bool
	AlreadyRecorded bool
	TransactionID   string
	TrackingID      string
	ParcelUpdated   bool
	Payment         *domain.PaymentRecord
}

// Confirm retrieves the checkout session and, if it is paid and not yet
// recorded, marks the parcel paid and inserts the payment record with a
// freshly generated tracking id.
func (s *ConfirmationService) Confirm(ctx context.Context, sessionID string) (*ConfirmResult, error) {
	if sessionID == "" {
		return nil, ErrInvalidSessionID
	}

	lookupCtx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	session, err := s.gateway.GetCheckoutSession(lookupCtx, sessionID)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionLookup, err)
	}

	// Serialize concurrent confirmations of the same session. Best effort:
	// if the lock cannot be acquired the unique index still prevents a
	// duplicate record.
	if s.lockStore != nil {
		if acquired, lockErr := s.lockStore.AcquireSessionLock(ctx, sessionID, sessionLockTTL); lockErr == nil && acquired {
			defer func() { _ = s.lockStore.ReleaseSessionLock(ctx, sessionID) }()
		}
	}

	// Duplicate confirmation, e.g. a reload of the success page: return the
	// original outcome and mutate nothing.
	existing, err := s.paymentRepo.GetByTransactionID(ctx, session.TransactionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &ConfirmResult{
			Success:         true,
			AlreadyRecorded: true,
			TransactionID:   existing.TransactionID,
			TrackingID:      existing.TrackingID,
			Payment:         existing,
		}, nil
	}

	// Abandoned or still-pending session: an expected outcome, not an error.
	if session.PaymentStatus != domain.SessionPaid {
		return &ConfirmResult{Success: false}, nil
	}

	trackingID, err := GenerateTrackingID()
	if err != nil {
		return nil, err
	}

	payment := &domain.PaymentRecord{
		ID:            uuid.New().String(),
		Amount:        float64(session.AmountTotal) / 100,
		Currency:      session.Currency,
		CustomerEmail: session.CustomerEmail,
		ParcelID:      session.ParcelID,
		ParcelName:    session.ParcelName,
		TransactionID: session.TransactionID,
		Status:        string(session.PaymentStatus),
		PaidAt:        time.Now().UTC(),
		TrackingID:    trackingID,
	}

	// The insert is the dedup anchor: the unique index on transaction_id
	// makes it an insert-if-absent, so it happens before the parcel update.
	// A racing confirmation that loses here returns the winner's record.
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			winner, getErr := s.paymentRepo.GetByTransactionID(ctx, session.TransactionID)
			if getErr != nil {
				return nil, getErr
			}
			if winner == nil {
				return nil, err
			}
			return &ConfirmResult{
				Success:         true,
				AlreadyRecorded: true,
				TransactionID:   winner.TransactionID,
				TrackingID:      winner.TrackingID,
				Payment:         winner,
			}, nil
		}
		return nil, err
	}

	parcelUpdated := true
	if err := s.parcelRepo.MarkPaid(ctx, session.ParcelID, trackingID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// The payment stands even when the parcel is gone; the caller sees
		// the update did not happen.
		parcelUpdated = false
	}

	return &ConfirmResult{
		Success:       true,
		TransactionID: session.TransactionID,
		TrackingID:    trackingID,
		ParcelUpdated: parcelUpdated,
		Payment:       payment,
	}, nil
}
