package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"zapshift/internal/domain"
	"zapshift/internal/service"
)

func TestHistory_OwnEmail_ReturnsRecordsNewestFirst(t *testing.T) {
	t.Parallel()

	paymentRepo := NewMockPaymentRepository()
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	paymentRepo.AddPayment(&domain.PaymentRecord{
		TransactionID: "pi_old",
		CustomerEmail: "a@example.com",
		PaidAt:        base,
	})
	paymentRepo.AddPayment(&domain.PaymentRecord{
		TransactionID: "pi_new",
		CustomerEmail: "a@example.com",
		PaidAt:        base.Add(time.Hour),
	})
	paymentRepo.AddPayment(&domain.PaymentRecord{
		TransactionID: "pi_other",
		CustomerEmail: "b@example.com",
		PaidAt:        base.Add(2 * time.Hour),
	})

	svc := service.NewPaymentService(paymentRepo)

	records, err := svc.History(context.Background(), "a@example.com", "a@example.com")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].TransactionID != "pi_new" || records[1].TransactionID != "pi_old" {
		t.Errorf("expected newest-first ordering, got %s then %s", records[0].TransactionID, records[1].TransactionID)
	}
}

func TestHistory_IdentityMismatch_Forbidden(t *testing.T) {
	t.Parallel()

	svc := service.NewPaymentService(NewMockPaymentRepository())

	_, err := svc.History(context.Background(), "b@example.com", "a@example.com")
	if !errors.Is(err, service.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got: %v", err)
	}
}

func TestHistory_EmptyEmail_Fails(t *testing.T) {
	t.Parallel()

	svc := service.NewPaymentService(NewMockPaymentRepository())

	_, err := svc.History(context.Background(), "", "")
	if !errors.Is(err, service.ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got: %v", err)
	}
}
