package tests

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"zapshift/internal/domain"
	"zapshift/internal/service"
)

var trackingIDPattern = regexp.MustCompile(`^ZAP-\d{8}-[0-9A-F]{6}$`)

func paidSession(id, transactionID, parcelID string) *domain.CheckoutSession {
	return &domain.CheckoutSession{
		ID:            id,
		PaymentStatus: domain.SessionPaid,
		AmountTotal:   50000,
		Currency:      "usd",
		CustomerEmail: "sender@example.com",
		TransactionID: transactionID,
		ParcelID:      parcelID,
		ParcelName:    "Books",
	}
}

func unpaidParcel(id string) *domain.Parcel {
	return &domain.Parcel{
		ID:            id,
		SenderEmail:   "sender@example.com",
		Name:          "Books",
		Cost:          500,
		PaymentStatus: domain.ParcelUnpaid,
	}
}

// ──────────────────────────────────────────────
// 1. FIRST CONFIRMATION OF A PAID SESSION
// ──────────────────────────────────────────────

func TestConfirm_PaidSession_RecordsPaymentAndMarksParcel(t *testing.T) {
	t.Parallel()

	gateway := NewMockGateway()
	paymentRepo := NewMockPaymentRepository()
	parcelRepo := NewMockParcelRepository()

	gateway.AddSession(paidSession("cs_test_1", "pi_1", "p1"))
	parcelRepo.AddParcel(unpaidParcel("p1"))

	svc := service.NewConfirmationService(gateway, paymentRepo, parcelRepo, nil)

	result, err := svc.Confirm(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if !result.Success {
		t.Fatal("expected success")
	}
	if result.AlreadyRecorded {
		t.Error("expected a fresh confirmation, not a duplicate")
	}
	if result.TransactionID != "pi_1" {
		t.Errorf("expected transaction id pi_1, got %s", result.TransactionID)
	}
	if !trackingIDPattern.MatchString(result.TrackingID) {
		t.Errorf("tracking id %q does not match expected pattern", result.TrackingID)
	}

	if paymentRepo.RecordCount() != 1 {
		t.Fatalf("expected exactly one payment record, got %d", paymentRepo.RecordCount())
	}

	record, _ := paymentRepo.GetByTransactionID(context.Background(), "pi_1")
	if record == nil {
		t.Fatal("expected payment record to be stored")
	}
	if record.Amount != 500.00 {
		t.Errorf("expected amount 500.00 (minor units / 100), got %v", record.Amount)
	}
	if record.Currency != "usd" {
		t.Errorf("expected currency usd, got %s", record.Currency)
	}
	if record.ParcelID != "p1" {
		t.Errorf("expected parcel id p1, got %s", record.ParcelID)
	}
	if record.TrackingID != result.TrackingID {
		t.Errorf("record tracking id %s differs from result tracking id %s", record.TrackingID, result.TrackingID)
	}

	parcel := parcelRepo.GetParcel("p1")
	if parcel.PaymentStatus != domain.ParcelPaid {
		t.Errorf("expected parcel to be paid, got %s", parcel.PaymentStatus)
	}
	if parcel.TrackingID != result.TrackingID {
		t.Errorf("parcel tracking id %s differs from result tracking id %s", parcel.TrackingID, result.TrackingID)
	}
	if !result.ParcelUpdated {
		t.Error("expected parcel update to be reported")
	}
}

// ──────────────────────────────────────────────
// 2. IDEMPOTENT REPEAT CONFIRMATION
// ──────────────────────────────────────────────

func TestConfirm_RepeatedCall_ReturnsSameTrackingIDWithoutMutation(t *testing.T) {
	t.Parallel()

	gateway := NewMockGateway()
	paymentRepo := NewMockPaymentRepository()
	parcelRepo := NewMockParcelRepository()

	gateway.AddSession(paidSession("cs_test_1", "pi_1", "p1"))
	parcelRepo.AddParcel(unpaidParcel("p1"))

	svc := service.NewConfirmationService(gateway, paymentRepo, parcelRepo, nil)

	first, err := svc.Confirm(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}

	createsAfterFirst := paymentRepo.CreateCallCount
	markPaidAfterFirst := parcelRepo.MarkPaidCallCount

	second, err := svc.Confirm(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("second confirm failed: %v", err)
	}

	if !second.Success || !second.AlreadyRecorded {
		t.Error("expected the repeat call to report an already recorded success")
	}
	if second.TrackingID != first.TrackingID {
		t.Errorf("tracking id changed across calls: %s vs %s", first.TrackingID, second.TrackingID)
	}
	if second.TransactionID != first.TransactionID {
		t.Errorf("transaction id changed across calls: %s vs %s", first.TransactionID, second.TransactionID)
	}

	if paymentRepo.RecordCount() != 1 {
		t.Errorf("expected one payment record after repeat, got %d", paymentRepo.RecordCount())
	}
	if paymentRepo.CreateCallCount != createsAfterFirst {
		t.Error("repeat confirmation attempted another insert")
	}
	if parcelRepo.MarkPaidCallCount != markPaidAfterFirst {
		t.Error("repeat confirmation mutated the parcel again")
	}
}

// ──────────────────────────────────────────────
// 3. UNPAID SESSION
// ──────────────────────────────────────────────

func TestConfirm_UnpaidSession_NoMutations(t *testing.T) {
	t.Parallel()

	gateway := NewMockGateway()
	paymentRepo := NewMockPaymentRepository()
	parcelRepo := NewMockParcelRepository()

	session := paidSession("cs_test_2", "pi_2", "p2")
	session.PaymentStatus = domain.SessionUnpaid
	gateway.AddSession(session)
	parcelRepo.AddParcel(unpaidParcel("p2"))

	svc := service.NewConfirmationService(gateway, paymentRepo, parcelRepo, nil)

	result, err := svc.Confirm(context.Background(), "cs_test_2")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Success {
		t.Error("expected success=false for an unpaid session")
	}
	if paymentRepo.RecordCount() != 0 {
		t.Errorf("expected zero payment records, got %d", paymentRepo.RecordCount())
	}
	if parcelRepo.MarkPaidCallCount != 0 {
		t.Error("expected no parcel mutation for an unpaid session")
	}

	parcel := parcelRepo.GetParcel("p2")
	if parcel.PaymentStatus != domain.ParcelUnpaid {
		t.Errorf("parcel should remain unpaid, got %s", parcel.PaymentStatus)
	}
}

// ──────────────────────────────────────────────
// 4. GATEWAY FAILURES
// ──────────────────────────────────────────────

func TestConfirm_GatewayError_ReturnsSessionLookupError(t *testing.T) {
	t.Parallel()

	gateway := NewMockGateway()
	gateway.GetError = errors.New("gateway unreachable")

	svc := service.NewConfirmationService(gateway, NewMockPaymentRepository(), NewMockParcelRepository(), nil)

	_, err := svc.Confirm(context.Background(), "cs_test_3")
	if !errors.Is(err, service.ErrSessionLookup) {
		t.Errorf("expected ErrSessionLookup, got: %v", err)
	}
}

func TestConfirm_UnknownSession_ReturnsSessionLookupError(t *testing.T) {
	t.Parallel()

	gateway := NewMockGateway()

	svc := service.NewConfirmationService(gateway, NewMockPaymentRepository(), NewMockParcelRepository(), nil)

	_, err := svc.Confirm(context.Background(), "cs_missing")
	if !errors.Is(err, service.ErrSessionLookup) {
		t.Errorf("expected ErrSessionLookup, got: %v", err)
	}
}

func TestConfirm_EmptySessionID_Fails(t *testing.T) {
	t.Parallel()

	svc := service.NewConfirmationService(NewMockGateway(), NewMockPaymentRepository(), NewMockParcelRepository(), nil)

	_, err := svc.Confirm(context.Background(), "")
	if !errors.Is(err, service.ErrInvalidSessionID) {
		t.Errorf("expected ErrInvalidSessionID, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 5. CONCURRENT CONFIRMATIONS
// ──────────────────────────────────────────────

func TestConfirm_ConcurrentCalls_ProduceSinglePaymentRecord(t *testing.T) {
	t.Parallel()

	gateway := NewMockGateway()
	paymentRepo := NewMockPaymentRepository()
	parcelRepo := NewMockParcelRepository()
	lockStore := NewMockLockStore()

	gateway.AddSession(paidSession("cs_test_4", "pi_4", "p4"))
	parcelRepo.AddParcel(unpaidParcel("p4"))

	svc := service.NewConfirmationService(gateway, paymentRepo, parcelRepo, lockStore)

	const callers = 8
	results := make([]*service.ConfirmResult, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Confirm(context.Background(), "cs_test_4")
		}(i)
	}
	wg.Wait()

	if paymentRepo.RecordCount() != 1 {
		t.Fatalf("expected exactly one payment record under concurrency, got %d", paymentRepo.RecordCount())
	}

	record, _ := paymentRepo.GetByTransactionID(context.Background(), "pi_4")
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %v", i, errs[i])
		}
		if !results[i].Success {
			t.Errorf("caller %d expected success", i)
		}
		if results[i].TrackingID != record.TrackingID {
			t.Errorf("caller %d got tracking id %s, want %s", i, results[i].TrackingID, record.TrackingID)
		}
	}
}

// ──────────────────────────────────────────────
// 6. PARCEL MISSING AT CONFIRMATION TIME
// ──────────────────────────────────────────────

func TestConfirm_MissingParcel_RecordsPaymentButReportsNoUpdate(t *testing.T) {
	t.Parallel()

	gateway := NewMockGateway()
	paymentRepo := NewMockPaymentRepository()
	parcelRepo := NewMockParcelRepository()

	gateway.AddSession(paidSession("cs_test_5", "pi_5", "p-gone"))

	svc := service.NewConfirmationService(gateway, paymentRepo, parcelRepo, nil)

	result, err := svc.Confirm(context.Background(), "cs_test_5")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if !result.Success {
		t.Fatal("expected success")
	}
	if result.ParcelUpdated {
		t.Error("expected the missing parcel update to be reported as not applied")
	}
	if paymentRepo.RecordCount() != 1 {
		t.Errorf("expected the payment record to stand, got %d records", paymentRepo.RecordCount())
	}
}
