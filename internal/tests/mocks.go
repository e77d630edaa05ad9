package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"zapshift/internal/domain"
	"zapshift/internal/repository"
	"zapshift/internal/service"
)

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
// Create enforces transaction-id uniqueness atomically under the mutex, the
// way the unique index does in PostgreSQL.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.PaymentRecord // keyed by transaction id

	// Counters for verification
	CreateCallCount int32
	GetCallCount    int32

	// Error injection
	CreateError error
	GetError    error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.PaymentRecord),
	}
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.PaymentRecord) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.payments[payment.TransactionID]; exists {
		return repository.ErrAlreadyExists
	}
	copy := *payment
	m.payments[payment.TransactionID] = &copy
	return nil
}

func (m *MockPaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.PaymentRecord, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	payment, ok := m.payments[transactionID]
	if !ok {
		return nil, nil
	}
	copy := *payment
	return &copy, nil
}

func (m *MockPaymentRepository) ListByCustomerEmail(ctx context.Context, email string) ([]*domain.PaymentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.PaymentRecord
	for _, p := range m.payments {
		if email == "" || p.CustomerEmail == email {
			copy := *p
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PaidAt.After(result[j].PaidAt)
	})
	return result, nil
}

// RecordCount returns the number of stored payment records.
func (m *MockPaymentRepository) RecordCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payments)
}

// AddPayment seeds a payment record for test setup.
func (m *MockPaymentRepository) AddPayment(payment *domain.PaymentRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.TransactionID] = payment
}

// ──────────────────────────────────────────────
// MOCK PARCEL REPOSITORY
// ──────────────────────────────────────────────

// MockParcelRepository is a mock implementation of ParcelRepository.
type MockParcelRepository struct {
	mu      sync.RWMutex
	parcels map[string]*domain.Parcel

	// Counters for verification
	MarkPaidCallCount int32

	// Error injection
	MarkPaidError error
}

// NewMockParcelRepository creates a new mock parcel repository.
func NewMockParcelRepository() *MockParcelRepository {
	return &MockParcelRepository{
		parcels: make(map[string]*domain.Parcel),
	}
}

// AddParcel seeds a parcel for test setup.
func (m *MockParcelRepository) AddParcel(parcel *domain.Parcel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parcels[parcel.ID] = parcel
}

func (m *MockParcelRepository) Create(ctx context.Context, parcel *domain.Parcel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parcels[parcel.ID] = parcel
	return nil
}

func (m *MockParcelRepository) List(ctx context.Context, senderEmail string) ([]*domain.Parcel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Parcel
	for _, p := range m.parcels {
		if senderEmail == "" || p.SenderEmail == senderEmail {
			copy := *p
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockParcelRepository) GetByID(ctx context.Context, id string) (*domain.Parcel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	parcel, ok := m.parcels[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *parcel
	return &copy, nil
}

func (m *MockParcelRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.parcels[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.parcels, id)
	return nil
}

func (m *MockParcelRepository) MarkPaid(ctx context.Context, id, trackingID string) error {
	atomic.AddInt32(&m.MarkPaidCallCount, 1)
	if m.MarkPaidError != nil {
		return m.MarkPaidError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	parcel, ok := m.parcels[id]
	if !ok {
		return repository.ErrNotFound
	}
	parcel.PaymentStatus = domain.ParcelPaid
	if parcel.TrackingID == "" {
		parcel.TrackingID = trackingID
	}
	return nil
}

// GetParcel returns a parcel for test assertions.
func (m *MockParcelRepository) GetParcel(id string) *domain.Parcel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parcels[id]
}

// ──────────────────────────────────────────────
// MOCK PAYMENT GATEWAY
// ──────────────────────────────────────────────

// MockGateway is a mock implementation of service.PaymentGateway.
type MockGateway struct {
	mu       sync.Mutex
	sessions map[string]*domain.CheckoutSession

	// Last create request, for assertions.
	LastCreateRequest *service.CreateSessionRequest

	// Counters for verification
	CreateCallCount int32
	GetCallCount    int32

	// Error injection
	CreateError error
	GetError    error
}

// NewMockGateway creates a new mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		sessions: make(map[string]*domain.CheckoutSession),
	}
}

// AddSession seeds a checkout session for test setup.
func (m *MockGateway) AddSession(session *domain.CheckoutSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, req service.CreateSessionRequest) (*domain.CheckoutSession, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastCreateRequest = &req
	session := &domain.CheckoutSession{
		ID:            "cs_test_mock",
		URL:           "https://checkout.example.com/c/cs_test_mock",
		PaymentStatus: domain.SessionUnpaid,
		AmountTotal:   req.AmountMinor,
		Currency:      req.Currency,
		CustomerEmail: req.CustomerEmail,
		ParcelID:      req.ParcelID,
		ParcelName:    req.ParcelName,
	}
	m.sessions[session.ID] = session
	return session, nil
}

func (m *MockGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *session
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK SESSION LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of SessionLockInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Counters for verification
	AcquireCallCount int32
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireSessionLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[sessionID] {
		return false, nil
	}
	m.locks[sessionID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseSessionLock(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, sessionID)
	return nil
}
