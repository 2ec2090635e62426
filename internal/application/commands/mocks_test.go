package commands

import (
	"context"
	"errors"
	"sync"

	"github.com/girafadepapel/storefront-service/internal/domain/order"
	"github.com/girafadepapel/storefront-service/internal/domain/payment"
)

var errMockPaymentMissing = errors.New("payment not found")

type mockGateway struct {
	mu          sync.Mutex
	createdReqs []*payment.PreferenceRequest
	preference  *payment.Preference
	createErr   error
	payments    map[string]*payment.GatewayPayment
	getErr      error
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		preference: &payment.Preference{
			ID:               "pref-123",
			InitPoint:        "https://mp.example/init",
			SandboxInitPoint: "https://mp.example/sandbox",
			DateOfExpiration: "2026-03-10T12:30:00Z",
		},
		payments: make(map[string]*payment.GatewayPayment),
	}
}

func (m *mockGateway) CreatePreference(_ context.Context, req *payment.PreferenceRequest) (*payment.Preference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createdReqs = append(m.createdReqs, req)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.preference, nil
}

func (m *mockGateway) GetPayment(_ context.Context, paymentID string) (*payment.GatewayPayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.payments[paymentID]
	if !ok {
		return nil, errMockPaymentMissing
	}
	return p, nil
}

type mockPaymentRepo struct {
	mu        sync.Mutex
	records   map[string]*payment.Record
	createErr error
	updateErr error
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{records: make(map[string]*payment.Record)}
}

func (m *mockPaymentRepo) GetByReference(_ context.Context, ref string) (*payment.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.records[ref]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, nil
}

func (m *mockPaymentRepo) Create(_ context.Context, record *payment.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	clone := *record
	m.records[record.ExternalReference] = &clone
	return nil
}

func (m *mockPaymentRepo) Update(_ context.Context, record *payment.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	clone := *record
	m.records[record.ExternalReference] = &clone
	return nil
}

func (m *mockPaymentRepo) ListPendingOlderThan(context.Context, int, int) ([]*payment.Record, error) {
	return nil, nil
}

func (m *mockPaymentRepo) get(ref string) *payment.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[ref]
}

type mockOrderRepo struct {
	mu          sync.Mutex
	orders      map[string]*order.Order
	markPaidErr error
	paidRefs    []string
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*order.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.Reference] = o
	return nil
}

func (m *mockOrderRepo) GetByReference(_ context.Context, ref string) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[ref], nil
}

func (m *mockOrderRepo) MarkPaid(_ context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markPaidErr != nil {
		return m.markPaidErr
	}
	m.paidRefs = append(m.paidRefs, ref)
	return nil
}

func (m *mockOrderRepo) ListUnpaidWithApprovedPayment(context.Context, int) ([]string, error) {
	return nil, nil
}

type mockSnapshotStore struct {
	mu    sync.Mutex
	last  map[string]*order.Order
	saves int
}

func newMockSnapshotStore() *mockSnapshotStore {
	return &mockSnapshotStore{last: make(map[string]*order.Order)}
}

func (m *mockSnapshotStore) SaveLast(_ context.Context, sessionID string, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.last[sessionID] = o
	return nil
}

func (m *mockSnapshotStore) GetLast(_ context.Context, sessionID string) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last[sessionID], nil
}
