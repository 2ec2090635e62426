package handlers

import (
	"context"
	"errors"

	"github.com/girafadepapel/storefront-service/internal/domain/order"
	"github.com/girafadepapel/storefront-service/internal/domain/payment"
)

type stubGateway struct {
	payment     *payment.GatewayPayment
	err         error
	requestedID string
}

func newStubGateway() *stubGateway {
	return &stubGateway{}
}

func (s *stubGateway) CreatePreference(context.Context, *payment.PreferenceRequest) (*payment.Preference, error) {
	return nil, errors.New("not implemented")
}

func (s *stubGateway) GetPayment(_ context.Context, paymentID string) (*payment.GatewayPayment, error) {
	s.requestedID = paymentID
	if s.err != nil {
		return nil, s.err
	}
	if s.payment == nil {
		return nil, errors.New("payment not found")
	}
	return s.payment, nil
}

type stubPaymentRepo struct {
	record *payment.Record
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{}
}

func (s *stubPaymentRepo) GetByReference(context.Context, string) (*payment.Record, error) {
	return s.record, nil
}

func (s *stubPaymentRepo) Create(_ context.Context, record *payment.Record) error {
	s.record = record
	return nil
}

func (s *stubPaymentRepo) Update(_ context.Context, record *payment.Record) error {
	s.record = record
	return nil
}

func (s *stubPaymentRepo) ListPendingOlderThan(context.Context, int, int) ([]*payment.Record, error) {
	return nil, nil
}

type stubOrderRepo struct {
	paidRefs []string
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{}
}

func (s *stubOrderRepo) Create(context.Context, *order.Order) error {
	return nil
}

func (s *stubOrderRepo) GetByReference(context.Context, string) (*order.Order, error) {
	return nil, errors.New("order not found")
}

func (s *stubOrderRepo) MarkPaid(_ context.Context, reference string) error {
	s.paidRefs = append(s.paidRefs, reference)
	return nil
}

func (s *stubOrderRepo) ListUnpaidWithApprovedPayment(context.Context, int) ([]string, error) {
	return nil, nil
}
