package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/girafadepapel/storefront-service/internal/application/commands"
	"github.com/girafadepapel/storefront-service/internal/application/ports"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/monitoring"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
	"github.com/girafadepapel/storefront-service/internal/poller"
)

// ReconciliationScheduler periodically repairs the gaps webhooks can leave:
// orders whose payment record is approved but whose status never flipped, and
// pending records the gateway has settled without a delivered notification.
// Stale records are tracked by a status poller each, so a payment that settles
// moments after the scan still lands without waiting a full cycle.
type ReconciliationScheduler struct {
	events   *commands.PaymentEventHandler
	payments ports.PaymentRepository
	orders   ports.OrderRepository
	gateway  ports.PaymentGateway
	logger   *logger.Logger
	interval time.Duration
	staleAge time.Duration
	stopChan chan struct{}

	pollInterval time.Duration
	pollAttempts int

	mu      sync.Mutex
	pollers map[string]*poller.StatusPoller
}

func NewReconciliationScheduler(
	events *commands.PaymentEventHandler,
	payments ports.PaymentRepository,
	orders ports.OrderRepository,
	gateway ports.PaymentGateway,
	logger *logger.Logger,
	interval time.Duration,
	staleAge time.Duration,
) *ReconciliationScheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if staleAge <= 0 {
		staleAge = 10 * time.Minute
	}
	return &ReconciliationScheduler{
		events:       events,
		payments:     payments,
		orders:       orders,
		gateway:      gateway,
		logger:       logger,
		interval:     interval,
		staleAge:     staleAge,
		stopChan:     make(chan struct{}),
		pollInterval: 15 * time.Second,
		pollAttempts: 4,
		pollers:      make(map[string]*poller.StatusPoller),
	}
}

func (s *ReconciliationScheduler) Start(ctx context.Context) {
	s.logger.Info("Starting reconciliation scheduler", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Reconciliation scheduler stopped")
			return
		case <-s.stopChan:
			s.logger.Info("Reconciliation scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *ReconciliationScheduler) Stop() {
	close(s.stopChan)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.pollers {
		p.Stop()
	}
}

func (s *ReconciliationScheduler) runOnce(ctx context.Context) {
	monitoring.RecordReconciliationRun()
	s.repairApprovedOrders(ctx)
	s.pollStalePayments(ctx)
}

// repairApprovedOrders handles the crash window between the payment upsert
// and the order-side mark-paid.
func (s *ReconciliationScheduler) repairApprovedOrders(ctx context.Context) {
	references, err := s.orders.ListUnpaidWithApprovedPayment(ctx, 100)
	if err != nil {
		s.logger.Error("Failed to list unpaid approved orders", "error", err.Error())
		return
	}

	for _, reference := range references {
		if err := s.orders.MarkPaid(ctx, reference); err != nil {
			s.logger.Error("Failed to repair order", "external_reference", reference, "error", err.Error())
			continue
		}
		monitoring.RecordReconciliationRepair("order")
		s.logger.Info("Repaired approved order", "external_reference", reference)
	}
}

// pollStalePayments starts a status poller for each record stuck in a
// non-terminal status, covering lost webhook deliveries.
func (s *ReconciliationScheduler) pollStalePayments(ctx context.Context) {
	records, err := s.payments.ListPendingOlderThan(ctx, int(s.staleAge.Seconds()), 50)
	if err != nil {
		s.logger.Error("Failed to list stale payment records", "error", err.Error())
		return
	}

	for _, record := range records {
		s.trackPayment(ctx, record.PaymentID, record.ExternalReference)
	}
}

// trackPayment polls one stale payment until it settles or the attempt budget
// runs out. Every observed state funnels through the same upsert path the
// webhook uses. A payment already being tracked is left alone.
func (s *ReconciliationScheduler) trackPayment(ctx context.Context, paymentID, externalReference string) {
	s.mu.Lock()
	if _, active := s.pollers[paymentID]; active {
		s.mu.Unlock()
		return
	}
	p := poller.NewStatusPoller(s.gateway, s.pollInterval, s.pollAttempts, s.logger)
	s.pollers[paymentID] = p
	s.mu.Unlock()

	results := p.Start(ctx, paymentID)

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.pollers, paymentID)
			s.mu.Unlock()
		}()

		for result := range results {
			if result.Err != nil {
				continue
			}
			details := result.Details
			if details.ExternalReference == "" {
				details.ExternalReference = externalReference
			}
			s.events.ApplyPayment(ctx, details)
			monitoring.RecordReconciliationRepair("payment")
		}
	}()
}
