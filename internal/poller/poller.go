package poller

import (
	"context"
	"sync"
	"time"

	"github.com/girafadepapel/storefront-service/internal/application/ports"
	"github.com/girafadepapel/storefront-service/internal/domain/payment"
	"github.com/girafadepapel/storefront-service/internal/pkg/logger"
)

// Result carries one observed payment state to the poller's consumer.
type Result struct {
	PaymentID string
	Status    payment.Status
	Details   *payment.GatewayPayment
	Err       error
}

// StatusPoller repeatedly fetches a payment from the gateway until its status
// becomes terminal or the attempt budget is spent. Results stream on a channel;
// the channel closes when the poller stops for any reason.
type StatusPoller struct {
	gateway     ports.PaymentGateway
	interval    time.Duration
	maxAttempts int
	log         *logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
}

func NewStatusPoller(gateway ports.PaymentGateway, interval time.Duration, maxAttempts int, log *logger.Logger) *StatusPoller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 12
	}
	return &StatusPoller{
		gateway:     gateway,
		interval:    interval,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Start begins polling the given payment. The first fetch happens immediately,
// subsequent ones on the interval. Start is a no-op if the poller is already
// running.
func (p *StatusPoller) Start(ctx context.Context, paymentID string) <-chan Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	results := make(chan Result, p.maxAttempts)
	if p.running {
		close(results)
		return results
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.running = true

	go p.run(ctx, paymentID, results)
	return results
}

// Stop cancels an in-flight polling loop. Safe to call more than once.
func (p *StatusPoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *StatusPoller) run(ctx context.Context, paymentID string, results chan<- Result) {
	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
		close(results)
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		result := p.fetch(ctx, paymentID)

		select {
		case results <- result:
		case <-ctx.Done():
			return
		}

		if result.Err == nil && result.Status.IsTerminal() {
			p.log.Info("Payment reached terminal status, stopping poll",
				"payment_id", paymentID,
				"status", result.Status,
				"attempts", attempt,
			)
			return
		}

		if attempt == p.maxAttempts {
			p.log.Warn("Payment poll attempt budget exhausted",
				"payment_id", paymentID,
				"attempts", attempt,
			)
			return
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (p *StatusPoller) fetch(ctx context.Context, paymentID string) Result {
	details, err := p.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		// Errors still consume an attempt so a dead gateway cannot pin the
		// loop forever.
		p.log.Warn("Payment poll fetch failed", "payment_id", paymentID, "error", err.Error())
		return Result{PaymentID: paymentID, Status: payment.StatusUnknown, Err: err}
	}
	return Result{
		PaymentID: paymentID,
		Status:    payment.FromGatewayStatus(details.Status),
		Details:   details,
	}
}

// FetchOnce performs a single status lookup without starting a loop.
func FetchOnce(ctx context.Context, gateway ports.PaymentGateway, paymentID string) (*payment.GatewayPayment, payment.Status, error) {
	details, err := gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, payment.StatusUnknown, err
	}
	return details, payment.FromGatewayStatus(details.Status), nil
}
