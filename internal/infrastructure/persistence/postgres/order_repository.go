package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/girafadepapel/storefront-service/internal/domain/cart"
	"github.com/girafadepapel/storefront-service/internal/domain/errors"
	"github.com/girafadepapel/storefront-service/internal/domain/order"
	"github.com/girafadepapel/storefront-service/internal/domain/payment"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/monitoring"
	"github.com/girafadepapel/storefront-service/internal/pkg/clock"
)

// OrderRepository stores the order snapshot. Customer and items are JSONB:
// they are written once at checkout and read back whole, never queried
// field-by-field.
type OrderRepository struct {
	db    *sql.DB
	clock clock.Clock
}

func NewOrderRepository(conn *Connection, clk clock.Clock) *OrderRepository {
	return &OrderRepository{db: conn.GetDB(), clock: clk}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	customerJSON, err := json.Marshal(o.Customer)
	if err != nil {
		return err
	}
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (
			reference, customer, items, subtotal, shipping, discount, total,
			status, payment_status, preference_id, created_at, updated_at, paid_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = monitoring.InstrumentExec(ctx, r.db, "INSERT", "orders", query,
		o.Reference, customerJSON, itemsJSON, o.Subtotal, o.Shipping, o.Discount,
		o.Total, o.Status, o.PaymentStatus, o.PreferenceID, o.CreatedAt,
		o.UpdatedAt, o.PaidAt,
	)
	return err
}

func (r *OrderRepository) GetByReference(ctx context.Context, reference string) (*order.Order, error) {
	query := `
		SELECT reference, customer, items, subtotal, shipping, discount, total,
		       status, payment_status, preference_id, created_at, updated_at, paid_at
		FROM orders
		WHERE reference = $1
	`

	var o order.Order
	var customerJSON, itemsJSON []byte
	var paidAt sql.NullTime

	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "orders", query, reference)
	err := row.Scan(
		&o.Reference, &customerJSON, &itemsJSON, &o.Subtotal, &o.Shipping,
		&o.Discount, &o.Total, &o.Status, &o.PaymentStatus, &o.PreferenceID,
		&o.CreatedAt, &o.UpdatedAt, &paidAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrOrderNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(customerJSON, &o.Customer); err != nil {
		return nil, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, err
		}
	}
	if o.Items == nil {
		o.Items = []cart.Item{}
	}
	if paidAt.Valid {
		t := paidAt.Time
		o.PaidAt = &t
	}

	return &o, nil
}

func (r *OrderRepository) MarkPaid(ctx context.Context, reference string) error {
	now := r.clock.Now()

	query := `
		UPDATE orders
		SET status = $2, payment_status = $3, updated_at = $4,
		    paid_at = COALESCE(paid_at, $4)
		WHERE reference = $1
	`

	result, err := monitoring.InstrumentExec(ctx, r.db, "UPDATE", "orders", query,
		reference, order.StatusPaid, payment.StatusApproved, now,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) ListUnpaidWithApprovedPayment(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT o.reference
		FROM orders o
		JOIN payments p ON p.external_reference = o.reference
		WHERE o.status = $1 AND p.status = $2
		ORDER BY o.created_at ASC
		LIMIT $3
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "orders", query,
		order.StatusAwaitingPayment, payment.StatusApproved, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var references []string
	for rows.Next() {
		var reference string
		if err := rows.Scan(&reference); err != nil {
			return nil, err
		}
		references = append(references, reference)
	}

	return references, rows.Err()
}
