package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/girafadepapel/storefront-service/internal/domain/payment"
	"github.com/girafadepapel/storefront-service/internal/infrastructure/monitoring"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(conn *Connection) *PaymentRepository {
	return &PaymentRepository{db: conn.GetDB()}
}

func (r *PaymentRepository) GetByReference(ctx context.Context, externalReference string) (*payment.Record, error) {
	query := `
		SELECT external_reference, payment_id, preference_id, status, status_detail,
		       gateway_status, amount, payment_method, payment_type, installments,
		       payer_email, source, last_event_at, created_at, updated_at, approved_at
		FROM payments
		WHERE external_reference = $1
	`

	var record payment.Record
	var paymentID, statusDetail, paymentMethod, paymentType, payerEmail sql.NullString
	var lastEventAt, approvedAt sql.NullTime

	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "payments", query, externalReference)
	err := row.Scan(
		&record.ExternalReference, &paymentID, &record.PreferenceID, &record.Status,
		&statusDetail, &record.GatewayStatus, &record.Amount, &paymentMethod,
		&paymentType, &record.Installments, &payerEmail, &record.Source,
		&lastEventAt, &record.CreatedAt, &record.UpdatedAt, &approvedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	record.PaymentID = paymentID.String
	record.StatusDetail = statusDetail.String
	record.PaymentMethod = paymentMethod.String
	record.PaymentType = paymentType.String
	record.PayerEmail = payerEmail.String
	if lastEventAt.Valid {
		record.LastEventAt = lastEventAt.Time
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		record.ApprovedAt = &t
	}

	return &record, nil
}

func (r *PaymentRepository) Create(ctx context.Context, record *payment.Record) error {
	query := `
		INSERT INTO payments (
			external_reference, payment_id, preference_id, status, status_detail,
			gateway_status, amount, payment_method, payment_type, installments,
			payer_email, source, last_event_at, created_at, updated_at, approved_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := monitoring.InstrumentExec(ctx, r.db, "INSERT", "payments", query,
		record.ExternalReference, nullString(record.PaymentID), record.PreferenceID,
		record.Status, nullString(record.StatusDetail), record.GatewayStatus,
		record.Amount, nullString(record.PaymentMethod), nullString(record.PaymentType),
		record.Installments, nullString(record.PayerEmail), record.Source,
		nullTime(record.LastEventAt), record.CreatedAt, record.UpdatedAt, record.ApprovedAt,
	)
	return err
}

func (r *PaymentRepository) Update(ctx context.Context, record *payment.Record) error {
	query := `
		UPDATE payments
		SET payment_id = $2, status = $3, status_detail = $4, gateway_status = $5,
		    amount = $6, payment_method = $7, payment_type = $8, installments = $9,
		    payer_email = $10, last_event_at = $11, updated_at = $12, approved_at = $13
		WHERE external_reference = $1
	`

	_, err := monitoring.InstrumentExec(ctx, r.db, "UPDATE", "payments", query,
		record.ExternalReference, nullString(record.PaymentID), record.Status,
		nullString(record.StatusDetail), record.GatewayStatus, record.Amount,
		nullString(record.PaymentMethod), nullString(record.PaymentType),
		record.Installments, nullString(record.PayerEmail),
		nullTime(record.LastEventAt), record.UpdatedAt, record.ApprovedAt,
	)
	return err
}

func (r *PaymentRepository) ListPendingOlderThan(ctx context.Context, ageSeconds int, limit int) ([]*payment.Record, error) {
	query := `
		SELECT external_reference, payment_id, preference_id, status, gateway_status,
		       amount, source, created_at, updated_at
		FROM payments
		WHERE status NOT IN ('approved', 'rejected', 'cancelled', 'refunded', 'charged_back')
		  AND payment_id IS NOT NULL AND payment_id <> ''
		  AND updated_at < NOW() - ($1 * INTERVAL '1 second')
		ORDER BY updated_at ASC
		LIMIT $2
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "payments", query, ageSeconds, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*payment.Record
	for rows.Next() {
		var record payment.Record
		var paymentID sql.NullString
		if err := rows.Scan(
			&record.ExternalReference, &paymentID, &record.PreferenceID,
			&record.Status, &record.GatewayStatus, &record.Amount, &record.Source,
			&record.CreatedAt, &record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		record.PaymentID = paymentID.String
		records = append(records, &record)
	}

	return records, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
