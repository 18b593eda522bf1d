package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Torqix/aarohan-backend/internal/domain"
)

const paymentColumns = `id, registration_id, user_id, event_id, amount, currency,
	status, gateway_order_id, gateway_payment_id, error_reason,
	created_at, updated_at, completed_at`

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL.
// State transitions lock the payment row so the pending state is consumed
// exactly once even when verify and fail callbacks race.
type PostgresPaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPaymentRepository creates a new PostgresPaymentRepository
func NewPostgresPaymentRepository(pool *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{pool: pool}
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(
		&p.ID,
		&p.RegistrationID,
		&p.UserID,
		&p.EventID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.GatewayOrderID,
		&p.GatewayPaymentID,
		&p.ErrorReason,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// Create creates a new payment
func (r *PostgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, registration_id, user_id, event_id, amount, currency,
			status, gateway_order_id, gateway_payment_id, error_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		payment.ID,
		payment.RegistrationID,
		payment.UserID,
		payment.EventID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.GatewayOrderID,
		payment.GatewayPaymentID,
		payment.ErrorReason,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	return err
}

// GetByID retrieves a payment by ID
func (r *PostgresPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.pool.QueryRow(ctx, query, id))
}

// GetPendingByRegistration retrieves the open pending payment for a
// registration, if one exists
func (r *PostgresPaymentRepository) GetPendingByRegistration(ctx context.Context, registrationID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE registration_id = $1 AND status = 'pending'
		ORDER BY created_at DESC LIMIT 1`
	return scanPayment(r.pool.QueryRow(ctx, query, registrationID))
}

// SetGatewayOrder records the gateway order id on a still-pending payment
func (r *PostgresPaymentRepository) SetGatewayOrder(ctx context.Context, paymentID, orderID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE payments SET gateway_order_id = $2, updated_at = $3 WHERE id = $1 AND status = 'pending'`,
		paymentID, orderID, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotPending
	}
	return nil
}

// lockPending reads the payment FOR UPDATE and rejects non-pending states
func lockPending(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	p, err := scanPayment(tx.QueryRow(ctx, query, paymentID))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPaymentNotFound
	}
	if p.Status != domain.PaymentStatusPending {
		return nil, domain.ErrPaymentNotPending
	}
	return p, nil
}

// CompleteWithRegistration transitions the payment to completed and updates
// the linked registration's payment fields atomically.
func (r *PostgresPaymentRepository) CompleteWithRegistration(ctx context.Context, paymentID, gatewayPaymentID string) (*domain.Payment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	p, err := lockPending(ctx, tx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := p.Complete(gatewayPaymentID); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE payments SET status = $2, gateway_payment_id = $3, completed_at = $4, updated_at = $4 WHERE id = $1`,
		p.ID, p.Status, p.GatewayPaymentID, p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE registrations SET payment_status = $2, payment_id = $3, updated_at = $4 WHERE id = $1`,
		p.RegistrationID, domain.PaymentStatusCompleted, p.ID, time.Now())
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrRegistrationNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// FailWithRegistration transitions the payment to failed and mirrors the
// failure onto the registration atomically.
func (r *PostgresPaymentRepository) FailWithRegistration(ctx context.Context, paymentID, reason string) (*domain.Payment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	p, err := lockPending(ctx, tx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := p.Fail(reason); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE payments SET status = $2, error_reason = $3, updated_at = $4 WHERE id = $1`,
		p.ID, p.Status, p.ErrorReason, p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE registrations SET payment_status = $2, updated_at = $3 WHERE id = $1`,
		p.RegistrationID, domain.PaymentStatusFailed, time.Now())
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrRegistrationNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}
