package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"computer-club/internal/model"
)

// PaymentRepo provides MySQL-backed persistence for payments and the
// revenue aggregates consumed by reporting.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

const paymentColumns = `id, session_id, amount, payment_time, type`

// Save inserts a new payment.
func (r *PaymentRepo) Save(ctx context.Context, p model.Payment) error {
	const q = `INSERT INTO payments (` + paymentColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		p.ID.String(), p.SessionID.String(), p.Amount, p.PaymentTime.UTC(), string(p.Type))
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

// Update rewrites an existing payment.
func (r *PaymentRepo) Update(ctx context.Context, p model.Payment) error {
	const q = `UPDATE payments SET session_id = ?, amount = ?, payment_time = ?, type = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		p.SessionID.String(), p.Amount, p.PaymentTime.UTC(), string(p.Type), p.ID.String())
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a payment by id.
func (r *PaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id.String())
	return err
}

// FindByID returns the payment with the given id or ErrNotFound.
func (r *PaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE id = ?`
	return scanPayment(r.db.QueryRowContext(ctx, q, id.String()))
}

// FindAll returns every payment ordered by payment time.
func (r *PaymentRepo) FindAll(ctx context.Context) ([]model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments ORDER BY payment_time`
	return r.scanMany(ctx, q)
}

// FindBySessionID returns the payment settling the given session.
func (r *PaymentRepo) FindBySessionID(ctx context.Context, sessionID uuid.UUID) (model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE session_id = ?`
	return scanPayment(r.db.QueryRowContext(ctx, q, sessionID.String()))
}

// FindByType returns all payments of the given type.
func (r *PaymentRepo) FindByType(ctx context.Context, typ model.PaymentType) ([]model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE type = ? ORDER BY payment_time`
	return r.scanMany(ctx, q, string(typ))
}

// FindBetween returns payments taken in [start, end].
func (r *PaymentRepo) FindBetween(ctx context.Context, start, end time.Time) ([]model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE payment_time >= ? AND payment_time <= ? ORDER BY payment_time`
	return r.scanMany(ctx, q, start.UTC(), end.UTC())
}

// TotalRevenue sums all payments taken on the given calendar day (UTC).
func (r *PaymentRepo) TotalRevenue(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	const q = `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_time >= ? AND payment_time < ?`
	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, q, from, to).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func scanPayment(row *sql.Row) (model.Payment, error) {
	var p model.Payment
	var id, sessionID, typ string
	err := row.Scan(&id, &sessionID, &p.Amount, &p.PaymentTime, &typ)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Payment{}, ErrNotFound
	}
	if err != nil {
		return model.Payment{}, err
	}
	p.Type = model.PaymentType(typ)
	if p.ID, err = uuid.Parse(id); err != nil {
		return model.Payment{}, err
	}
	p.SessionID, err = uuid.Parse(sessionID)
	return p, err
}

func (r *PaymentRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	payments := make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		var id, sessionID, typ string
		if err := rows.Scan(&id, &sessionID, &p.Amount, &p.PaymentTime, &typ); err != nil {
			return nil, err
		}
		p.Type = model.PaymentType(typ)
		if p.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if p.SessionID, err = uuid.Parse(sessionID); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
