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

// SessionRepo provides MySQL-backed persistence for sessions.  An
// active session has a NULL end_time and NULL total_cost; both columns
// are filled together when the session closes.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo returns a SessionRepo bound to the given database.
func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

const sessionColumns = `id, client_id, computer_id, tariff_id, start_time, end_time, total_cost, is_active`

// Save inserts a new session.
func (r *SessionRepo) Save(ctx context.Context, s model.Session) error {
	const q = `INSERT INTO sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		s.ID.String(), s.ClientID.String(), s.ComputerID.String(), s.TariffID.String(),
		s.StartTime.UTC(), nullTime(s.EndTime), nullDecimal(s.TotalCost), s.IsActive)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

// Update rewrites an existing session.  In practice this happens once,
// when the session closes.
func (r *SessionRepo) Update(ctx context.Context, s model.Session) error {
	const q = `UPDATE sessions
			   SET client_id = ?, computer_id = ?, tariff_id = ?, start_time = ?, end_time = ?, total_cost = ?, is_active = ?
			   WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		s.ClientID.String(), s.ComputerID.String(), s.TariffID.String(),
		s.StartTime.UTC(), nullTime(s.EndTime), nullDecimal(s.TotalCost), s.IsActive, s.ID.String())
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a session by id.
func (r *SessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id.String())
	return err
}

// FindByID returns the session with the given id or ErrNotFound.
func (r *SessionRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	return scanSession(r.db.QueryRowContext(ctx, q, id.String()))
}

// FindAll returns every session ordered by start time.
func (r *SessionRepo) FindAll(ctx context.Context) ([]model.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions ORDER BY start_time`
	return r.scanMany(ctx, q)
}

// FindActiveByClient returns the client's open session or ErrNotFound.
func (r *SessionRepo) FindActiveByClient(ctx context.Context, clientID uuid.UUID) (model.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions WHERE client_id = ? AND end_time IS NULL`
	return scanSession(r.db.QueryRowContext(ctx, q, clientID.String()))
}

// FindActiveByComputer returns the computer's open session or ErrNotFound.
func (r *SessionRepo) FindActiveByComputer(ctx context.Context, computerID uuid.UUID) (model.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions WHERE computer_id = ? AND end_time IS NULL`
	return scanSession(r.db.QueryRowContext(ctx, q, computerID.String()))
}

// FindActive returns all open sessions ordered by start time.
func (r *SessionRepo) FindActive(ctx context.Context) ([]model.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions WHERE end_time IS NULL ORDER BY start_time`
	return r.scanMany(ctx, q)
}

// FindByClient returns the client's full session history.
func (r *SessionRepo) FindByClient(ctx context.Context, clientID uuid.UUID) ([]model.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions WHERE client_id = ? ORDER BY start_time`
	return r.scanMany(ctx, q, clientID.String())
}

// FindByComputer returns the computer's full session history.
func (r *SessionRepo) FindByComputer(ctx context.Context, computerID uuid.UUID) ([]model.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions WHERE computer_id = ? ORDER BY start_time`
	return r.scanMany(ctx, q, computerID.String())
}

// FindBetween returns sessions whose start time lies in [start, end].
func (r *SessionRepo) FindBetween(ctx context.Context, start, end time.Time) ([]model.Session, error) {
	const q = `SELECT ` + sessionColumns + ` FROM sessions WHERE start_time >= ? AND start_time <= ? ORDER BY start_time`
	return r.scanMany(ctx, q, start.UTC(), end.UTC())
}

func scanSession(row *sql.Row) (model.Session, error) {
	var s model.Session
	var id, clientID, computerID, tariffID string
	var end sql.NullTime
	var cost decimal.NullDecimal
	err := row.Scan(&id, &clientID, &computerID, &tariffID, &s.StartTime, &end, &cost, &s.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, ErrNotFound
	}
	if err != nil {
		return model.Session{}, err
	}
	return buildSession(s, id, clientID, computerID, tariffID, end, cost)
}

func (r *SessionRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.Session, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := make([]model.Session, 0)
	for rows.Next() {
		var s model.Session
		var id, clientID, computerID, tariffID string
		var end sql.NullTime
		var cost decimal.NullDecimal
		if err := rows.Scan(&id, &clientID, &computerID, &tariffID, &s.StartTime, &end, &cost, &s.IsActive); err != nil {
			return nil, err
		}
		s, err = buildSession(s, id, clientID, computerID, tariffID, end, cost)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func buildSession(s model.Session, id, clientID, computerID, tariffID string, end sql.NullTime, cost decimal.NullDecimal) (model.Session, error) {
	var err error
	if s.ID, err = uuid.Parse(id); err != nil {
		return model.Session{}, err
	}
	if s.ClientID, err = uuid.Parse(clientID); err != nil {
		return model.Session{}, err
	}
	if s.ComputerID, err = uuid.Parse(computerID); err != nil {
		return model.Session{}, err
	}
	if s.TariffID, err = uuid.Parse(tariffID); err != nil {
		return model.Session{}, err
	}
	if end.Valid {
		t := end.Time
		s.EndTime = &t
	}
	if cost.Valid {
		d := cost.Decimal
		s.TotalCost = &d
	}
	return s, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullDecimal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return *d
}
