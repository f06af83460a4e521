package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"computer-club/internal/model"
)

// ClientRepo provides MySQL-backed persistence for clients.  Monetary
// columns are DECIMAL(10,2) and identities are stored as CHAR(36)
// strings.  All timestamps are stored in UTC.
type ClientRepo struct {
	db *sql.DB
}

// NewClientRepo returns a ClientRepo bound to the given database.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

const clientColumns = `id, nickname, email, balance, visit_count, discount_percent, registered_at`

// Save inserts a new client.  A duplicate nickname or email maps to
// ErrConflict via the unique indexes on both columns.
func (r *ClientRepo) Save(ctx context.Context, c model.Client) error {
	const q = `INSERT INTO clients (` + clientColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		c.ID.String(), c.Nickname, c.Email, c.Balance, c.VisitCount, c.DiscountPercent, c.RegisteredAt.UTC())
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

// Update rewrites an existing client.  ErrConflict is returned when no
// row with the id exists.
func (r *ClientRepo) Update(ctx context.Context, c model.Client) error {
	const q = `UPDATE clients
			   SET nickname = ?, email = ?, balance = ?, visit_count = ?, discount_percent = ?, registered_at = ?
			   WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		c.Nickname, c.Email, c.Balance, c.VisitCount, c.DiscountPercent, c.RegisteredAt.UTC(), c.ID.String())
	if isDuplicate(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a client by id.
func (r *ClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id.String())
	return err
}

// FindByID returns the client with the given id or ErrNotFound.
func (r *ClientRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id.String()))
}

// FindAll returns every client ordered by registration time.
func (r *ClientRepo) FindAll(ctx context.Context) ([]model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients ORDER BY registered_at`
	return r.scanMany(ctx, q)
}

// FindByEmail returns the client with the given email or ErrNotFound.
// Emails are matched case-insensitively via the column collation.
func (r *ClientRepo) FindByEmail(ctx context.Context, email string) (model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, strings.TrimSpace(email)))
}

// FindByNameContaining returns clients whose nickname contains the
// fragment, ordered by nickname.
func (r *ClientRepo) FindByNameContaining(ctx context.Context, fragment string) ([]model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE nickname LIKE ? ORDER BY nickname`
	return r.scanMany(ctx, q, "%"+fragment+"%")
}

func (r *ClientRepo) scanOne(row *sql.Row) (model.Client, error) {
	var c model.Client
	var id string
	err := row.Scan(&id, &c.Nickname, &c.Email, &c.Balance, &c.VisitCount, &c.DiscountPercent, &c.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Client{}, ErrNotFound
	}
	if err != nil {
		return model.Client{}, err
	}
	c.ID, err = uuid.Parse(id)
	return c, err
}

func (r *ClientRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.Client, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	clients := make([]model.Client, 0)
	for rows.Next() {
		var c model.Client
		var id string
		if err := rows.Scan(&id, &c.Nickname, &c.Email, &c.Balance, &c.VisitCount, &c.DiscountPercent, &c.RegisteredAt); err != nil {
			return nil, err
		}
		if c.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
