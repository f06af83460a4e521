package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"computer-club/internal/model"
)

// AdminRepo provides MySQL-backed persistence for operator accounts.
type AdminRepo struct {
	db *sql.DB
}

// NewAdminRepo returns an AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

const adminColumns = `id, login, password_hash, email`

// Save inserts a new admin.  A duplicate login maps to ErrConflict.
func (r *AdminRepo) Save(ctx context.Context, a model.Admin) error {
	const q = `INSERT INTO admins (` + adminColumns + `) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, a.ID.String(), a.Login, a.PasswordHash, a.Email)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

// Update rewrites an existing admin.
func (r *AdminRepo) Update(ctx context.Context, a model.Admin) error {
	const q = `UPDATE admins SET login = ?, password_hash = ?, email = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Login, a.PasswordHash, a.Email, a.ID.String())
	if isDuplicate(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes an admin by id.
func (r *AdminRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM admins WHERE id = ?`, id.String())
	return err
}

// FindByID returns the admin with the given id or ErrNotFound.
func (r *AdminRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Admin, error) {
	const q = `SELECT ` + adminColumns + ` FROM admins WHERE id = ?`
	return scanAdmin(r.db.QueryRowContext(ctx, q, id.String()))
}

// FindAll returns every admin ordered by login.
func (r *AdminRepo) FindAll(ctx context.Context) ([]model.Admin, error) {
	const q = `SELECT ` + adminColumns + ` FROM admins ORDER BY login`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	admins := make([]model.Admin, 0)
	for rows.Next() {
		var a model.Admin
		var id string
		if err := rows.Scan(&id, &a.Login, &a.PasswordHash, &a.Email); err != nil {
			return nil, err
		}
		if a.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// FindByLogin returns the admin with the given login or ErrNotFound.
func (r *AdminRepo) FindByLogin(ctx context.Context, login string) (model.Admin, error) {
	const q = `SELECT ` + adminColumns + ` FROM admins WHERE login = ?`
	return scanAdmin(r.db.QueryRowContext(ctx, q, strings.TrimSpace(login)))
}

func scanAdmin(row *sql.Row) (model.Admin, error) {
	var a model.Admin
	var id string
	err := row.Scan(&id, &a.Login, &a.PasswordHash, &a.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Admin{}, ErrNotFound
	}
	if err != nil {
		return model.Admin{}, err
	}
	a.ID, err = uuid.Parse(id)
	return a, err
}
