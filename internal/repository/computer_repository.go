package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"computer-club/internal/model"
)

// ComputerRepo provides MySQL-backed persistence for workstations.
// The number column carries a unique index; status is a plain string
// enum column.
type ComputerRepo struct {
	db *sql.DB
}

// NewComputerRepo returns a ComputerRepo bound to the given database.
func NewComputerRepo(db *sql.DB) *ComputerRepo { return &ComputerRepo{db: db} }

const computerColumns = `id, number, type, status`

// Save inserts a new computer.  A duplicate number maps to ErrConflict.
func (r *ComputerRepo) Save(ctx context.Context, c model.Computer) error {
	const q = `INSERT INTO computers (` + computerColumns + `) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, c.ID.String(), c.Number, string(c.Type), string(c.Status))
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

// Update rewrites an existing computer.
func (r *ComputerRepo) Update(ctx context.Context, c model.Computer) error {
	const q = `UPDATE computers SET number = ?, type = ?, status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, c.Number, string(c.Type), string(c.Status), c.ID.String())
	if isDuplicate(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a computer by id.
func (r *ComputerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM computers WHERE id = ?`, id.String())
	return err
}

// FindByID returns the computer with the given id or ErrNotFound.
func (r *ComputerRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Computer, error) {
	const q = `SELECT ` + computerColumns + ` FROM computers WHERE id = ?`
	return scanComputer(r.db.QueryRowContext(ctx, q, id.String()))
}

// FindAll returns every computer ordered by its number.
func (r *ComputerRepo) FindAll(ctx context.Context) ([]model.Computer, error) {
	const q = `SELECT ` + computerColumns + ` FROM computers ORDER BY number`
	return r.scanMany(ctx, q)
}

// FindByNumber returns the computer with the given station number.
func (r *ComputerRepo) FindByNumber(ctx context.Context, number int) (model.Computer, error) {
	const q = `SELECT ` + computerColumns + ` FROM computers WHERE number = ?`
	return scanComputer(r.db.QueryRowContext(ctx, q, number))
}

// FindByStatus returns computers currently in the given status.
func (r *ComputerRepo) FindByStatus(ctx context.Context, status model.ComputerStatus) ([]model.Computer, error) {
	const q = `SELECT ` + computerColumns + ` FROM computers WHERE status = ? ORDER BY number`
	return r.scanMany(ctx, q, string(status))
}

func scanComputer(row *sql.Row) (model.Computer, error) {
	var c model.Computer
	var id, typ, status string
	err := row.Scan(&id, &c.Number, &typ, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Computer{}, ErrNotFound
	}
	if err != nil {
		return model.Computer{}, err
	}
	c.Type = model.ComputerType(typ)
	c.Status = model.ComputerStatus(status)
	c.ID, err = uuid.Parse(id)
	return c, err
}

func (r *ComputerRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.Computer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	computers := make([]model.Computer, 0)
	for rows.Next() {
		var c model.Computer
		var id, typ, status string
		if err := rows.Scan(&id, &c.Number, &typ, &status); err != nil {
			return nil, err
		}
		c.Type = model.ComputerType(typ)
		c.Status = model.ComputerStatus(status)
		if c.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		computers = append(computers, c)
	}
	return computers, rows.Err()
}
