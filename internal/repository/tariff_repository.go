package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"computer-club/internal/model"
)

// TariffRepo provides MySQL-backed persistence for tariffs.  Window
// hours are stored as plain integer columns; current-tariff resolution
// is done in Go so the midnight wraparound rule lives in one place
// (model.Tariff.ActiveAt).
type TariffRepo struct {
	db *sql.DB
}

// NewTariffRepo returns a TariffRepo bound to the given database.
func NewTariffRepo(db *sql.DB) *TariffRepo { return &TariffRepo{db: db} }

const tariffColumns = `id, name, price_per_hour, start_hour, end_hour, is_night`

// Save inserts a new tariff.  A duplicate name maps to ErrConflict.
func (r *TariffRepo) Save(ctx context.Context, t model.Tariff) error {
	const q = `INSERT INTO tariffs (` + tariffColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, t.ID.String(), t.Name, t.PricePerHour, t.StartHour, t.EndHour, t.IsNight)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

// Update rewrites an existing tariff.
func (r *TariffRepo) Update(ctx context.Context, t model.Tariff) error {
	const q = `UPDATE tariffs SET name = ?, price_per_hour = ?, start_hour = ?, end_hour = ?, is_night = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.PricePerHour, t.StartHour, t.EndHour, t.IsNight, t.ID.String())
	if isDuplicate(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a tariff by id.
func (r *TariffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tariffs WHERE id = ?`, id.String())
	return err
}

// FindByID returns the tariff with the given id or ErrNotFound.
func (r *TariffRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Tariff, error) {
	const q = `SELECT ` + tariffColumns + ` FROM tariffs WHERE id = ?`
	return scanTariff(r.db.QueryRowContext(ctx, q, id.String()))
}

// FindAll returns every tariff ordered by name.
func (r *TariffRepo) FindAll(ctx context.Context) ([]model.Tariff, error) {
	const q = `SELECT ` + tariffColumns + ` FROM tariffs ORDER BY name`
	return r.scanMany(ctx, q)
}

// FindByName returns the tariff with the given name or ErrNotFound.
func (r *TariffRepo) FindByName(ctx context.Context, name string) (model.Tariff, error) {
	const q = `SELECT ` + tariffColumns + ` FROM tariffs WHERE name = ?`
	return scanTariff(r.db.QueryRowContext(ctx, q, name))
}

// FindCurrentTariff returns the tariff whose active window covers the
// given moment, or ErrNotFound when no window matches.  When several
// windows overlap the first by name wins.
func (r *TariffRepo) FindCurrentTariff(ctx context.Context, now time.Time) (model.Tariff, error) {
	tariffs, err := r.FindAll(ctx)
	if err != nil {
		return model.Tariff{}, err
	}
	for _, t := range tariffs {
		if t.ActiveAt(now) {
			return t, nil
		}
	}
	return model.Tariff{}, ErrNotFound
}

// FindNightTariffs returns all tariffs flagged as night tariffs.
func (r *TariffRepo) FindNightTariffs(ctx context.Context) ([]model.Tariff, error) {
	const q = `SELECT ` + tariffColumns + ` FROM tariffs WHERE is_night = 1 ORDER BY name`
	return r.scanMany(ctx, q)
}

func scanTariff(row *sql.Row) (model.Tariff, error) {
	var t model.Tariff
	var id string
	err := row.Scan(&id, &t.Name, &t.PricePerHour, &t.StartHour, &t.EndHour, &t.IsNight)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tariff{}, ErrNotFound
	}
	if err != nil {
		return model.Tariff{}, err
	}
	t.ID, err = uuid.Parse(id)
	return t, err
}

func (r *TariffRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.Tariff, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tariffs := make([]model.Tariff, 0)
	for rows.Next() {
		var t model.Tariff
		var id string
		if err := rows.Scan(&id, &t.Name, &t.PricePerHour, &t.StartHour, &t.EndHour, &t.IsNight); err != nil {
			return nil, err
		}
		if t.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		tariffs = append(tariffs, t)
	}
	return tariffs, rows.Err()
}
