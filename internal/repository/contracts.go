package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"computer-club/internal/model"
)

// The interfaces below are the only persistence surface the domain
// services and the unit of work see.  Save inserts a new record, Update
// rewrites an existing one (ErrConflict when the id is absent) and
// Delete removes by id.  Lookups return ErrNotFound when nothing
// matches.

// ClientRepository stores club clients.
type ClientRepository interface {
	Save(ctx context.Context, c model.Client) error
	Update(ctx context.Context, c model.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Client, error)
	FindAll(ctx context.Context) ([]model.Client, error)
	FindByEmail(ctx context.Context, email string) (model.Client, error)
	FindByNameContaining(ctx context.Context, fragment string) ([]model.Client, error)
}

// ComputerRepository stores club workstations.
type ComputerRepository interface {
	Save(ctx context.Context, c model.Computer) error
	Update(ctx context.Context, c model.Computer) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Computer, error)
	FindAll(ctx context.Context) ([]model.Computer, error)
	FindByNumber(ctx context.Context, number int) (model.Computer, error)
	FindByStatus(ctx context.Context, status model.ComputerStatus) ([]model.Computer, error)
}

// TariffRepository stores hourly tariffs.
type TariffRepository interface {
	Save(ctx context.Context, t model.Tariff) error
	Update(ctx context.Context, t model.Tariff) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Tariff, error)
	FindAll(ctx context.Context) ([]model.Tariff, error)
	FindByName(ctx context.Context, name string) (model.Tariff, error)
	FindCurrentTariff(ctx context.Context, now time.Time) (model.Tariff, error)
	FindNightTariffs(ctx context.Context) ([]model.Tariff, error)
}

// SessionRepository stores billing sessions.
type SessionRepository interface {
	Save(ctx context.Context, s model.Session) error
	Update(ctx context.Context, s model.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Session, error)
	FindAll(ctx context.Context) ([]model.Session, error)
	FindActiveByClient(ctx context.Context, clientID uuid.UUID) (model.Session, error)
	FindActiveByComputer(ctx context.Context, computerID uuid.UUID) (model.Session, error)
	FindActive(ctx context.Context) ([]model.Session, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]model.Session, error)
	FindByComputer(ctx context.Context, computerID uuid.UUID) ([]model.Session, error)
	FindBetween(ctx context.Context, start, end time.Time) ([]model.Session, error)
}

// PaymentRepository stores session settlements.
type PaymentRepository interface {
	Save(ctx context.Context, p model.Payment) error
	Update(ctx context.Context, p model.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Payment, error)
	FindAll(ctx context.Context) ([]model.Payment, error)
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) (model.Payment, error)
	FindByType(ctx context.Context, typ model.PaymentType) ([]model.Payment, error)
	FindBetween(ctx context.Context, start, end time.Time) ([]model.Payment, error)
	TotalRevenue(ctx context.Context, day time.Time) (decimal.Decimal, error)
}

// AdminRepository stores operator accounts.
type AdminRepository interface {
	Save(ctx context.Context, a model.Admin) error
	Update(ctx context.Context, a model.Admin) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Admin, error)
	FindAll(ctx context.Context) ([]model.Admin, error)
	FindByLogin(ctx context.Context, login string) (model.Admin, error)
}
