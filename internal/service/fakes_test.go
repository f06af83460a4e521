package service

// In-memory repositories backing the service tests.  They mirror the
// MySQL implementations' contract: Save inserts, Update requires an
// existing row, lookups return repository.ErrNotFound when nothing
// matches.

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"computer-club/internal/model"
	"computer-club/internal/repository"
)

type memClientRepo struct {
	items map[uuid.UUID]model.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{items: map[uuid.UUID]model.Client{}}
}

func (r *memClientRepo) Save(_ context.Context, c model.Client) error {
	if _, ok := r.items[c.ID]; ok {
		return repository.ErrConflict
	}
	r.items[c.ID] = c
	return nil
}

func (r *memClientRepo) Update(_ context.Context, c model.Client) error {
	if _, ok := r.items[c.ID]; !ok {
		return repository.ErrConflict
	}
	r.items[c.ID] = c
	return nil
}

func (r *memClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *memClientRepo) FindByID(_ context.Context, id uuid.UUID) (model.Client, error) {
	c, ok := r.items[id]
	if !ok {
		return model.Client{}, repository.ErrNotFound
	}
	return c, nil
}

func (r *memClientRepo) FindAll(_ context.Context) ([]model.Client, error) {
	out := make([]model.Client, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	return out, nil
}

func (r *memClientRepo) FindByEmail(_ context.Context, email string) (model.Client, error) {
	for _, c := range r.items {
		if c.Email == email {
			return c, nil
		}
	}
	return model.Client{}, repository.ErrNotFound
}

func (r *memClientRepo) FindByNameContaining(_ context.Context, fragment string) ([]model.Client, error) {
	out := make([]model.Client, 0)
	for _, c := range r.items {
		if strings.Contains(c.Nickname, fragment) {
			out = append(out, c)
		}
	}
	return out, nil
}

type memComputerRepo struct {
	items map[uuid.UUID]model.Computer
}

func newMemComputerRepo() *memComputerRepo {
	return &memComputerRepo{items: map[uuid.UUID]model.Computer{}}
}

func (r *memComputerRepo) Save(_ context.Context, c model.Computer) error {
	if _, ok := r.items[c.ID]; ok {
		return repository.ErrConflict
	}
	for _, existing := range r.items {
		if existing.Number == c.Number {
			return repository.ErrConflict
		}
	}
	r.items[c.ID] = c
	return nil
}

func (r *memComputerRepo) Update(_ context.Context, c model.Computer) error {
	if _, ok := r.items[c.ID]; !ok {
		return repository.ErrConflict
	}
	r.items[c.ID] = c
	return nil
}

func (r *memComputerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *memComputerRepo) FindByID(_ context.Context, id uuid.UUID) (model.Computer, error) {
	c, ok := r.items[id]
	if !ok {
		return model.Computer{}, repository.ErrNotFound
	}
	return c, nil
}

func (r *memComputerRepo) FindAll(_ context.Context) ([]model.Computer, error) {
	out := make([]model.Computer, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	return out, nil
}

func (r *memComputerRepo) FindByNumber(_ context.Context, number int) (model.Computer, error) {
	for _, c := range r.items {
		if c.Number == number {
			return c, nil
		}
	}
	return model.Computer{}, repository.ErrNotFound
}

func (r *memComputerRepo) FindByStatus(_ context.Context, status model.ComputerStatus) ([]model.Computer, error) {
	out := make([]model.Computer, 0)
	for _, c := range r.items {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

type memTariffRepo struct {
	items map[uuid.UUID]model.Tariff
}

func newMemTariffRepo() *memTariffRepo {
	return &memTariffRepo{items: map[uuid.UUID]model.Tariff{}}
}

func (r *memTariffRepo) Save(_ context.Context, t model.Tariff) error {
	if _, ok := r.items[t.ID]; ok {
		return repository.ErrConflict
	}
	r.items[t.ID] = t
	return nil
}

func (r *memTariffRepo) Update(_ context.Context, t model.Tariff) error {
	if _, ok := r.items[t.ID]; !ok {
		return repository.ErrConflict
	}
	r.items[t.ID] = t
	return nil
}

func (r *memTariffRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *memTariffRepo) FindByID(_ context.Context, id uuid.UUID) (model.Tariff, error) {
	t, ok := r.items[id]
	if !ok {
		return model.Tariff{}, repository.ErrNotFound
	}
	return t, nil
}

func (r *memTariffRepo) FindAll(_ context.Context) ([]model.Tariff, error) {
	out := make([]model.Tariff, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t)
	}
	return out, nil
}

func (r *memTariffRepo) FindByName(_ context.Context, name string) (model.Tariff, error) {
	for _, t := range r.items {
		if t.Name == name {
			return t, nil
		}
	}
	return model.Tariff{}, repository.ErrNotFound
}

func (r *memTariffRepo) FindCurrentTariff(ctx context.Context, now time.Time) (model.Tariff, error) {
	for _, t := range r.items {
		if t.ActiveAt(now) {
			return t, nil
		}
	}
	return model.Tariff{}, repository.ErrNotFound
}

func (r *memTariffRepo) FindNightTariffs(_ context.Context) ([]model.Tariff, error) {
	out := make([]model.Tariff, 0)
	for _, t := range r.items {
		if t.IsNight {
			out = append(out, t)
		}
	}
	return out, nil
}

type memSessionRepo struct {
	items map[uuid.UUID]model.Session

	// findAllErr simulates a degraded database during conflict scans.
	findAllErr error
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{items: map[uuid.UUID]model.Session{}}
}

func (r *memSessionRepo) Save(_ context.Context, s model.Session) error {
	if _, ok := r.items[s.ID]; ok {
		return repository.ErrConflict
	}
	r.items[s.ID] = s
	return nil
}

func (r *memSessionRepo) Update(_ context.Context, s model.Session) error {
	if _, ok := r.items[s.ID]; !ok {
		return repository.ErrConflict
	}
	r.items[s.ID] = s
	return nil
}

func (r *memSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *memSessionRepo) FindByID(_ context.Context, id uuid.UUID) (model.Session, error) {
	s, ok := r.items[id]
	if !ok {
		return model.Session{}, repository.ErrNotFound
	}
	return s, nil
}

func (r *memSessionRepo) FindAll(_ context.Context) ([]model.Session, error) {
	if r.findAllErr != nil {
		return nil, r.findAllErr
	}
	out := make([]model.Session, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, nil
}

func (r *memSessionRepo) FindActiveByClient(_ context.Context, clientID uuid.UUID) (model.Session, error) {
	for _, s := range r.items {
		if s.ClientID == clientID && s.EndTime == nil {
			return s, nil
		}
	}
	return model.Session{}, repository.ErrNotFound
}

func (r *memSessionRepo) FindActiveByComputer(_ context.Context, computerID uuid.UUID) (model.Session, error) {
	for _, s := range r.items {
		if s.ComputerID == computerID && s.EndTime == nil {
			return s, nil
		}
	}
	return model.Session{}, repository.ErrNotFound
}

func (r *memSessionRepo) FindActive(_ context.Context) ([]model.Session, error) {
	out := make([]model.Session, 0)
	for _, s := range r.items {
		if s.EndTime == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSessionRepo) FindByClient(_ context.Context, clientID uuid.UUID) ([]model.Session, error) {
	out := make([]model.Session, 0)
	for _, s := range r.items {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSessionRepo) FindByComputer(_ context.Context, computerID uuid.UUID) ([]model.Session, error) {
	out := make([]model.Session, 0)
	for _, s := range r.items {
		if s.ComputerID == computerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSessionRepo) FindBetween(_ context.Context, start, end time.Time) ([]model.Session, error) {
	out := make([]model.Session, 0)
	for _, s := range r.items {
		if !s.StartTime.Before(start) && s.StartTime.Before(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

type memPaymentRepo struct {
	items map[uuid.UUID]model.Payment
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{items: map[uuid.UUID]model.Payment{}}
}

func (r *memPaymentRepo) Save(_ context.Context, p model.Payment) error {
	if _, ok := r.items[p.ID]; ok {
		return repository.ErrConflict
	}
	r.items[p.ID] = p
	return nil
}

func (r *memPaymentRepo) Update(_ context.Context, p model.Payment) error {
	if _, ok := r.items[p.ID]; !ok {
		return repository.ErrConflict
	}
	r.items[p.ID] = p
	return nil
}

func (r *memPaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *memPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (model.Payment, error) {
	p, ok := r.items[id]
	if !ok {
		return model.Payment{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *memPaymentRepo) FindAll(_ context.Context) ([]model.Payment, error) {
	out := make([]model.Payment, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

func (r *memPaymentRepo) FindBySessionID(_ context.Context, sessionID uuid.UUID) (model.Payment, error) {
	for _, p := range r.items {
		if p.SessionID == sessionID {
			return p, nil
		}
	}
	return model.Payment{}, repository.ErrNotFound
}

func (r *memPaymentRepo) FindByType(_ context.Context, typ model.PaymentType) ([]model.Payment, error) {
	out := make([]model.Payment, 0)
	for _, p := range r.items {
		if p.Type == typ {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) FindBetween(_ context.Context, start, end time.Time) ([]model.Payment, error) {
	out := make([]model.Payment, 0)
	for _, p := range r.items {
		if !p.PaymentTime.Before(start) && p.PaymentTime.Before(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) TotalRevenue(_ context.Context, day time.Time) (decimal.Decimal, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)
	total := decimal.Zero
	for _, p := range r.items {
		if !p.PaymentTime.Before(dayStart) && p.PaymentTime.Before(dayEnd) {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}
