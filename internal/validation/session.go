package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"computer-club/internal/model"
	"computer-club/internal/repository"
)

// SessionValidator enforces the central concurrency-safety rule of the
// system: no client and no computer may have more than one session with
// a nil end time.  The check is a full scan over existing sessions
// excluding the validated session's own id, which is correct because
// orchestrator invocations are strictly sequential.
type SessionValidator struct {
	sessions  repository.SessionRepository
	clients   repository.ClientRepository
	computers repository.ComputerRepository
	tariffs   repository.TariffRepository
}

// NewSessionValidator returns a validator backed by the given repositories.
func NewSessionValidator(
	sessions repository.SessionRepository,
	clients repository.ClientRepository,
	computers repository.ComputerRepository,
	tariffs repository.TariffRepository,
) *SessionValidator {
	return &SessionValidator{
		sessions:  sessions,
		clients:   clients,
		computers: computers,
		tariffs:   tariffs,
	}
}

// Validate runs every session rule and returns the collected report.
// The conflict checks scan existing sessions; a scan failure is
// returned as an error so a degraded database can never admit a
// conflicting session.
func (v *SessionValidator) Validate(ctx context.Context, s model.Session) (Result, error) {
	errs := Result{}

	v.validateClient(ctx, s.ClientID, errs)
	v.validateComputer(ctx, s.ComputerID, errs)
	v.validateTariff(ctx, s.TariffID, errs)
	v.validateStartTime(s.StartTime, errs)
	v.validateEndTime(s.StartTime, s.EndTime, errs)
	v.validateTotalCost(s, errs)

	if err := v.validateClientHasNoActiveSession(ctx, s, errs); err != nil {
		return errs, err
	}
	if err := v.validateComputerIsAvailable(ctx, s, errs); err != nil {
		return errs, err
	}

	return errs, nil
}

func (v *SessionValidator) validateClient(ctx context.Context, clientID uuid.UUID, errs Result) {
	if clientID == uuid.Nil {
		errs.Add("clientId", "client is required")
		return
	}
	if _, err := v.clients.FindByID(ctx, clientID); errors.Is(err, repository.ErrNotFound) {
		errs.Add("clientId", "client with this id was not found")
	}
}

func (v *SessionValidator) validateComputer(ctx context.Context, computerID uuid.UUID, errs Result) {
	if computerID == uuid.Nil {
		errs.Add("computerId", "computer is required")
		return
	}
	if _, err := v.computers.FindByID(ctx, computerID); errors.Is(err, repository.ErrNotFound) {
		errs.Add("computerId", "computer with this id was not found")
	}
}

func (v *SessionValidator) validateTariff(ctx context.Context, tariffID uuid.UUID, errs Result) {
	if tariffID == uuid.Nil {
		errs.Add("tariffId", "tariff is required")
		return
	}
	if _, err := v.tariffs.FindByID(ctx, tariffID); errors.Is(err, repository.ErrNotFound) {
		errs.Add("tariffId", "tariff with this id was not found")
	}
}

func (v *SessionValidator) validateStartTime(start time.Time, errs Result) {
	if start.IsZero() {
		errs.Add("startTime", "start time is required")
		return
	}
	if start.After(time.Now().UTC().Add(clockSkew)) {
		errs.Add("startTime", "start time cannot be in the future")
	}
}

func (v *SessionValidator) validateEndTime(start time.Time, end *time.Time, errs Result) {
	if end == nil {
		return
	}
	if !start.IsZero() && end.Before(start) {
		errs.Add("endTime", "end time cannot be before start time")
	}
	if end.Equal(start) {
		errs.Add("endTime", "end time cannot equal start time")
	}
	if end.After(time.Now().UTC().Add(clockSkew)) {
		errs.Add("endTime", "end time cannot be in the future")
	}
}

func (v *SessionValidator) validateTotalCost(s model.Session, errs Result) {
	if s.EndTime == nil && s.TotalCost != nil {
		errs.Add("totalCost", "cost cannot be set on an active session")
	}
	if s.EndTime != nil && s.TotalCost == nil {
		errs.Add("totalCost", "cost must be calculated for a closed session")
	}
	if s.TotalCost != nil && s.TotalCost.IsNegative() {
		errs.Add("totalCost", "cost cannot be negative")
	}
}

func (v *SessionValidator) validateClientHasNoActiveSession(ctx context.Context, s model.Session, errs Result) error {
	if s.ClientID == uuid.Nil {
		return nil
	}
	all, err := v.sessions.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("scan sessions for client conflicts: %w", err)
	}
	for _, existing := range all {
		if existing.ClientID == s.ClientID && existing.EndTime == nil && existing.ID != s.ID {
			errs.Add("clientId", "client already has an active session on computer "+existing.ComputerID.String())
			return nil
		}
	}
	return nil
}

func (v *SessionValidator) validateComputerIsAvailable(ctx context.Context, s model.Session, errs Result) error {
	if s.ComputerID == uuid.Nil {
		return nil
	}
	if computer, err := v.computers.FindByID(ctx, s.ComputerID); err == nil {
		if computer.Status == model.StatusOffline {
			errs.Add("computerId", "computer is under maintenance")
		}
	}
	all, err := v.sessions.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("scan sessions for computer conflicts: %w", err)
	}
	for _, existing := range all {
		if existing.ComputerID == s.ComputerID && existing.EndTime == nil && existing.ID != s.ID {
			errs.Add("computerId", "computer already has an active session of client "+existing.ClientID.String())
			return nil
		}
	}
	return nil
}
