package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"computer-club/internal/logger"
	"computer-club/internal/model"
	"computer-club/internal/queue"
	"computer-club/internal/repository"
	"computer-club/internal/uow"
	"computer-club/internal/validation"
)

// EventPublisher emits the session-closed event after a successful
// settlement.  queue.Publisher satisfies it; tests swap in a fake.
type EventPublisher interface {
	PublishSessionClosed(ctx context.Context, event queue.SessionClosedEvent) error
}

// SessionService orchestrates the session lifecycle: opening a session
// against a free computer and closing it with cost calculation,
// balance settlement, payment registration and loyalty accrual.  Writes
// to sessions and payments are staged in units of work and flushed
// together so a storage failure leaves no half-written close.
type SessionService struct {
	sessions  repository.SessionRepository
	clients   *ClientService
	computers *ComputerService
	tariffs   *TariffService
	validator *validation.SessionValidator
	sessionUW *uow.UnitOfWork[model.Session]
	paymentUW *uow.UnitOfWork[model.Payment]
	publisher EventPublisher
}

// NewSessionService wires the orchestrator.  publisher may be nil, in
// which case closed sessions are not announced.
func NewSessionService(
	sessions repository.SessionRepository,
	payments repository.PaymentRepository,
	clients *ClientService,
	computers *ComputerService,
	tariffs *TariffService,
	validator *validation.SessionValidator,
	publisher EventPublisher,
) *SessionService {
	return &SessionService{
		sessions:  sessions,
		clients:   clients,
		computers: computers,
		tariffs:   tariffs,
		validator: validator,
		sessionUW: uow.New[model.Session](sessions, model.Session.EntityID),
		paymentUW: uow.New[model.Payment](payments, model.Payment.EntityID),
		publisher: publisher,
	}
}

// StartSession opens a new session for the client on the computer under
// the given tariff.  When tariffID is the zero UUID the tariff active
// at the current wall-clock time is used.  The computer is occupied
// only after the session passes validation, and the session row is
// written only after the computer flips to busy, so a conflict at
// either step leaves no partial state behind.
func (s *SessionService) StartSession(ctx context.Context, clientID, computerID, tariffID uuid.UUID) (model.Session, error) {
	if tariffID == uuid.Nil {
		tariff, err := s.tariffs.CurrentTariff(ctx, time.Now().UTC())
		if err != nil {
			return model.Session{}, err
		}
		tariffID = tariff.ID
	}

	sess := model.NewSession(clientID, computerID, tariffID)

	errs, err := s.validator.Validate(ctx, sess)
	if err != nil {
		return model.Session{}, fmt.Errorf("validate session: %w", err)
	}
	if !errs.Valid() {
		return model.Session{}, errs.AsError()
	}

	if err := s.computers.Occupy(ctx, computerID); err != nil {
		return model.Session{}, err
	}

	s.sessionUW.RegisterNew(sess)
	if err := s.sessionUW.Commit(ctx); err != nil {
		// Undo the occupy so the computer does not stay busy with no
		// session attached.
		if freeErr := s.computers.Free(ctx, computerID); freeErr != nil {
			logger.Error("free computer after failed session save",
				zap.String("computer_id", computerID.String()), zap.Error(freeErr))
		}
		return model.Session{}, fmt.Errorf("save session: %w", err)
	}

	logger.Info("session started",
		zap.String("session_id", sess.ID.String()),
		zap.String("client_id", clientID.String()),
		zap.String("computer_id", computerID.String()),
		zap.String("tariff_id", tariffID.String()))

	return sess, nil
}

// EndSession closes the session at the given end time: it computes the
// total cost under the session's tariff with the client's discount,
// charges the client's balance (which may go negative), frees the
// computer, registers a cash payment and credits a loyalty visit.  The
// closed session is validated before any state is touched; validation
// failure aborts with no side effects.  Closing an already closed
// session returns ErrSessionClosed.
func (s *SessionService) EndSession(ctx context.Context, sessionID uuid.UUID, endTime time.Time) (model.Session, error) {
	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Session{}, ErrSessionNotFound
		}
		return model.Session{}, fmt.Errorf("load session: %w", err)
	}
	if sess.EndTime != nil {
		return model.Session{}, ErrSessionClosed
	}

	tariff, err := s.tariffs.Get(ctx, sess.TariffID)
	if err != nil {
		return model.Session{}, fmt.Errorf("load tariff: %w", err)
	}
	client, err := s.clients.Get(ctx, sess.ClientID)
	if err != nil {
		return model.Session{}, fmt.Errorf("load client: %w", err)
	}

	minutes := int64(endTime.Sub(sess.StartTime).Minutes())
	if minutes < 1 {
		minutes = 1
	}
	cost := s.tariffs.CalculateCost(tariff, minutes, client.DiscountPercent)

	closed := sess.Closed(endTime.UTC(), cost)
	errs, err := s.validator.Validate(ctx, closed)
	if err != nil {
		return model.Session{}, fmt.Errorf("validate session: %w", err)
	}
	if !errs.Valid() {
		return model.Session{}, errs.AsError()
	}

	// Validation passed: from here on the mutations run in settlement
	// order, with storage writes staged and flushed together.
	if _, err := s.clients.Charge(ctx, client.ID, cost); err != nil {
		return model.Session{}, fmt.Errorf("charge client: %w", err)
	}
	if err := s.computers.Free(ctx, sess.ComputerID); err != nil {
		return model.Session{}, fmt.Errorf("free computer: %w", err)
	}

	payment := model.NewPayment(closed.ID, cost, model.PaymentCash)
	s.sessionUW.RegisterDirty(closed)
	s.paymentUW.RegisterNew(payment)
	if err := s.sessionUW.Commit(ctx); err != nil {
		s.paymentUW.Rollback()
		return model.Session{}, fmt.Errorf("persist closed session: %w", err)
	}
	if err := s.paymentUW.Commit(ctx); err != nil {
		return model.Session{}, fmt.Errorf("persist payment: %w", err)
	}

	if _, err := s.clients.RegisterVisit(ctx, client.ID); err != nil {
		logger.Error("register visit", zap.String("client_id", client.ID.String()), zap.Error(err))
	}

	s.announceClosed(ctx, closed, client, tariff, minutes, payment)

	logger.Info("session closed",
		zap.String("session_id", closed.ID.String()),
		zap.Int64("minutes", minutes),
		zap.String("total_cost", cost.StringFixed(2)))

	return closed, nil
}

// ForceEndSession closes a session on an administrator's authority,
// recording who did it in the audit log before running the normal close
// flow at the current wall-clock time.
func (s *SessionService) ForceEndSession(ctx context.Context, adminID, sessionID uuid.UUID) (model.Session, error) {
	logger.LogAdminAction(adminID.String(), "force_end_session", sessionID.String())
	return s.EndSession(ctx, sessionID, time.Now().UTC())
}

// announceClosed publishes the session-closed event.  Publishing is
// best effort: the session is already settled, so a broker failure is
// logged and swallowed.
func (s *SessionService) announceClosed(ctx context.Context, sess model.Session, client model.Client, tariff model.Tariff, minutes int64, payment model.Payment) {
	if s.publisher == nil {
		return
	}
	computer, err := s.computers.Get(ctx, sess.ComputerID)
	if err != nil {
		logger.Error("load computer for event", zap.Error(err))
		return
	}
	event := queue.SessionClosedEvent{
		SessionID:      sess.ID.String(),
		ClientID:       client.ID.String(),
		ClientNickname: client.Nickname,
		ComputerNumber: computer.Number,
		TariffName:     tariff.Name,
		Minutes:        minutes,
		TotalCost:      sess.TotalCost.StringFixed(2),
		PaymentType:    string(payment.Type),
		ClosedAt:       sess.EndTime.UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishSessionClosed(ctx, event); err != nil {
		logger.Error("publish session.closed", zap.String("session_id", sess.ID.String()), zap.Error(err))
	}
}

// Get returns a session by id.
func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (model.Session, error) {
	sess, err := s.sessions.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Session{}, ErrSessionNotFound
	}
	return sess, err
}

// List returns every session, open and closed.
func (s *SessionService) List(ctx context.Context) ([]model.Session, error) {
	return s.sessions.FindAll(ctx)
}

// ActiveSessions returns all sessions that have not been closed yet.
func (s *SessionService) ActiveSessions(ctx context.Context) ([]model.Session, error) {
	return s.sessions.FindActive(ctx)
}

// FindActiveByClient returns the client's open session, if any.
func (s *SessionService) FindActiveByClient(ctx context.Context, clientID uuid.UUID) (model.Session, error) {
	return s.sessions.FindActiveByClient(ctx, clientID)
}

// FindActiveByComputer returns the open session on the computer, if any.
func (s *SessionService) FindActiveByComputer(ctx context.Context, computerID uuid.UUID) (model.Session, error) {
	return s.sessions.FindActiveByComputer(ctx, computerID)
}

// FindByClient returns the client's full session history.
func (s *SessionService) FindByClient(ctx context.Context, clientID uuid.UUID) ([]model.Session, error) {
	return s.sessions.FindByClient(ctx, clientID)
}

// FindByComputer returns all sessions ever run on the computer.
func (s *SessionService) FindByComputer(ctx context.Context, computerID uuid.UUID) ([]model.Session, error) {
	return s.sessions.FindByComputer(ctx, computerID)
}

// FindBetween returns sessions whose start falls inside [start, end).
func (s *SessionService) FindBetween(ctx context.Context, start, end time.Time) ([]model.Session, error) {
	return s.sessions.FindBetween(ctx, start, end)
}
