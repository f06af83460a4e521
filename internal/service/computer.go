package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"computer-club/internal/model"
	"computer-club/internal/repository"
	"computer-club/internal/uow"
	"computer-club/internal/validation"
)

// ComputerService manages workstation records and their status
// transitions.  Occupy and Free are the two transitions driven by the
// session orchestrator; Occupy doubles as the admission conflict check
// because it refuses any computer that is not FREE.
type ComputerService struct {
	computers repository.ComputerRepository
	validator *validation.ComputerValidator
	uow       *uow.UnitOfWork[model.Computer]
}

// NewComputerService builds a service over the given repository.
func NewComputerService(computers repository.ComputerRepository) *ComputerService {
	return &ComputerService{
		computers: computers,
		validator: validation.NewComputerValidator(computers),
		uow:       uow.New(computers, model.Computer.EntityID),
	}
}

// Create validates and stores a new computer in the FREE state.
func (s *ComputerService) Create(ctx context.Context, number int, typ model.ComputerType) (model.Computer, error) {
	computer := model.NewComputer(number, typ)
	if err := s.validator.Validate(ctx, computer).AsError(); err != nil {
		return model.Computer{}, err
	}
	s.uow.RegisterNew(computer)
	if err := s.uow.Commit(ctx); err != nil {
		return model.Computer{}, err
	}
	return computer, nil
}

// UpdateStatus sets the status of an existing computer.
func (s *ComputerService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ComputerStatus) error {
	computer, err := s.computers.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	computer.Status = status
	if err := s.validator.Validate(ctx, computer).AsError(); err != nil {
		return err
	}
	s.uow.RegisterDirty(computer)
	return s.uow.Commit(ctx)
}

// Delete removes a computer.  A computer hosting a session cannot be
// deleted.
func (s *ComputerService) Delete(ctx context.Context, id uuid.UUID) error {
	computer, err := s.computers.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete computer: %w", err)
	}
	if computer.Status == model.StatusBusy {
		return ErrComputerInUse
	}
	s.uow.RegisterDeleted(computer)
	return s.uow.Commit(ctx)
}

// Occupy transitions a FREE computer to BUSY.  Any other current
// status is a conflict and aborts the caller's flow.
func (s *ComputerService) Occupy(ctx context.Context, id uuid.UUID) error {
	computer, err := s.computers.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("occupy computer: %w", err)
	}
	if computer.Status != model.StatusFree {
		return fmt.Errorf("%w: current status %s", ErrComputerUnavailable, computer.Status)
	}
	computer.Status = model.StatusBusy
	s.uow.RegisterDirty(computer)
	return s.uow.Commit(ctx)
}

// Free transitions a BUSY computer back to FREE.
func (s *ComputerService) Free(ctx context.Context, id uuid.UUID) error {
	computer, err := s.computers.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("free computer: %w", err)
	}
	if computer.Status != model.StatusBusy {
		return fmt.Errorf("%w: current status %s", ErrComputerNotBusy, computer.Status)
	}
	computer.Status = model.StatusFree
	s.uow.RegisterDirty(computer)
	return s.uow.Commit(ctx)
}

// Get returns a computer by id.
func (s *ComputerService) Get(ctx context.Context, id uuid.UUID) (model.Computer, error) {
	return s.computers.FindByID(ctx, id)
}

// List returns every computer.
func (s *ComputerService) List(ctx context.Context) ([]model.Computer, error) {
	return s.computers.FindAll(ctx)
}

// ListByStatus returns computers in the given status.
func (s *ComputerService) ListByStatus(ctx context.Context, status model.ComputerStatus) ([]model.Computer, error) {
	return s.computers.FindByStatus(ctx, status)
}

// IsAvailable reports whether the computer exists and is FREE.
func (s *ComputerService) IsAvailable(ctx context.Context, id uuid.UUID) bool {
	computer, err := s.computers.FindByID(ctx, id)
	return err == nil && computer.Status == model.StatusFree
}
