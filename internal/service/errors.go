// Package service holds the domain services and the session/billing
// orchestrator.  Each service owns one unit of work bound to its
// repository and consults a validator before every mutation.  Failures
// come in two classes: recoverable validation errors carrying a
// field → messages map (*validation.Error) and fatal errors (missing
// entity, invalid state transition, commit failure) reported as plain
// wrapped errors.
package service

import "errors"

// ErrSessionNotFound is returned when the referenced session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionClosed is returned when ending a session that already has
// an end time.  A closed session is terminal.
var ErrSessionClosed = errors.New("session already closed")

// ErrComputerUnavailable is returned when occupying a computer that is
// not currently FREE.
var ErrComputerUnavailable = errors.New("computer unavailable")

// ErrComputerNotBusy is returned when freeing a computer that is not
// currently BUSY.
var ErrComputerNotBusy = errors.New("computer is not busy")

// ErrComputerInUse is returned when deleting a computer that currently
// hosts a session.
var ErrComputerInUse = errors.New("computer is in use")

// ErrNoCurrentTariff is returned when automatic tariff selection finds
// no tariff window covering the current time.
var ErrNoCurrentTariff = errors.New("no tariff active at this time")
