package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Lookup errors
	ErrPlayerNotFound      = errors.New("player not found")
	ErrParticipantNotFound = errors.New("participant not found")

	// Ledger errors
	ErrPlayerOwned        = errors.New("player is already owned")
	ErrPlayerNotOwned     = errors.New("player is not owned")
	ErrNotOwner           = errors.New("player is owned by another participant")
	ErrInvalidPrice       = errors.New("price must be at least 1")
	ErrInsufficientBudget = errors.New("insufficient budget")
	ErrRoleCeiling        = errors.New("role ceiling reached")
	ErrUnknownRole        = errors.New("unknown role")

	// Session errors
	ErrNoParticipants       = errors.New("session has no participants")
	ErrTooFewParticipants   = errors.New("at least 2 participants are required")
	ErrDuplicateParticipant = errors.New("duplicate participant name")
	ErrEmptyParticipantName = errors.New("participant name is empty")
	ErrBudgetTooLow         = errors.New("initial budget must be at least 100")
	ErrEmptyCatalog         = errors.New("catalog contains no players")
	ErrNoBackup             = errors.New("no backup to restore")

	// Storage errors
	ErrRecordNotFound = errors.New("record not found")
)

// ParseError reports a spreadsheet that is malformed or too short to use.
// The user can recover by uploading a different file.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return "parse error: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ImportValidationError reports re-import data that decoded fine but
// describes an impossible auction. The live session is left untouched.
type ImportValidationError struct {
	Reason string
}

func (e *ImportValidationError) Error() string {
	return "invalid import data: " + e.Reason
}

// RejectedError is returned by ledger operations whose preconditions
// failed. Nothing was mutated. Err is one of the ledger sentinels above.
type RejectedError struct {
	Op      Operation
	Err     error
	Message string
}

// Reject builds a RejectedError with a formatted advisory message
func Reject(op Operation, err error, format string, args ...any) *RejectedError {
	return &RejectedError{
		Op:      op,
		Err:     err,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Op, e.Message)
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// IsRejected reports whether err is a ledger rejection
func IsRejected(err error) bool {
	var re *RejectedError
	return errors.As(err, &re)
}
