// Package errors provides error handling for lineage.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for callers that surface errors to users
//   - Kind helpers that group related sentinels without making them equal
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := tree.AddChildChecked(fam, child); err != nil {
//	    return errors.Wrap(err, "failed to attach child")
//	}
//
//	// Check the kind
//	if errors.Is(err, errors.ErrValidation) {
//	    // reject the request
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Generic sentinels shared by every package.
var (
	// ErrNotFound indicates a person or family index that is not in the tree
	ErrNotFound = New("not found")

	// ErrConflict indicates a duplicate identity (e.g. a person key already in use)
	ErrConflict = New("conflict")

	// ErrInvalidRequest indicates malformed caller input outside the domain kinds below
	ErrInvalidRequest = New("invalid request")
)

// Domain error kinds. Each kind has finer sentinels that stay distinct
// from one another; check the kind with the Is*Error helpers and a single
// sentinel with errors.Is.
var (
	// ErrSDNConversion is raised by a calendar when a date cannot be turned
	// into a serial day number.
	ErrSDNConversion = New("sdn conversion failed")

	// ErrIncompleteDate: year, month or day is missing.
	ErrIncompleteDate = New("date is incomplete")

	// ErrInvalidDate: a component is out of range for the calendar.
	ErrInvalidDate = New("date is invalid")

	// ErrValidation is the single kind for structural graph violations
	// (self-parenting, circular ancestry, duplicate child, age gap, ...).
	ErrValidation = New("validation failed")

	// ErrMalformedValue covers unparseable or out-of-domain values.
	ErrMalformedValue = New("malformed value")

	ErrNegativeSosa    = New("sosa number cannot be negative")
	ErrUnparseableSosa = New("sosa number is not a number")
	ErrZeroDivisor     = New("division by zero")
	ErrNoChildSosa     = New("sosa number has no child")
	ErrSosaOverflow    = New("sosa number overflows")
)

var (
	sdnConversionErrors  = []error{ErrSDNConversion, ErrIncompleteDate, ErrInvalidDate}
	malformedValueErrors = []error{ErrMalformedValue, ErrNegativeSosa, ErrUnparseableSosa, ErrZeroDivisor, ErrNoChildSosa, ErrSosaOverflow}
)

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a structural graph violation
func IsValidationError(err error) bool {
	return err != nil && Is(err, ErrValidation)
}

// IsSDNConversionError checks if an error came from a calendar conversion,
// whichever of ErrIncompleteDate or ErrInvalidDate it carries
func IsSDNConversionError(err error) bool {
	return err != nil && IsAny(err, sdnConversionErrors...)
}

// IsMalformedValueError checks if an error is or wraps ErrMalformedValue or
// one of the sosa sentinels
func IsMalformedValueError(err error) bool {
	return err != nil && IsAny(err, malformedValueErrors...)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}
