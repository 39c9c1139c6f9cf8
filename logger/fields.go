package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across lineage.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Genealogy graph
	FieldPerson   = "person"
	FieldFamily   = "family"
	FieldRole     = "role"
	FieldSosa     = "sosa"
	FieldRule     = "rule"
	FieldWitness  = "witness"
	FieldCalendar = "calendar"
	FieldDate     = "date"

	// Ingestion
	FieldFile    = "file"
	FieldFormat  = "format"
	FieldVersion = "version"
	FieldFields  = "fields"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount      = "count"
	FieldTotalCount = "total_count"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	tree := genealogy.NewTree(genealogy.WithLogger(logger.ComponentLogger("genealogy")))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	famLogger := logger.ChildLogger(baseLogger, logger.FieldFamily, id)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
