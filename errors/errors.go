/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrModel is matched by every ModelError
	ErrModel = errors.New("error with model")

	// ErrQuery is matched by every QueryError and ScanError
	ErrQuery = errors.New("error with query")

	// ErrScan is matched by every ScanError
	ErrScan = errors.New("error with scan")
)

const (
	defaultModelMessage = "Error with model"
	defaultQueryMessage = "Error with query"
	defaultScanMessage  = "Error with scan"
)

// ModelError is returned when an item or schema is missing a required key field.
type ModelError struct {
	Message string
}

func (e *ModelError) Error() string {
	if e.Message == "" {
		return defaultModelMessage
	}
	return e.Message
}

func (e *ModelError) Is(target error) bool {
	return target == ErrModel
}

// QueryError is a query-construction error: an illegal builder call sequence,
// a duplicate filter, an unsupported operator, a missing key, or a failed
// round-trip to the executor.
type QueryError struct {
	Message string
	// Err is the executor failure that caused this error, if any.
	Err error
}

func (e *QueryError) Error() string {
	if e.Message == "" {
		return defaultQueryMessage
	}
	return e.Message
}

func (e *QueryError) Is(target error) bool {
	return target == ErrQuery
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// ScanError is a QueryError raised while compiling a scan.
type ScanError struct {
	Message string
}

func (e *ScanError) Error() string {
	if e.Message == "" {
		return defaultScanMessage
	}
	return e.Message
}

func (e *ScanError) Is(target error) bool {
	return target == ErrScan || target == ErrQuery
}

// Helper functions for creating errors

// NewModelError creates a new ModelError
func NewModelError(format string, args ...any) error {
	return &ModelError{Message: fmt.Sprintf(format, args...)}
}

// NewQueryError creates a new QueryError
func NewQueryError(format string, args ...any) error {
	return &QueryError{Message: fmt.Sprintf(format, args...)}
}

// WrapQueryError re-wraps an executor failure as a QueryError carrying its message.
// Errors that already belong to the taxonomy are returned unchanged.
func WrapQueryError(err error) error {
	if err == nil {
		return nil
	}
	if IsQueryError(err) || IsModelError(err) {
		return err
	}
	return &QueryError{Message: err.Error(), Err: err}
}

// NewScanError creates a new ScanError
func NewScanError(format string, args ...any) error {
	return &ScanError{Message: fmt.Sprintf(format, args...)}
}

// IsModelError checks if an error is a model error
func IsModelError(err error) bool {
	return errors.Is(err, ErrModel)
}

// IsQueryError checks if an error is a query-construction error (scan errors included)
func IsQueryError(err error) bool {
	return errors.Is(err, ErrQuery)
}

// IsScanError checks if an error is a scan error
func IsScanError(err error) bool {
	return errors.Is(err, ErrScan)
}
