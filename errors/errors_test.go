/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestModelError(t *testing.T) {
	err := NewModelError("Item could not be saved. Item needs %s key", "hash")

	expected := "Item could not be saved. Item needs hash key"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrModel) {
		t.Error("ModelError should match ErrModel")
	}

	if IsQueryError(err) {
		t.Error("ModelError should not be a query error")
	}
}

func TestDefaultMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "model", err: &ModelError{}, expected: "Error with model"},
		{name: "query", err: &QueryError{}, expected: "Error with query"},
		{name: "scan", err: &ScanError{}, expected: "Error with scan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestScanErrorIsQueryError(t *testing.T) {
	err := NewScanError("duplicate filter %q", "age")

	if !IsScanError(err) {
		t.Error("IsScanError should return true for ScanError")
	}
	if !IsQueryError(err) {
		t.Error("ScanError should match ErrQuery")
	}
	if IsScanError(NewQueryError("plain")) {
		t.Error("QueryError should not match ErrScan")
	}
}

func TestWrapQueryError(t *testing.T) {
	t.Run("transport error", func(t *testing.T) {
		transport := errors.New("connection reset")
		err := WrapQueryError(transport)

		if err.Error() != "connection reset" {
			t.Errorf("Expected message to be carried, got %q", err.Error())
		}
		if !IsQueryError(err) {
			t.Error("wrapped error should be a query error")
		}
		var qe *QueryError
		if !errors.As(err, &qe) || qe.Err != transport {
			t.Error("wrapped error should keep the cause")
		}
	})

	t.Run("taxonomy errors pass through", func(t *testing.T) {
		model := NewModelError("missing key")
		if WrapQueryError(model) != model {
			t.Error("ModelError should not be re-wrapped")
		}
		scan := NewScanError("bad scan")
		if WrapQueryError(scan) != scan {
			t.Error("ScanError should not be re-wrapped")
		}
	})

	t.Run("nil", func(t *testing.T) {
		if WrapQueryError(nil) != nil {
			t.Error("nil should stay nil")
		}
	})
}

func TestErrorWrapping(t *testing.T) {
	original := NewQueryError("Invalid Query state: eq() must follow filter()")
	wrapped := fmt.Errorf("execute failed: %w", original)

	if !errors.Is(wrapped, ErrQuery) {
		t.Error("Wrapped QueryError should still match ErrQuery")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{ErrModel, ErrQuery, ErrScan}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
