package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound means the referenced id or credential pair has no row.
var ErrNotFound = errors.New("appointment not found")

// ValidationError reports user-correctable input problems. Missing lists
// required fields that were absent or blank; Invalid maps a field to the
// reason its value was rejected.
type ValidationError struct {
	Message string
	Missing []string
	Invalid map[string]string
}

func (e *ValidationError) Error() string {
	parts := []string{e.Message}
	if len(e.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		fields := make([]string, 0, len(e.Invalid))
		for f := range e.Invalid {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		parts = append(parts, "invalid: "+strings.Join(fields, ", "))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) empty() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0
}

func (e *ValidationError) invalid(field, reason string) {
	if e.Invalid == nil {
		e.Invalid = map[string]string{}
	}
	if _, exists := e.Invalid[field]; !exists {
		e.Invalid[field] = reason
	}
}

// StoreError wraps a connectivity or statement failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
