// Package errors defines the typed errors shared across rbxnav.
package errors

import (
	"fmt"
)

// StructuralError reports malformed mapping or project tree input. It never
// escapes the loader: callers treat it as "tree absent" and fall through to
// the next resolution tier.
type StructuralError struct {
	Source string // "sourcemap" or "project"
	Op     string
	Err    error
}

// NewStructuralError creates a structural error with parse context.
func NewStructuralError(source, op string, err error) *StructuralError {
	return &StructuralError{Source: source, Op: op, Err: err}
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Source, e.Op, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// ScanError reports a failure while enumerating candidate files.
type ScanError struct {
	Path string
	Op   string
	Err  error
}

// NewScanError creates a scan error for a path.
func NewScanError(op, path string, err error) *ScanError {
	return &ScanError{Path: path, Op: op, Err: err}
}

func (e *ScanError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("scan %s failed for %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("scan %s failed: %v", e.Op, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
