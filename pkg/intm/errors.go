// Package intm provides custom error types for conversion failures.
package intm

import (
	"errors"
	"fmt"
	"strings"
)

// ArchiveAccessError represents a package that cannot be opened, is not a
// zip container, or lacks the document part
type ArchiveAccessError struct {
	Path   string
	Reason string
	Cause  error
}

func (e *ArchiveAccessError) Error() string {
	msg := "archive access error"
	if e.Path != "" {
		msg += fmt.Sprintf(" for '%s'", e.Path)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *ArchiveAccessError) Unwrap() error {
	return e.Cause
}

// NewArchiveAccessError creates a new archive access error
func NewArchiveAccessError(path, reason string, cause error) error {
	return &ArchiveAccessError{
		Path:   path,
		Reason: reason,
		Cause:  cause,
	}
}

// XMLWellFormednessError represents malformed markup in the document part
type XMLWellFormednessError struct {
	Line   int
	Column int
	Cause  error
}

func (e *XMLWellFormednessError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("xml error at line %d, column %d: %v", e.Line, e.Column, e.Cause)
	}
	return fmt.Sprintf("xml error: %v", e.Cause)
}

func (e *XMLWellFormednessError) Unwrap() error {
	return e.Cause
}

// AttributeFormatError represents an attribute value that cannot be
// interpreted, such as a non-numeric grid span
type AttributeFormatError struct {
	Tag       string
	Attribute string
	Value     string
	Cause     error
}

func (e *AttributeFormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid %s value '%s' on %s: %v", e.Attribute, e.Value, e.Tag, e.Cause)
	}
	return fmt.Sprintf("invalid %s value '%s' on %s", e.Attribute, e.Value, e.Tag)
}

func (e *AttributeFormatError) Unwrap() error {
	return e.Cause
}

// OutputError represents a failure to create or write the destination
type OutputError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *OutputError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("output error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	}
	return fmt.Sprintf("output error during %s: %v", e.Operation, e.Cause)
}

func (e *OutputError) Unwrap() error {
	return e.Cause
}

// StructureError represents table markup that does not nest, such as a row
// or grid span outside of any table
type StructureError struct {
	Tag     string
	Message string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("structure error at %s: %s", e.Tag, e.Message)
}

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Field   string
	Message string
}

// ValidationError represents multiple validation issues
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation error"
	}

	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation error: %s - %s", e.Issues[0].Field, e.Issues[0].Message)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d validation issues:", len(e.Issues)))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("  %s: %s", issue.Field, issue.Message))
	}
	return strings.Join(parts, "\n")
}

// MultiError collects multiple errors
type MultiError struct {
	errors []error
}

// NewMultiError creates a new multi-error collector
func NewMultiError() *MultiError {
	return &MultiError{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collection (ignores nil errors)
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// Len returns the number of errors
func (m *MultiError) Len() int {
	return len(m.errors)
}

// Errors returns the collected errors
func (m *MultiError) Errors() []error {
	return append([]error(nil), m.errors...)
}

// Err returns the multi-error or nil if empty
func (m *MultiError) Err() error {
	if len(m.errors) == 0 {
		return nil
	}
	if len(m.errors) == 1 {
		return m.errors[0]
	}
	return m
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (m *MultiError) Unwrap() []error {
	return m.errors
}

func (m *MultiError) Error() string {
	if len(m.errors) == 0 {
		return "no errors"
	}

	if len(m.errors) == 1 {
		return m.errors[0].Error()
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d errors occurred:", len(m.errors)))
	for i, err := range m.errors {
		parts = append(parts, fmt.Sprintf("  [%d] %v", i+1, err))
	}
	return strings.Join(parts, "\n")
}

// IsArchiveAccessError checks if an error is or wraps an archive access error
func IsArchiveAccessError(err error) bool {
	var target *ArchiveAccessError
	return errors.As(err, &target)
}

// IsXMLWellFormednessError checks if an error is or wraps an xml error
func IsXMLWellFormednessError(err error) bool {
	var target *XMLWellFormednessError
	return errors.As(err, &target)
}

// IsAttributeFormatError checks if an error is or wraps an attribute format error
func IsAttributeFormatError(err error) bool {
	var target *AttributeFormatError
	return errors.As(err, &target)
}

// IsOutputError checks if an error is or wraps an output error
func IsOutputError(err error) bool {
	var target *OutputError
	return errors.As(err, &target)
}

// IsStructureError checks if an error is or wraps a structure error
func IsStructureError(err error) bool {
	var target *StructureError
	return errors.As(err, &target)
}
