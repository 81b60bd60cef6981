// Package errors defines the typed failures shared by the compiler, the
// metadata catalog and the catalog stores. Every type answers errors.Is
// for one of the sentinels below so callers can branch without type switches.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-exported so callers need a single errors import.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

// Sentinels matched by the typed errors below.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDiscoveryFailed = errors.New("discovery failed")

	// ErrConflict: the stored catalog changed between read and write.
	ErrConflict = errors.New("conflict")

	// ErrUnsupportedVersion: a persisted document in a format this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported version")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements error.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// UnresolvedSlotError is returned when a slot name cannot be mapped to the
// ordinal position declared by its component type.
type UnresolvedSlotError struct {
	TypeID string
	Slot   string
	// UnknownType is true when the component type itself is missing.
	UnknownType bool
}

// Error implements error.
func (e *UnresolvedSlotError) Error() string {
	if e.UnknownType {
		return fmt.Sprintf("cannot resolve slot %q: component type %s not found", e.Slot, e.TypeID)
	}
	return fmt.Sprintf("component type %s has no slot %q", e.TypeID, e.Slot)
}

func (e *UnresolvedSlotError) Is(target error) bool {
	return target == ErrNotFound
}

// UnresolvedRegionError is returned when a region name has no base index in
// the current page layout.
type UnresolvedRegionError struct {
	Region    string
	Available []string
}

// Error implements error.
func (e *UnresolvedRegionError) Error() string {
	if len(e.Available) > 0 {
		return fmt.Sprintf("region %q not found in layout (available: %s)", e.Region, strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("region %q not found in layout", e.Region)
}

func (e *UnresolvedRegionError) Is(target error) bool {
	return target == ErrNotFound
}

// DiscoveryError wraps a failure of the live component registry.
type DiscoveryError struct {
	Registry string
	Err      error
}

// Error implements error.
func (e *DiscoveryError) Error() string {
	if e.Registry != "" {
		return fmt.Sprintf("discovery from %s failed: %v", e.Registry, e.Err)
	}
	return fmt.Sprintf("discovery failed: %v", e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

func (e *DiscoveryError) Is(target error) bool {
	return target == ErrDiscoveryFailed
}

// NewDiscoveryError creates a new DiscoveryError
func NewDiscoveryError(registry string, err error) *DiscoveryError {
	return &DiscoveryError{Registry: registry, Err: err}
}

// ConflictError indicates a compare-and-swap write lost against a
// concurrent writer.
type ConflictError struct {
	Resource string
	Expected string
	Actual   string
}

// Error implements error.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s was modified concurrently (expected revision %q, found %q)", e.Resource, e.Expected, e.Actual)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflictError creates a new ConflictError
func NewConflictError(resource, expected, actual string) *ConflictError {
	return &ConflictError{Resource: resource, Expected: expected, Actual: actual}
}

// APIError is a non-success response from a remote endpoint.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	return e.StatusCode == 404 && target == ErrNotFound
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements error.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements error.
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "load", "save", "compile", "discover"
	Resource  string // "catalog", "document", "store"
	ID        string
	Message   string
	Err       error
}

// Error implements error.
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is, or wraps, a missing resource.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidationError reports whether err stems from bad input.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsConflict reports whether err is a lost compare-and-swap.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsDiscoveryFailed reports whether err comes from a failed registry read.
func IsDiscoveryFailed(err error) bool { return errors.Is(err, ErrDiscoveryFailed) }

// WrapValidation converts err into a *ValidationError on field. Nil stays nil.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO records the I/O operation and path that produced err.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Message: err.Error(), Err: err}
}

// WrapResource records which resource operation produced err.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Message: err.Error(), Err: err}
}

// WrapParse tags err as a parse failure of the given format.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
