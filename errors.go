package gridlight

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrPoisoned indicates a panic left the shared network in an unknown state
	ErrPoisoned = errors.New("gridlight: shared network state is poisoned")
	// ErrEmptyNetwork indicates a topology without intersections
	ErrEmptyNetwork = errors.New("gridlight: network must have at least one intersection")
	// ErrNegativeCars indicates a direction configured with a negative queue
	ErrNegativeCars = errors.New("gridlight: queued cars must not be negative")
	// ErrUnknownPolicy indicates a light policy name that is not recognised
	ErrUnknownPolicy = errors.New("gridlight: unknown light policy")
	// ErrInvalidPhase indicates a phase value other than stop or go
	ErrInvalidPhase = errors.New("gridlight: invalid signal phase")
)

// ErrorCode represents specific error conditions in a simulation run
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Shared state was poisoned by a panic
	ErrCodePoisoned
	// Topology or option is invalid
	ErrCodeInvalidConfiguration
	// A worker failed
	ErrCodeWorkerFailed
	// The light controller failed
	ErrCodeControllerFailed
)

// StateError reports a failure to access the shared network state
type StateError struct {
	Code        ErrorCode
	Actor       string
	OriginalErr error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state error [%s]: %v", e.Actor, e.OriginalErr)
}

func (e *StateError) Unwrap() error {
	return e.OriginalErr
}

// NewPoisonedError creates an error for an actor that found the network poisoned
func NewPoisonedError(actor string, cause any) *StateError {
	return &StateError{
		Code:        ErrCodePoisoned,
		Actor:       actor,
		OriginalErr: fmt.Errorf("%w: %v", ErrPoisoned, cause),
	}
}

// ConfigurationError represents topology or option issues
type ConfigurationError struct {
	Component   string
	Issue       string
	OriginalErr error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

func (e *ConfigurationError) Unwrap() error {
	return e.OriginalErr
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(component string, err error) *ConfigurationError {
	return &ConfigurationError{
		Component:   component,
		Issue:       err.Error(),
		OriginalErr: err,
	}
}

// RunError wraps a fatal error that aborted a simulation run
type RunError struct {
	Code  ErrorCode
	RunID uuid.UUID
	Stage string
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %s aborted during %s: %v", e.RunID, e.Stage, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// IsStateError checks if an error is a StateError
func IsStateError(err error) bool {
	var target *StateError
	return errors.As(err, &target)
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsRunError checks if an error is a RunError
func IsRunError(err error) bool {
	var target *RunError
	return errors.As(err, &target)
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	var (
		runErr   *RunError
		stateErr *StateError
		cfgErr   *ConfigurationError
	)
	switch {
	case errors.As(err, &runErr):
		return runErr.Code
	case errors.As(err, &stateErr):
		return stateErr.Code
	case errors.As(err, &cfgErr):
		return ErrCodeInvalidConfiguration
	default:
		return ErrCodeNone
	}
}
