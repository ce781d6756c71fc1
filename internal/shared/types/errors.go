package types

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("invalid configuration")
	ErrRemoteService = errors.New("remote service error")
	ErrOutput        = errors.New("output error")
)

// ConfigurationError reports bad or contradictory user input. No API call is
// made once one of these is raised.
type ConfigurationError struct {
	Field   string
	Message string
	Err     error
}

// NewConfigurationError builds a ConfigurationError for the given input field.
func NewConfigurationError(field, format string, a ...interface{}) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

func (e *ConfigurationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func (e *ConfigurationError) Unwrap() error { return e.Err }

// RemoteServiceError wraps a failed call to an AWS API.
type RemoteServiceError struct {
	Op        string
	Code      string
	Throttled bool
	Err       error
}

func (e *RemoteServiceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s failed (%s): %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *RemoteServiceError) Is(target error) bool { return target == ErrRemoteService }

func (e *RemoteServiceError) Unwrap() error { return e.Err }

// OutputError reports a report destination that could not be written.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("cannot write report to %s: %v", e.Path, e.Err)
}

func (e *OutputError) Is(target error) bool { return target == ErrOutput }

func (e *OutputError) Unwrap() error { return e.Err }
