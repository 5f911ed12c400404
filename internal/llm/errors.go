package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies completion failures so callers can decide how to recover
type ErrorKind string

const (
	// KindUnavailable covers transport failures and provider-side errors
	KindUnavailable ErrorKind = "service_unavailable"
	// KindTimeout covers deadline expiry on a completion call
	KindTimeout ErrorKind = "timeout"
	// KindMalformed covers responses with no usable text content
	KindMalformed ErrorKind = "malformed_output"
)

// ServiceError represents a failed completion call
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("llm %s: %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// serviceError builds a ServiceError, classifying deadline expiry as a timeout
func serviceError(kind ErrorKind, message string, cause error) *ServiceError {
	if errors.Is(cause, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &ServiceError{Kind: kind, Message: message, Cause: cause}
}
