package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport signals that a call to the search backend could not complete.
	ErrTransport = errors.New("search backend unreachable")
	// ErrBackend signals that the search backend answered with an error status.
	ErrBackend = errors.New("search backend error")
	// ErrIndexAlreadyExists signals an attempt to create an existing index.
	ErrIndexAlreadyExists = errors.New("index already exists")
	// ErrInvalidDocument signals a document request that failed validation.
	ErrInvalidDocument = errors.New("invalid document")
)

// TransportError wraps a failed network round trip to the search backend.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrTransport.Error(), e.Err)
}

// Is reports ErrTransport so callers can use errors.Is without unwrapping the cause.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError creates a TransportError for the given operation.
func NewTransportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

// BackendError is a non-2xx answer from the search backend.
type BackendError struct {
	Op     string
	Status int
	Type   string
	Reason string
}

func (e *BackendError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s: %s: status %d", e.Op, ErrBackend.Error(), e.Status)
	}
	return fmt.Sprintf("%s: %s: status %d: %s: %s", e.Op, ErrBackend.Error(), e.Status, e.Type, e.Reason)
}

// Is matches ErrBackend, and ErrIndexAlreadyExists for the matching exception type.
func (e *BackendError) Is(target error) bool {
	switch target {
	case ErrBackend:
		return true
	case ErrIndexAlreadyExists:
		return e.Type == "resource_already_exists_exception"
	}
	return false
}
