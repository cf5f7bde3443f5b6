package esrelay

import "github.com/kailas-cloud/esrelay/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrTransport          = domain.ErrTransport
	ErrBackend            = domain.ErrBackend
	ErrIndexAlreadyExists = domain.ErrIndexAlreadyExists
	ErrInvalidDocument    = domain.ErrInvalidDocument
)
