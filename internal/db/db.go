package db

import (
	"context"
	"time"

	domdoc "github.com/kailas-cloud/esrelay/internal/domain/document"
)

// Backend is the search backend facade used by the relay.
type Backend interface {
	Pinger
	IndexManager
	DocumentStore
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexManager creates indices.
type IndexManager interface {
	// CreateIndex returns the index identifier acknowledged by the backend.
	CreateIndex(ctx context.Context, name string) (string, error)
}

// DocumentStore writes and reads single documents.
type DocumentStore interface {
	// IndexDocument stores doc and refreshes the index; returns the backend-assigned id.
	IndexDocument(ctx context.Context, index string, doc domdoc.Document) (string, error)
	GetDocument(ctx context.Context, index, id string) (domdoc.Lookup, error)
}
