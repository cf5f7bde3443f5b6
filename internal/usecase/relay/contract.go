package relay

import (
	"context"

	"go.uber.org/zap"

	domdoc "github.com/kailas-cloud/esrelay/internal/domain/document"
)

// SearchClient is the search backend as seen by the relay.
type SearchClient interface {
	CreateIndex(ctx context.Context, name string) (string, error)
	IndexDocument(ctx context.Context, index string, doc domdoc.Document) (string, error)
	GetDocument(ctx context.Context, index, id string) (domdoc.Lookup, error)
}

// Logger is the logging capability the relay needs. *zap.Logger satisfies it.
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}
