package relay

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/esrelay/internal/domain"
	domdoc "github.com/kailas-cloud/esrelay/internal/domain/document"
	"github.com/kailas-cloud/esrelay/internal/metrics"
)

// Operation names used in logs and metric labels.
const (
	OpCreateIndex = "create_index"
	OpAddDocument = "add_document"
	OpGetDocument = "get_document"
)

// Outcomes recorded per operation.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeInterrupted = "interrupted"
	OutcomeFailed      = "failed"
)

// CorruptedMessage is returned when a document lookup cannot reach the backend.
const CorruptedMessage = "Document or index was corrupted"

// Service relays index and document operations to the search backend and
// renders each outcome as a human-readable message.
//
// Transport failures are absorbed into the message and never returned.
// Backend rejections (BackendError and friends) are returned to the caller.
type Service struct {
	client SearchClient
	logger Logger
}

// New creates a relay service. A nil logger discards output.
func New(client SearchClient, logger Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// CreateIndex creates indexName on the backend.
func (s *Service) CreateIndex(ctx context.Context, indexName string) (string, error) {
	id, err := s.client.CreateIndex(ctx, indexName)
	if err != nil {
		if errors.Is(err, domain.ErrTransport) {
			s.record(OpCreateIndex, OutcomeInterrupted)
			s.logger.Error("Index creation was interrupted",
				zap.String("index", indexName), zap.Error(err))
			return fmt.Sprintf("Index creation %s was interrupted", indexName), nil
		}
		return "", s.fail(OpCreateIndex, indexName, err)
	}

	s.record(OpCreateIndex, OutcomeOK)
	s.logger.Info("Index created", zap.String("index", indexName), zap.String("id", id))
	return fmt.Sprintf("Index created name: %s id: %s", indexName, id), nil
}

// AddDocument stores the document described by req in indexName.
// req is expected to be validated by the caller.
func (s *Service) AddDocument(ctx context.Context, indexName string, req domdoc.Request) (string, error) {
	id, err := s.client.IndexDocument(ctx, indexName, req.ToDocument())
	if err != nil {
		if errors.Is(err, domain.ErrTransport) {
			s.record(OpAddDocument, OutcomeInterrupted)
			s.logger.Error("Adding document was interrupted",
				zap.String("index", indexName), zap.Error(err))
			return fmt.Sprintf("Adding document to index %s was interrupted", indexName), nil
		}
		return "", s.fail(OpAddDocument, indexName, err)
	}

	s.record(OpAddDocument, OutcomeOK)
	s.logger.Info("Document added", zap.String("index", indexName), zap.String("id", id))
	return fmt.Sprintf("Document: id %s added to index %s", id, indexName), nil
}

// GetDocumentByID fetches a document and renders it.
// Found-without-payload is reported exactly like not found.
func (s *Service) GetDocumentByID(ctx context.Context, indexName, id string) (string, error) {
	lookup, err := s.client.GetDocument(ctx, indexName, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransport) {
			s.record(OpGetDocument, OutcomeInterrupted)
			s.logger.Error(CorruptedMessage,
				zap.String("index", indexName), zap.String("id", id), zap.Error(err))
			return CorruptedMessage, nil
		}
		return "", s.fail(OpGetDocument, indexName, err)
	}

	if lookup.Present() && !lookup.Source.IsZero() {
		s.record(OpGetDocument, OutcomeOK)
		s.logger.Info("Document found",
			zap.String("index", indexName),
			zap.String("id", id),
			zap.String("title", lookup.Source.Title()),
		)
		return lookup.Source.String(), nil
	}

	if lookup.Found {
		s.logger.Warn("Document found without payload", zap.String("index", indexName), zap.String("id", id))
	} else {
		s.logger.Info("Document not found", zap.String("index", indexName), zap.String("id", id))
	}
	s.record(OpGetDocument, OutcomeNotFound)
	return fmt.Sprintf("No document by this id %s", id), nil
}

func (s *Service) fail(op, indexName string, err error) error {
	s.record(op, OutcomeFailed)
	s.logger.Error("Backend rejected request",
		zap.String("operation", op), zap.String("index", indexName), zap.Error(err))
	return fmt.Errorf("%s %s: %w", op, indexName, err)
}

func (s *Service) record(op, outcome string) {
	metrics.RelayOperationsTotal.WithLabelValues(op, outcome).Inc()
}
