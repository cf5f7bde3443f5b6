package esrelay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/esrelay/internal/db/elastic"
	domdoc "github.com/kailas-cloud/esrelay/internal/domain/document"
	healthuc "github.com/kailas-cloud/esrelay/internal/usecase/health"
	relayuc "github.com/kailas-cloud/esrelay/internal/usecase/relay"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for fakes in tests.
type relayUseCase interface {
	CreateIndex(ctx context.Context, indexName string) (string, error)
	AddDocument(ctx context.Context, indexName string, req domdoc.Request) (string, error)
	GetDocumentByID(ctx context.Context, indexName, id string) (string, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Client is the embedded esrelay entry point.
type Client struct {
	backend   pinger
	relaySvc  relayUseCase
	healthSvc healthUseCase
	validator *domdoc.Validator
	obs       *observer
}

// New creates a Client and waits until the cluster answers.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		scheme:           "http",
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.host == "" {
		return nil, errors.New("esrelay: elasticsearch address required (use WithElasticsearch)")
	}

	store, err := elastic.NewStore(elastic.Config{
		Scheme:         cfg.scheme,
		Host:           cfg.host,
		Port:           cfg.port,
		Username:       cfg.username,
		Password:       cfg.password,
		RequestTimeout: cfg.requestTimeout,
		Transport:      cfg.transport,
	})
	if err != nil {
		return nil, fmt.Errorf("esrelay: create elasticsearch store: %w", err)
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		return nil, fmt.Errorf("esrelay: elasticsearch not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		backend:   store,
		relaySvc:  relayuc.New(store, nil),
		healthSvc: healthuc.New(store),
		validator: domdoc.NewValidator(),
		obs:       obs,
	}, nil
}

// Ping checks cluster connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(opPing, start, err) }()

	if err = c.backend.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// CreateIndex creates an index and returns the relay message.
func (c *Client) CreateIndex(ctx context.Context, indexName string) (msg string, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opCreateIndex, start, err) }()

	if indexName == "" {
		return "", errors.New("esrelay: index name is required")
	}
	return c.relaySvc.CreateIndex(ctx, indexName)
}

// AddDocument validates and stores a document, returning the relay message.
// A blank title or text yields an error matching ErrInvalidDocument.
func (c *Client) AddDocument(ctx context.Context, indexName, title, text string) (msg string, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opAddDocument, start, err) }()

	if indexName == "" {
		return "", errors.New("esrelay: index name is required")
	}
	req := domdoc.Request{Title: title, Text: text}
	if err = c.validator.Validate(&req); err != nil {
		return "", err
	}
	return c.relaySvc.AddDocument(ctx, indexName, req)
}

// GetDocument fetches a document by id and returns its rendering or a
// not-found message.
func (c *Client) GetDocument(ctx context.Context, indexName, id string) (msg string, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opGetDocument, start, err) }()

	if indexName == "" || id == "" {
		return "", errors.New("esrelay: index name and id are required")
	}
	return c.relaySvc.GetDocumentByID(ctx, indexName, id)
}
