package elastic

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/esrelay/internal/db"
	"github.com/kailas-cloud/esrelay/internal/domain"
	"github.com/kailas-cloud/esrelay/internal/metrics"
)

// Compile-time check: Store implements db.Backend.
var _ db.Backend = (*Store)(nil)

const defaultRequestTimeout = 30 * time.Second

// Config holds connection parameters for an Elasticsearch cluster.
type Config struct {
	Scheme         string // http or https (default: http)
	Host           string
	Port           int
	Username       string
	Password       string
	RequestTimeout time.Duration // per backend call (default: 30s)

	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// Address returns the base URL of the cluster.
func (c Config) Address() string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Store implements db.Backend via go-elasticsearch.
type Store struct {
	client  *elasticsearch.Client
	timeout time.Duration
}

// NewStore creates an Elasticsearch store. No connection is made until the first call.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Address()},
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: cfg.Transport,
		// Failures surface once; the relay never retries.
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Store{client: client, timeout: timeout}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.perform(db.OpPing, false, func() (*esapi.Response, error) {
		return s.client.Ping(s.client.Ping.WithContext(ctx))
	})
	if err != nil {
		return err
	}
	return res.Body.Close()
}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for elasticsearch: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// perform runs one backend call, records its metrics and classifies its failure.
// On success the caller owns res.Body. With allowNotFound a 404 answer is handed
// back to the caller instead of becoming a BackendError.
func (s *Store) perform(
	op string, allowNotFound bool, call func() (*esapi.Response, error),
) (*esapi.Response, error) {
	start := time.Now()
	res, err := call()
	metrics.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		metrics.BackendRequestsTotal.WithLabelValues(op, db.StatusTransportError).Inc()
		return nil, domain.NewTransportError(op, err)
	case res.IsError() && !(allowNotFound && res.StatusCode == http.StatusNotFound):
		defer res.Body.Close()
		metrics.BackendRequestsTotal.WithLabelValues(op, db.StatusBackendError).Inc()
		return nil, decodeError(op, res)
	}

	metrics.BackendRequestsTotal.WithLabelValues(op, db.StatusOK).Inc()
	return res, nil
}
