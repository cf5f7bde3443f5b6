package elastic

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"
)

var errConnReset = errors.New("connection reset by peer")

// fakeCluster is an httptest stand-in for an Elasticsearch node.
// It records every request as "METHOD /escaped/path" plus its raw query.
type fakeCluster struct {
	mu       sync.Mutex
	calls    []string
	queries  []string
	handlers map[string]http.HandlerFunc
}

func newFakeCluster() *fakeCluster {
	return &fakeCluster{handlers: make(map[string]http.HandlerFunc)}
}

func (f *fakeCluster) on(methodPath string, h http.HandlerFunc) *fakeCluster {
	f.handlers[methodPath] = h
	return f
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.EscapedPath()
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.queries = append(f.queries, r.URL.RawQuery)
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	h, ok := f.handlers[key]
	if !ok {
		w.WriteHeader(http.StatusNotImplemented)
		_, _ = w.Write([]byte(`{"error":{"type":"unexpected_call","reason":"` + key + `"},"status":501}`))
		return
	}
	h(w, r)
}

func (f *fakeCluster) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCluster) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func jsonReply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// newTestStore starts a fake cluster and returns a Store pointed at it.
// Requests matching one of failOn ("METHOD /path") fail at the transport level
// and never reach the cluster.
func newTestStore(t *testing.T, cluster *fakeCluster, failOn ...string) *Store {
	t.Helper()

	srv := httptest.NewServer(cluster)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse server port: %v", err)
	}

	failing := make(map[string]bool, len(failOn))
	for _, k := range failOn {
		failing[k] = true
	}
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if failing[r.Method+" "+r.URL.EscapedPath()] {
			return nil, errConnReset
		}
		return http.DefaultTransport.RoundTrip(r)
	})

	s, err := NewStore(Config{
		Host:           u.Hostname(),
		Port:           port,
		RequestTimeout: 5 * time.Second,
		Transport:      transport,
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

// roundTripFunc lets tests fail the transport without a network.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newFailingStore(t *testing.T, err error) *Store {
	t.Helper()

	s, nerr := NewStore(Config{
		Host: "127.0.0.1",
		Port: 9200,
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, err
		}),
	})
	if nerr != nil {
		t.Fatalf("NewStore: %v", nerr)
	}
	return s
}
