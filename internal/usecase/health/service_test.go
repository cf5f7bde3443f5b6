package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockBackendPinger struct {
	err    error
	called bool
}

func (m *mockBackendPinger) Ping(_ context.Context) error {
	m.called = true
	return m.err
}

// --- Tests ---

func TestCheck_Healthy(t *testing.T) {
	pinger := &mockBackendPinger{}
	r := New(pinger).Check(context.Background())

	if !pinger.called {
		t.Error("expected backend to be pinged")
	}
	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks[CheckElasticsearch] != CheckOK {
		t.Errorf("expected elasticsearch %q, got %q", CheckOK, r.Checks[CheckElasticsearch])
	}
}

func TestCheck_BackendDown(t *testing.T) {
	r := New(&mockBackendPinger{err: errors.New("conn refused")}).Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks[CheckElasticsearch] != CheckError {
		t.Errorf("expected elasticsearch %q, got %q", CheckError, r.Checks[CheckElasticsearch])
	}
	if len(r.Checks) != 1 {
		t.Errorf("expected a single check, got %v", r.Checks)
	}
}
