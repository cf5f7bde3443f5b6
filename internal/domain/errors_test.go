package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestTransportError_Is(t *testing.T) {
	err := NewTransportError("get", context.DeadlineExceeded)
	wrapped := fmt.Errorf("get document: %w", err)

	if !errors.Is(wrapped, ErrTransport) {
		t.Error("expected ErrTransport")
	}
	if !errors.Is(wrapped, context.DeadlineExceeded) {
		t.Error("expected cause to be reachable")
	}
	if errors.Is(wrapped, ErrBackend) {
		t.Error("transport error must not match ErrBackend")
	}

	var te *TransportError
	if !errors.As(wrapped, &te) || te.Op != "get" {
		t.Errorf("errors.As: got %+v", te)
	}
}

func TestBackendError_Is(t *testing.T) {
	exists := &BackendError{Op: "create_index", Status: 400, Type: "resource_already_exists_exception", Reason: "exists"}
	if !errors.Is(exists, ErrBackend) {
		t.Error("expected ErrBackend")
	}
	if !errors.Is(exists, ErrIndexAlreadyExists) {
		t.Error("expected ErrIndexAlreadyExists")
	}
	if errors.Is(exists, ErrTransport) {
		t.Error("backend error must not match ErrTransport")
	}

	other := &BackendError{Op: "index", Status: 400, Type: "mapper_parsing_exception"}
	if errors.Is(other, ErrIndexAlreadyExists) {
		t.Error("unexpected ErrIndexAlreadyExists")
	}
}

func TestBackendError_Message(t *testing.T) {
	tests := []struct {
		err  *BackendError
		want string
	}{
		{&BackendError{Op: "get", Status: 500}, "get: search backend error: status 500"},
		{
			&BackendError{Op: "create_index", Status: 400, Type: "invalid_index_name_exception", Reason: "must be lowercase"},
			"create_index: search backend error: status 400: invalid_index_name_exception: must be lowercase",
		},
	}
	for _, tc := range tests {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, want %q", got, tc.want)
		}
	}
}
