package esrelay

import (
	"context"

	domdoc "github.com/kailas-cloud/esrelay/internal/domain/document"
	healthuc "github.com/kailas-cloud/esrelay/internal/usecase/health"
)

// --- relayUseCase mock ---

type mockRelayUC struct {
	createFn func(ctx context.Context, indexName string) (string, error)
	addFn    func(ctx context.Context, indexName string, req domdoc.Request) (string, error)
	getFn    func(ctx context.Context, indexName, id string) (string, error)
}

func (m *mockRelayUC) CreateIndex(ctx context.Context, indexName string) (string, error) {
	return m.createFn(ctx, indexName)
}

func (m *mockRelayUC) AddDocument(ctx context.Context, indexName string, req domdoc.Request) (string, error) {
	return m.addFn(ctx, indexName, req)
}

func (m *mockRelayUC) GetDocumentByID(ctx context.Context, indexName, id string) (string, error) {
	return m.getFn(ctx, indexName, id)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- pinger mock ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- helpers ---

func testClient(relay relayUseCase, obs *observer) *Client {
	return &Client{
		backend:   &mockPinger{},
		relaySvc:  relay,
		healthSvc: &mockHealthUC{},
		validator: domdoc.NewValidator(),
		obs:       obs,
	}
}
