package db

// Op constants name backend API calls for error context and metric labels.
const (
	OpPing        = "ping"
	OpCreateIndex = "indices.create"
	OpIndex       = "index"
	OpRefresh     = "indices.refresh"
	OpGet         = "get"
)

// Metric status labels for backend calls.
const (
	StatusOK             = "ok"
	StatusTransportError = "transport_error"
	StatusBackendError   = "backend_error"
)
