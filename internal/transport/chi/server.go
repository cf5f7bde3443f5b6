package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/esrelay/internal/domain"
	domdoc "github.com/kailas-cloud/esrelay/internal/domain/document"
	logpkg "github.com/kailas-cloud/esrelay/internal/logger"
	healthuc "github.com/kailas-cloud/esrelay/internal/usecase/health"
	relayuc "github.com/kailas-cloud/esrelay/internal/usecase/relay"
)

// maxBodyBytes caps the add-document payload.
const maxBodyBytes = 1 << 20

// ErrorCode identifies the kind of failure in an ErrorResponse.
type ErrorCode string

// Error codes returned in JSON error bodies.
const (
	ErrorCodeBadRequest         ErrorCode = "bad_request"
	ErrorCodeValidationFailed   ErrorCode = "validation_failed"
	ErrorCodeNotFound           ErrorCode = "not_found"
	ErrorCodeMethodNotAllowed   ErrorCode = "method_not_allowed"
	ErrorCodeIndexAlreadyExists ErrorCode = "index_already_exists"
	ErrorCodeBackendError       ErrorCode = "backend_error"
	ErrorCodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the JSON body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements ServerInterface on top of the relay and health use cases.
type Server struct {
	relay         *relayuc.Service
	health        *healthuc.Service
	validator     *domdoc.Validator
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(relay *relayuc.Service, health *healthuc.Service, validator *domdoc.Validator) *Server {
	if validator == nil {
		validator = domdoc.NewValidator()
	}
	s := &Server{
		relay:     relay,
		health:    health,
		validator: validator,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrIndexAlreadyExists, http.StatusConflict, ErrorCodeIndexAlreadyExists),
		sentinelHandler(domain.ErrBackend, http.StatusBadGateway, ErrorCodeBackendError),
	}
	return s
}

// CreateIndex handles POST /elasticsearch/create-index/{indexName}.
func (s *Server) CreateIndex(w http.ResponseWriter, r *http.Request, indexName string) {
	r = r.WithContext(logpkg.WithFields(r.Context(), zap.String("index", indexName)))
	msg, err := s.relay.CreateIndex(r.Context(), indexName)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, msg)
}

// AddDocument handles POST /elasticsearch/add-document/{indexName}.
func (s *Server) AddDocument(w http.ResponseWriter, r *http.Request, indexName string) {
	r = r.WithContext(logpkg.WithFields(r.Context(), zap.String("index", indexName)))
	var req domdoc.Request
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Validate(&req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	msg, err := s.relay.AddDocument(r.Context(), indexName, req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, msg)
}

// GetDocument handles GET /elasticsearch/get-document/{indexName}/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request, indexName, id string) {
	r = r.WithContext(logpkg.WithFields(r.Context(), zap.String("index", indexName), zap.String("id", id)))
	msg, err := s.relay.GetDocumentByID(r.Context(), indexName, id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, msg)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ParamErrorHandler renders path binding failures. An unbindable or empty
// segment addresses no resource, so it is a 404.
func ParamErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	var pe *ParamError
	if errors.As(err, &pe) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "missing or invalid "+pe.ParamName)
		return
	}
	writeError(w, http.StatusNotFound, ErrorCodeNotFound, "not found")
}

// NotFound renders unmatched routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, ErrorCodeNotFound, "not found")
}

// MethodNotAllowed renders routes matched with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, ErrorCodeMethodNotAllowed, "method not allowed")
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrIndexAlreadyExists,
		domain.ErrBackend,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler renders per-field validation messages.
func validationHandler(w http.ResponseWriter, err error, _ string) bool {
	var ve *domdoc.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, ve.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContext(r.Context())
	logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
