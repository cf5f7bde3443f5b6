package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// Route patterns served by the relay.
const (
	RouteCreateIndex = "/elasticsearch/create-index/{indexName}"
	RouteAddDocument = "/elasticsearch/add-document/{indexName}"
	RouteGetDocument = "/elasticsearch/get-document/{indexName}/{id}"
	RouteHealth      = "/health"
	RouteMetrics     = "/metrics"
)

// ServerInterface is the set of handlers mounted by Handler.
// Path parameters arrive already bound and non-empty.
type ServerInterface interface {
	// CreateIndex handles POST /elasticsearch/create-index/{indexName}.
	CreateIndex(w http.ResponseWriter, r *http.Request, indexName string)
	// AddDocument handles POST /elasticsearch/add-document/{indexName}.
	AddDocument(w http.ResponseWriter, r *http.Request, indexName string)
	// GetDocument handles GET /elasticsearch/get-document/{indexName}/{id}.
	GetDocument(w http.ResponseWriter, r *http.Request, indexName, id string)
	// HealthCheck handles GET /health.
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// Metrics handles GET /metrics.
	Metrics(w http.ResponseWriter, r *http.Request)
}

// ParamError reports a path parameter that could not be bound.
type ParamError struct {
	ParamName string
	Err       error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid path parameter %s: %v", e.ParamName, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }

// Options configures Handler.
type Options struct {
	// BaseRouter receives the routes. A new router is created when nil.
	BaseRouter chi.Router
	// ErrorHandlerFunc renders parameter binding failures.
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler mounts si on a chi router.
func Handler(si ServerInterface, opts Options) http.Handler {
	r := opts.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if opts.ErrorHandlerFunc == nil {
		opts.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusNotFound)
		}
	}

	wrapper := &serverWrapper{handler: si, errorHandler: opts.ErrorHandlerFunc}

	r.Post(RouteCreateIndex, wrapper.CreateIndex)
	r.Post(RouteAddDocument, wrapper.AddDocument)
	r.Get(RouteGetDocument, wrapper.GetDocument)
	r.Get(RouteHealth, si.HealthCheck)
	r.Get(RouteMetrics, si.Metrics)

	return r
}

type serverWrapper struct {
	handler      ServerInterface
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

func (sw *serverWrapper) CreateIndex(w http.ResponseWriter, r *http.Request) {
	indexName, err := bindPathParam(r, "indexName")
	if err != nil {
		sw.errorHandler(w, r, err)
		return
	}
	sw.handler.CreateIndex(w, r, indexName)
}

func (sw *serverWrapper) AddDocument(w http.ResponseWriter, r *http.Request) {
	indexName, err := bindPathParam(r, "indexName")
	if err != nil {
		sw.errorHandler(w, r, err)
		return
	}
	sw.handler.AddDocument(w, r, indexName)
}

func (sw *serverWrapper) GetDocument(w http.ResponseWriter, r *http.Request) {
	indexName, err := bindPathParam(r, "indexName")
	if err != nil {
		sw.errorHandler(w, r, err)
		return
	}
	id, err := bindPathParam(r, "id")
	if err != nil {
		sw.errorHandler(w, r, err)
		return
	}
	sw.handler.GetDocument(w, r, indexName, id)
}

func bindPathParam(r *http.Request, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &value,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return "", &ParamError{ParamName: name, Err: err}
	}
	if value == "" {
		return "", &ParamError{ParamName: name, Err: fmt.Errorf("parameter %s is empty", name)}
	}
	return value, nil
}
