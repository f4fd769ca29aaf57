package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/foldex/internal/domain/content"
)

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes returned by the API.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized     ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeCycleDetected    ErrorResponseCode = "cycle_detected"
	ErrorResponseCodeDuplicateID      ErrorResponseCode = "duplicate_id"
	ErrorResponseCodeMaxDepth         ErrorResponseCode = "max_depth_exceeded"
	ErrorResponseCodeUnavailable      ErrorResponseCode = "unavailable"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
	Path    []string          `json:"path,omitempty"`
}

// RecordResponse is one searchable record.
type RecordResponse struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	DisplayName string   `json:"display_name"`
	Body        string   `json:"body,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	ParentID    string   `json:"parent_id,omitempty"`
	Tags        []string `json:"tags"`
}

// SearchResultItem is a ranked record.
type SearchResultItem struct {
	RecordResponse
	Score float64 `json:"score"`
}

// SearchResultListResponse is the body of GET /search.
type SearchResultListResponse struct {
	Items []SearchResultItem `json:"items"`
	Total int                `json:"total"`
	Limit int                `json:"limit"`
}

// SuggestionListResponse is the body of GET /suggestions and GET /popular.
type SuggestionListResponse struct {
	Items []string `json:"items"`
}

// StatsResponse is the body of GET /stats and of the index endpoints.
type StatsResponse struct {
	TotalItems    int `json:"total_items"`
	Folders       int `json:"folders"`
	StorageItems  int `json:"storage_items"`
	SharedFolders int `json:"shared_folders"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string            `json:"status"`
	Checks     map[string]string `json:"checks"`
	Generation uint64            `json:"generation"`
	Records    int               `json:"records"`
	Version    string            `json:"version"`
}

// IndexFoldersRequest is the body of PUT /index/folders.
type IndexFoldersRequest = []content.Folder

// IndexSharedRequest is the body of PUT /index/shared.
type IndexSharedRequest = []content.SharedEntry

// IndexSnapshotRequest is the body of PUT /index.
type IndexSnapshotRequest = content.Snapshot

// SearchParams are the query parameters of GET /search.
type SearchParams struct {
	Q           string  `form:"q" json:"q"`
	Kind        *string `form:"kind,omitempty" json:"kind,omitempty"`
	Category    *string `form:"category,omitempty" json:"category,omitempty"`
	Limit       *int    `form:"limit,omitempty" json:"limit,omitempty"`
	ScriptAware *bool   `form:"script_aware,omitempty" json:"script_aware,omitempty"`
}

// SuggestionsParams are the query parameters of GET /suggestions.
type SuggestionsParams struct {
	Q     string `form:"q" json:"q"`
	Limit *int   `form:"limit,omitempty" json:"limit,omitempty"`
}

// ServerInterface is the set of API handlers.
type ServerInterface interface {
	// PUT /index
	IndexSnapshot(w http.ResponseWriter, r *http.Request)
	// PUT /index/folders
	IndexFolders(w http.ResponseWriter, r *http.Request)
	// PUT /index/shared
	IndexShared(w http.ResponseWriter, r *http.Request)
	// DELETE /index
	ResetIndex(w http.ResponseWriter, r *http.Request)
	// GET /search
	Search(w http.ResponseWriter, r *http.Request, params SearchParams)
	// GET /suggestions
	Suggestions(w http.ResponseWriter, r *http.Request, params SuggestionsParams)
	// GET /stats
	Stats(w http.ResponseWriter, r *http.Request)
	// GET /popular
	PopularQueries(w http.ResponseWriter, r *http.Request)
	// GET /health
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// GET /metrics
	Metrics(w http.ResponseWriter, r *http.Request)
}

// InvalidParamFormatError reports a query parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// serverInterfaceWrapper binds query parameters before calling the handler.
type serverInterfaceWrapper struct {
	handler          ServerInterface
	errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) Search(w http.ResponseWriter, r *http.Request) {
	var params SearchParams
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "q", q, &params.Q); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "kind", q, &params.Kind); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "kind", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "category", q, &params.Category); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "category", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &params.Limit); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "script_aware", q, &params.ScriptAware); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "script_aware", Err: err})
		return
	}

	siw.handler.Search(w, r, params)
}

func (siw *serverInterfaceWrapper) Suggestions(w http.ResponseWriter, r *http.Request) {
	var params SuggestionsParams
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "q", q, &params.Q); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &params.Limit); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	siw.handler.Suggestions(w, r, params)
}

// HandlerWithOptions mounts si on the base router (a new one if nil).
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	errorHandler := options.ErrorHandlerFunc
	if errorHandler == nil {
		errorHandler = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := &serverInterfaceWrapper{handler: si, errorHandlerFunc: errorHandler}

	r.Put("/index", si.IndexSnapshot)
	r.Delete("/index", si.ResetIndex)
	r.Put("/index/folders", si.IndexFolders)
	r.Put("/index/shared", si.IndexShared)
	r.Get("/search", wrapper.Search)
	r.Get("/suggestions", wrapper.Suggestions)
	r.Get("/stats", si.Stats)
	r.Get("/popular", si.PopularQueries)
	r.Get("/health", si.HealthCheck)
	r.Get("/metrics", si.Metrics)

	return r
}
