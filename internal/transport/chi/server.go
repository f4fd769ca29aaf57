package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/foldex/internal/domain"
	"github.com/kailas-cloud/foldex/internal/domain/record"
	"github.com/kailas-cloud/foldex/internal/domain/record/kind"
	"github.com/kailas-cloud/foldex/internal/domain/search/request"
	"github.com/kailas-cloud/foldex/internal/domain/search/result"
	"github.com/kailas-cloud/foldex/internal/logger"
	healthuc "github.com/kailas-cloud/foldex/internal/usecase/health"
	indexuc "github.com/kailas-cloud/foldex/internal/usecase/index"
	searchuc "github.com/kailas-cloud/foldex/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/foldex/internal/usecase/suggest"
	"github.com/kailas-cloud/foldex/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Limits applies the configured request defaults.
type Limits struct {
	DefaultLimit    int
	MaxLimit        int
	SuggestionLimit int
	MaxBodyBytes    int64
}

// Server implements ServerInterface over the foldex usecases.
type Server struct {
	index         *indexuc.Service
	search        *searchuc.Service
	suggest       *suggestuc.Service
	health        *healthuc.Service
	gatherer      prometheus.Gatherer
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server. gatherer backs /metrics; nil uses the default registry.
func NewServer(
	index *indexuc.Service,
	search *searchuc.Service,
	suggest *suggestuc.Service,
	health *healthuc.Service,
	gatherer prometheus.Gatherer,
	limits Limits,
	logger *zap.Logger,
) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		index:    index,
		search:   search,
		suggest:  suggest,
		health:   health,
		gatherer: gatherer,
		limits:   limits,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		cycleHandler,
		sentinelHandler(domain.ErrDuplicateID, http.StatusUnprocessableEntity, ErrorResponseCodeDuplicateID),
		sentinelHandler(domain.ErrMaxDepthExceeded, http.StatusUnprocessableEntity, ErrorResponseCodeMaxDepth),
		sentinelHandler(domain.ErrInvalidRecord, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrEngineClosed, http.StatusServiceUnavailable, ErrorResponseCodeUnavailable),
	}
	return s
}

// IndexSnapshot handles PUT /index.
func (s *Server) IndexSnapshot(w http.ResponseWriter, r *http.Request) {
	var req IndexSnapshotRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	st, err := s.index.IndexSnapshot(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsToResponse(st))
}

// IndexFolders handles PUT /index/folders.
func (s *Server) IndexFolders(w http.ResponseWriter, r *http.Request) {
	var req IndexFoldersRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	st, err := s.index.IndexFolders(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsToResponse(st))
}

// IndexShared handles PUT /index/shared.
func (s *Server) IndexShared(w http.ResponseWriter, r *http.Request) {
	var req IndexSharedRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	st, err := s.index.IndexSharedFolders(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsToResponse(st))
}

// ResetIndex handles DELETE /index.
func (s *Server) ResetIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.index.Reset(r.Context()); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request, params SearchParams) {
	searchReq, err := s.searchRequestFromParams(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, err.Error())
		return
	}

	results, err := s.search.SearchScored(r.Context(), &searchReq)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToResponse(&results[i])
	}
	writeJSON(w, http.StatusOK, SearchResultListResponse{
		Items: items,
		Total: len(items),
		Limit: searchReq.Limit(),
	})
}

// Suggestions handles GET /suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request, params SuggestionsParams) {
	limit := s.limits.SuggestionLimit
	if params.Limit != nil {
		if *params.Limit < 0 {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, "limit must not be negative")
			return
		}
		limit = *params.Limit
	}

	items, err := s.suggest.Suggestions(r.Context(), params.Q, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SuggestionListResponse{Items: items})
}

// Stats handles GET /stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := s.index.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsToResponse(st))
}

// PopularQueries handles GET /popular.
func (s *Server) PopularQueries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, SuggestionListResponse{Items: s.suggest.PopularQueries()})
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
		Status:     string(report.Status),
		Checks:     checks,
		Generation: report.Generation,
		Records:    report.Records,
		Version:    version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}).ServeHTTP(w, r)
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := r.Body
	if s.limits.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.limits.MaxBodyBytes)
	}
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrorResponseCodeBadRequest,
				fmt.Sprintf("request body exceeds %d bytes", mbe.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) searchRequestFromParams(p SearchParams) (request.Request, error) {
	kinds := kind.Any()
	if p.Kind != nil {
		f, err := kind.ParseFilter(*p.Kind)
		if err != nil {
			return request.Request{}, err
		}
		kinds = f
	}

	limit := s.limits.DefaultLimit
	if p.Limit != nil {
		if *p.Limit < 0 {
			return request.Request{}, fmt.Errorf("limit must not be negative")
		}
		limit = *p.Limit
	}
	if s.limits.MaxLimit > 0 && limit > s.limits.MaxLimit {
		limit = s.limits.MaxLimit
	}

	scriptAware := true
	if p.ScriptAware != nil {
		scriptAware = *p.ScriptAware
	}

	category := ""
	if p.Category != nil {
		category = *p.Category
	}

	return request.New(p.Q, kinds, category, limit, scriptAware), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrCycleDetected,
		domain.ErrDuplicateID,
		domain.ErrMaxDepthExceeded,
		domain.ErrInvalidRecord,
		domain.ErrInvalidQuery,
		domain.ErrEngineClosed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// cycleHandler reports folder cycles with the offending id path.
func cycleHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrCycleDetected) {
		return false
	}
	resp := ErrorResponse{Code: ErrorResponseCodeCycleDetected, Message: msg}
	var ce *domain.CycleError
	if errors.As(err, &ce) {
		resp.Path = ce.Path
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func recordToResponse(r *record.Record) RecordResponse {
	return RecordResponse{
		ID:          r.ID(),
		Kind:        string(r.Kind()),
		DisplayName: r.DisplayName(),
		Body:        r.Body(),
		Description: r.Description(),
		Category:    r.Category(),
		ParentID:    r.ParentID(),
		Tags:        r.Tags(),
	}
}

func searchResultToResponse(s *result.Scored) SearchResultItem {
	rec := s.Record()
	return SearchResultItem{RecordResponse: recordToResponse(&rec), Score: s.Score()}
}

func statsToResponse(st record.Stats) StatsResponse {
	return StatsResponse{
		TotalItems:    st.TotalItems,
		Folders:       st.Folders,
		StorageItems:  st.StorageItems,
		SharedFolders: st.SharedFolders,
	}
}
