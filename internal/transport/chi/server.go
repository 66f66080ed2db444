package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/brandpulse/creatorsearch/internal/domain"
	"github.com/brandpulse/creatorsearch/internal/domain/creator"
	healthuc "github.com/brandpulse/creatorsearch/internal/usecase/health"
	indexeruc "github.com/brandpulse/creatorsearch/internal/usecase/indexer"
	"github.com/brandpulse/creatorsearch/internal/usecase/orchestrator"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the search pipeline over HTTP.
type Server struct {
	search        *orchestrator.Service
	indexer       *indexeruc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *orchestrator.Service,
	indexer *indexeruc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		indexer: indexer,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrCreatorNotFound, http.StatusNotFound, codeCreatorNotFound),
		sentinelHandler(domain.ErrCreatorNotIndexed, http.StatusNotFound, codeCreatorNotIndexed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrAnalysisProviderError, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, codeBackendDown),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeBackendDown),
	}
	return s
}

// Routes mounts all API endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.GetHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.Search)
		r.Get("/search/suggestions", s.SearchSuggestions)
		r.Post("/recommendations", s.Recommendations)
		r.Route("/creators/{creatorID}", func(r chi.Router) {
			r.Post("/similar", s.FindSimilar)
			r.Put("/index", s.IndexCreator)
			r.Delete("/index", s.DeindexCreator)
		})
	})
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSearchPayload(w, r)
	if !ok {
		return
	}

	resp := s.search.Search(r.Context(), req)
	writeJSON(w, http.StatusOK, searchResponseFromDomain(resp))
}

// SearchSuggestions handles GET /api/v1/search/suggestions.
func (s *Server) SearchSuggestions(w http.ResponseWriter, r *http.Request) {
	partial := r.URL.Query().Get("q")
	max := 0
	if raw := r.URL.Query().Get("max"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "max must be a non-negative integer")
			return
		}
		max = v
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{
		Suggestions: s.search.Suggest(partial, max),
	})
}

// Recommendations handles POST /api/v1/recommendations.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSearchPayload(w, r)
	if !ok {
		return
	}

	resp, scored := s.search.Recommend(r.Context(), req)
	writeJSON(w, http.StatusOK, recommendationsFromDomain(resp, scored))
}

// FindSimilar handles POST /api/v1/creators/{creatorID}/similar.
func (s *Server) FindSimilar(w http.ResponseWriter, r *http.Request) {
	creatorID := chi.URLParam(r, "creatorID")
	if creatorID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "creator id is required")
		return
	}

	var payload similarPayload
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	resp := s.search.Similar(r.Context(), creatorID, payload.MaxResults, payload.IncludeOriginal)
	writeJSON(w, http.StatusOK, searchResponseFromDomain(resp))
}

// IndexCreator handles PUT /api/v1/creators/{creatorID}/index.
func (s *Server) IndexCreator(w http.ResponseWriter, r *http.Request) {
	creatorID := chi.URLParam(r, "creatorID")

	var payload creatorPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if payload.ID == "" {
		payload.ID = creatorID
	}
	if payload.ID != creatorID {
		writeError(w, http.StatusBadRequest, codeBadRequest, "body id does not match path id")
		return
	}
	if payload.Name == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "creator name is required")
		return
	}

	c := creator.Reconstruct(
		payload.ID, payload.Name, payload.Niche, payload.Tier,
		payload.Platform, payload.Country, payload.Bio,
		payload.Followers, payload.EngagementRate, payload.Price,
		payload.Satisfaction, payload.Collaborations,
	)
	if err := s.indexer.Upsert(r.Context(), &c); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeindexCreator handles DELETE /api/v1/creators/{creatorID}/index.
func (s *Server) DeindexCreator(w http.ResponseWriter, r *http.Request) {
	creatorID := chi.URLParam(r, "creatorID")
	if err := s.indexer.Delete(r.Context(), creatorID); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

func decodeSearchPayload(w http.ResponseWriter, r *http.Request) (orchestrator.SearchRequest, bool) {
	var payload searchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return orchestrator.SearchRequest{}, false
	}

	// Hybrid search is on unless the caller disables it.
	useHybrid := true
	if payload.UseHybridSearch != nil {
		useHybrid = *payload.UseHybridSearch
	}

	return orchestrator.SearchRequest{
		Text:       payload.Query,
		Filters:    filtersFromPayload(payload.Filters),
		MaxResults: payload.MaxResults,
		UseHybrid:  useHybrid,
	}, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns the sentinel text for known errors and a
// generic message otherwise, so backend details never leak to clients.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrCreatorNotFound,
		domain.ErrCreatorNotIndexed,
		domain.ErrEmbeddingProviderError,
		domain.ErrAnalysisProviderError,
		domain.ErrIndexUnavailable,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
