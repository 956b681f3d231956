// Package api exposes the extraction services over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/footdata/transfermarkt-api/internal/config"
	"github.com/footdata/transfermarkt-api/internal/metrics"
	"github.com/footdata/transfermarkt-api/internal/monitor"
	"github.com/footdata/transfermarkt-api/internal/scraper"
	"github.com/footdata/transfermarkt-api/internal/tm"
)

// scrapeService is the extraction surface the handlers call. Tests
// substitute a stub.
type scrapeService interface {
	SearchPlayers(ctx context.Context, query string, page int) (*tm.PlayerSearchResponse, error)
	SearchClubs(ctx context.Context, query string, page int) (*tm.ClubSearchResponse, error)
	SearchCompetitions(ctx context.Context, query string, page int) (*tm.CompetitionSearchResponse, error)
	ClubProfile(ctx context.Context, clubID string) (*tm.ClubProfile, error)
	ClubPlayers(ctx context.Context, clubID, seasonID string) (*tm.ClubPlayersResponse, error)
	ClubCompetitions(ctx context.Context, clubID, seasonID string) (*tm.ClubCompetitionsResponse, error)
	CompetitionClubs(ctx context.Context, competitionID, seasonID string) (*tm.CompetitionClubsResponse, error)
	CompetitionSeasons(ctx context.Context, competitionID string) (*tm.CompetitionSeasonsResponse, error)
}

// statsProvider exposes pool and retry snapshots for the monitoring
// endpoints.
type statsProvider interface {
	SessionStats() scraper.SessionStats
	RetryStats() scraper.RetryStats
}

// Server is the HTTP front of the service.
type Server struct {
	router  chi.Router
	service scrapeService
	stats   statsProvider
	mon     *monitor.Monitor
	logger  *zap.Logger
}

// NewServer wires routes and middleware.
func NewServer(cfg *config.Config, service scrapeService, stats statsProvider, mon *monitor.Monitor, logger *zap.Logger) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		stats:   stats,
		mon:     mon,
		logger:  logger,
	}

	s.router.Use(requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoverMiddleware)
	s.router.Use(metrics.Middleware)
	s.router.Use(timeoutMiddleware(time.Duration(cfg.Server.TimeoutSeconds) * time.Second))

	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", metrics.Handler())

	s.router.Route("/players", func(r chi.Router) {
		r.Get("/search/{query}", s.handlePlayerSearch)
	})
	s.router.Route("/clubs", func(r chi.Router) {
		r.Get("/search/{query}", s.handleClubSearch)
		r.Get("/{id}/profile", s.handleClubProfile)
		r.Get("/{id}/players", s.handleClubPlayers)
		r.Get("/{id}/competitions", s.handleClubCompetitions)
	})
	s.router.Route("/competitions", func(r chi.Router) {
		r.Get("/search/{query}", s.handleCompetitionSearch)
		r.Get("/{id}/clubs", s.handleCompetitionClubs)
		r.Get("/{id}/seasons", s.handleCompetitionSeasons)
	})
	s.router.Route("/monitoring", func(r chi.Router) {
		r.Get("/scraping", s.handleScrapingStats)
		r.Get("/sessions", s.handleSessionStats)
		r.Get("/retry", s.handleRetryStats)
		r.Post("/reset", s.handleMonitorReset)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlayerSearch(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.SearchPlayers(r.Context(), chi.URLParam(r, "query"), pageParam(r))
	s.respond(w, resp, err)
}

func (s *Server) handleClubSearch(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.SearchClubs(r.Context(), chi.URLParam(r, "query"), pageParam(r))
	s.respond(w, resp, err)
}

func (s *Server) handleCompetitionSearch(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.SearchCompetitions(r.Context(), chi.URLParam(r, "query"), pageParam(r))
	s.respond(w, resp, err)
}

func (s *Server) handleClubProfile(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.ClubProfile(r.Context(), chi.URLParam(r, "id"))
	s.respond(w, resp, err)
}

func (s *Server) handleClubPlayers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.ClubPlayers(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("season_id"))
	s.respond(w, resp, err)
}

func (s *Server) handleClubCompetitions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.ClubCompetitions(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("season_id"))
	s.respond(w, resp, err)
}

func (s *Server) handleCompetitionClubs(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.CompetitionClubs(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("season_id"))
	s.respond(w, resp, err)
}

func (s *Server) handleCompetitionSeasons(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.CompetitionSeasons(r.Context(), chi.URLParam(r, "id"))
	s.respond(w, resp, err)
}

func (s *Server) handleScrapingStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.mon.Snapshot())
}

func (s *Server) handleSessionStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.SessionStats())
}

func (s *Server) handleRetryStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.RetryStats())
}

func (s *Server) handleMonitorReset(w http.ResponseWriter, _ *http.Request) {
	s.mon.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// respond writes the payload or maps a service error to its status.
func (s *Server) respond(w http.ResponseWriter, payload any, err error) {
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	URL   string `json:"url,omitempty"`
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := errorBody{Error: "internal server error"}

	var se *scraper.Error
	if errors.As(err, &se) {
		status = statusForKind(se.Kind)
		body = errorBody{Error: se.Error(), Kind: string(se.Kind), URL: se.URL}
	} else if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
		body = errorBody{Error: "upstream request timed out"}
	}

	if status >= 500 {
		s.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	} else {
		s.logger.Warn("request rejected", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, body)
}

func statusForKind(kind scraper.Kind) int {
	switch kind {
	case scraper.KindNotFound:
		return http.StatusNotFound
	case scraper.KindTimeout:
		return http.StatusGatewayTimeout
	case scraper.KindConnection:
		return http.StatusBadGateway
	case scraper.KindTooManyRedirects:
		return http.StatusBadGateway
	case scraper.KindBlocked:
		return http.StatusForbidden
	case scraper.KindDataIntegrity:
		return http.StatusBadGateway
	case scraper.KindParse:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func pageParam(r *http.Request) int {
	raw := r.URL.Query().Get("page_number")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, reqID)))
	})
}

type requestIDKey struct{}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", zap.Any("error", rec))
				writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, `{"error":"request timed out"}`)
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
