// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	service "github.com/okian/sofirank/internal/app"
	"github.com/okian/sofirank/internal/domain/types"
	"github.com/okian/sofirank/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Players(ctx context.Context, prefix string) ([]Entry, error)
	User(ctx context.Context, rawID string) ([]Entry, error)
	Tags(ctx context.Context, tags ...string) ([]Entry, error)
	Top(ctx context.Context, rawN, position string) ([]Entry, error)
	Stats(ctx context.Context) (types.Stats, error)
}

// Entry mirrors the read shape returned by queries.
type Entry = types.Entry

// Server wires HTTP routes for the query API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	playersHandler *PlayersHandler
	usersHandler   *UsersHandler
	tagsHandler    *TagsHandler
	topHandler     *TopHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(deps),
		statsHandler:   NewStatsHandler(deps),
		playersHandler: NewPlayersHandler(deps),
		usersHandler:   NewUsersHandler(deps),
		tagsHandler:    NewTagsHandler(deps),
		topHandler:     NewTopHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandleGetPlayers, "players"))
	mux.HandleFunc("/users/", MetricsMiddleware(s.usersHandler.HandleGetUser, "users"))
	mux.HandleFunc("/tags", MetricsMiddleware(s.tagsHandler.HandleGetTags, "tags"))
	mux.HandleFunc("/top/", MetricsMiddleware(s.topHandler.HandleGetTop, "top"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeQueryError maps query failures to status codes.
func writeQueryError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidTopNumber):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNoMatch),
		errors.Is(err, service.ErrNoPlayersInPosition):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
