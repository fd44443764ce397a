package api

import (
	"context"
	"net/http"
	"strings"
)

// PlayersHandler handles name prefix queries.
type PlayersHandler struct {
	deps interface {
		Players(ctx context.Context, prefix string) ([]Entry, error)
	}
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleGetPlayers handles GET /players?prefix=X requests.
func (h *PlayersHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_players"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	if !q.Has("prefix") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.Players(r.Context(), q.Get("prefix"))
	if err != nil {
		writeQueryError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

// UsersHandler handles personalized rankings.
type UsersHandler struct {
	deps interface {
		User(ctx context.Context, rawID string) ([]Entry, error)
	}
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps Dependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// HandleGetUser handles GET /users/{id} requests.
func (h *UsersHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_user"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := pathParam(r, "/users/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.User(r.Context(), id)
	if err != nil {
		writeQueryError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

// TagsHandler handles tag intersections.
type TagsHandler struct {
	deps interface {
		Tags(ctx context.Context, tags ...string) ([]Entry, error)
	}
}

// NewTagsHandler creates a new tags handler.
func NewTagsHandler(deps Dependencies) *TagsHandler {
	return &TagsHandler{deps: deps}
}

// HandleGetTags handles GET /tags?tag=a&tag=b requests.
func (h *TagsHandler) HandleGetTags(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_tags"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	tags := r.URL.Query()["tag"]
	if len(tags) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.Tags(r.Context(), tags...)
	if err != nil {
		writeQueryError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

// TopHandler handles top-N position queries.
type TopHandler struct {
	deps interface {
		Top(ctx context.Context, rawN, position string) ([]Entry, error)
	}
}

// NewTopHandler creates a new top handler.
func NewTopHandler(deps Dependencies) *TopHandler {
	return &TopHandler{deps: deps}
}

// HandleGetTop handles GET /top/{n}?position=P requests.
func (h *TopHandler) HandleGetTop(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_top"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n, ok := pathParam(r, "/top/")
	position := r.URL.Query().Get("position")
	if !ok || position == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.Top(r.Context(), n, position)
	if err != nil {
		writeQueryError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

// pathParam returns the single path segment after prefix.
func pathParam(r *http.Request, prefix string) (string, bool) {
	v := strings.TrimPrefix(r.URL.Path, prefix)
	if v == "" || strings.Contains(v, "/") {
		return "", false
	}
	return v, true
}

// nonNil makes empty results encode as [] rather than null.
func nonNil(entries []Entry) []Entry {
	if entries == nil {
		return []Entry{}
	}
	return entries
}
