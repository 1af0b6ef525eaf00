// Package handler implements the HTTP API of the club directory.
// All handlers are methods on Server. They are split into files by page
// (health.go, listing.go, club.go, suggest.go) and share the same Server so
// they can reach its dependencies.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/circlehub/internal/domain"
	"github.com/pkordes/circlehub/internal/service"
)

// ClubServicer defines the page operations the handlers depend on.
// It is declared here, in the consumer, so handler tests can inject a mock
// without loading any club data.
type ClubServicer interface {
	Listing(ctx context.Context, state domain.QueryState) (service.ListingPage, error)
	Search(ctx context.Context, state domain.QueryState) (service.SearchPage, error)
	Detail(ctx context.Context, key string, limit int) (service.DetailPage, error)
	Suggest(ctx context.Context, text string, tags []string) (service.SuggestResult, error)
	Vocabulary(ctx context.Context) ([]string, error)
}

// Server holds the dependencies of every handler.
type Server struct {
	clubs  ClubServicer
	logger *slog.Logger
}

// NewServer constructs the Server. A nil logger discards output.
func NewServer(clubs ClubServicer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{clubs: clubs, logger: logger}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil)
}

// Handler returns the router for all endpoints. Cross-cutting middleware
// (request id, logging, CORS, recovery) is applied by the caller.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody(codeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody(codeMethodNotAllowed, "method not allowed"))
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/", s.GetListing)
	r.Get("/search", s.GetSearch)
	r.Get("/club/{key}", s.GetClub)
	r.Get("/suggest", s.GetSuggest)
	r.Get("/tags", s.GetTags)
	return r
}
