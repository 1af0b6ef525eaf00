package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// GetClub handles GET /club/{key}.
// Supports ?limit= to change how many related clubs are returned.
func (s *Server) GetClub(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	// chi matches on RawPath when it is set, leaving the param escaped.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(key); err == nil {
			key = unescaped
		}
	}

	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		badRequest(w, "limit must be an integer")
		return
	}
	n := 0
	if limit != nil {
		if *limit < 0 {
			badRequest(w, "limit must not be negative")
			return
		}
		n = *limit
	}

	page, err := s.clubs.Detail(r.Context(), key, n)
	if err != nil {
		s.writeError(w, r, err, "club not found")
		return
	}

	writeJSON(w, http.StatusOK, detailToResponse(page))
}
