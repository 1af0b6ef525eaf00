package handler

import (
	"net/http"

	"github.com/pkordes/circlehub/internal/querystate"
)

// GetListing handles GET /.
// Supports ?tags=a,b; a club is listed when it carries any selected tag.
func (s *Server) GetListing(w http.ResponseWriter, r *http.Request) {
	state := querystate.FromValues(r.URL.Query())

	page, err := s.clubs.Listing(r.Context(), state)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, ListingResponse{
		SelectedTags: nonNil(page.State.Tags),
		Clubs:        clubsToSummaries(page.Clubs),
		Total:        page.Total,
		Chips:        chipsToResponse(page.Chips),
	})
}

// GetSearch handles GET /search.
// Supports ?q= (every whitespace-separated term must match) and ?tags=a,b.
func (s *Server) GetSearch(w http.ResponseWriter, r *http.Request) {
	state := querystate.FromValues(r.URL.Query())

	page, err := s.clubs.Search(r.Context(), state)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:               page.State.Text,
		SelectedTags:        nonNil(page.State.Tags),
		Heading:             page.Heading,
		Clubs:               clubsToSummaries(page.Clubs),
		Total:               page.Total,
		Chips:               chipsToResponse(page.Chips),
		SuggestionsDisabled: page.SuggestionsDisabled,
	})
}

// GetTags handles GET /tags.
func (s *Server) GetTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.clubs.Vocabulary(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, TagsResponse{Tags: nonNil(tags)})
}
