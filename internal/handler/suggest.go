package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/circlehub/internal/querystate"
)

// GetSuggest handles GET /suggest.
// Returns the instant-results panel for ?q=. ?tags= is carried into the
// view-all link, and ?seq= is echoed back unchanged.
func (s *Server) GetSuggest(w http.ResponseWriter, r *http.Request) {
	var seq *int64
	if err := runtime.BindQueryParameter("form", true, false, "seq", r.URL.Query(), &seq); err != nil {
		badRequest(w, "seq must be an integer")
		return
	}

	state := querystate.FromValues(r.URL.Query())
	res, err := s.clubs.Suggest(r.Context(), state.Text, state.Tags)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, SuggestResponse{
		Seq:         seq,
		Query:       res.Panel.Query,
		Phase:       res.State.Phase.String(),
		Open:        res.State.Visible(),
		Results:     clubsToSummaries(res.Panel.Results),
		Total:       res.Panel.Total,
		ViewAllHref: res.Panel.ViewAllHref,
	})
}
