package suggest

import (
	"strings"

	"github.com/pkordes/circlehub/internal/domain"
	"github.com/pkordes/circlehub/internal/querystate"
)

// DefaultLimit is how many suggestions the panel shows.
const DefaultLimit = 5

// Searcher is the part of search.Index the panel needs.
type Searcher interface {
	Head(query string, limit int) ([]domain.Club, int)
}

// Panel is what the instant-results dropdown renders.
type Panel struct {
	Query       string
	Results     []domain.Club
	Total       int
	ViewAllHref string
}

// Compute runs the query against idx and caps the results at limit
// (DefaultLimit when limit <= 0). tags only flows into ViewAllHref so that
// "view all results" keeps the current tag selection.
func Compute(idx Searcher, text string, tags []string, limit int) Panel {
	if limit <= 0 {
		limit = DefaultLimit
	}
	text = strings.TrimSpace(text)
	p := Panel{
		Query:       text,
		Results:     []domain.Club{},
		ViewAllHref: querystate.SubmitHref(domain.QueryState{Text: text, Tags: tags}),
	}
	if text == "" {
		return p
	}
	p.Results, p.Total = idx.Head(text, limit)
	return p
}
