package search

import (
	"github.com/pkordes/circlehub/internal/domain"
)

// Lister is the part of the catalog an Index needs.
type Lister interface {
	ListAll() []domain.Club
}

// Index keeps the folded searchable text of each club so a query folds only
// itself. Build one per catalog; it is read-only afterwards.
type Index struct {
	clubs []domain.Club
	texts []string
}

// NewIndex folds the searchable text of every club in src.
func NewIndex(src Lister) *Index {
	clubs := src.ListAll()
	texts := make([]string, len(clubs))
	for i, c := range clubs {
		texts[i] = Fold(c.SearchableText())
	}
	return &Index{clubs: clubs, texts: texts}
}

// Search returns clubs matching every term of query, in catalog order.
// A blank query returns every club.
func (idx *Index) Search(query string) []domain.Club {
	return idx.Filter(domain.QueryState{Text: query})
}

// Filter returns clubs that satisfy both the text query and the tag filter
// of state, in catalog order.
func (idx *Index) Filter(state domain.QueryState) []domain.Club {
	out, _ := idx.collect(Terms(state.Text), state.Tags, -1)
	return out
}

// Head returns at most limit clubs matching query, plus the total number of
// matches. limit < 0 means no cap.
func (idx *Index) Head(query string, limit int) ([]domain.Club, int) {
	return idx.collect(Terms(query), nil, limit)
}

func (idx *Index) collect(terms, tags []string, limit int) ([]domain.Club, int) {
	out := []domain.Club{}
	total := 0
	for i, c := range idx.clubs {
		if !MatchesTags(c, tags) || !matchTerms(idx.texts[i], terms) {
			continue
		}
		total++
		if limit < 0 || len(out) < limit {
			out = append(out, c)
		}
	}
	return out, total
}
