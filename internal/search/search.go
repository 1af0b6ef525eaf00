// Package search decides which clubs match a free-text query and a tag
// selection.
//
// Free text: the query is folded and split on whitespace; a club matches when
// every term is a substring of its folded searchable text. There is no
// scoring, stemming or fuzzy matching; results keep catalog order.
//
// Tags: an empty selection matches everything, otherwise a club matches when
// it carries at least one selected tag. Text and tags combine with AND.
package search

import (
	"strings"

	"github.com/pkordes/circlehub/internal/domain"
)

// Terms folds query and splits it on whitespace.
// A blank query yields no terms, which matches every club.
func Terms(query string) []string {
	return strings.Fields(Fold(query))
}

// Matches reports whether every term of query occurs in the club's
// searchable text, ignoring case and character width.
func Matches(club domain.Club, query string) bool {
	return matchTerms(Fold(club.SearchableText()), Terms(query))
}

// MatchesTags reports whether the club passes the tag filter.
// An empty selection is an inactive filter.
func MatchesTags(club domain.Club, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, t := range selected {
		if club.HasTag(t) {
			return true
		}
	}
	return false
}

func matchTerms(text string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}
