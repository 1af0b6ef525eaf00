package querystate

import "github.com/pkordes/circlehub/internal/domain"

// Chip is one clickable tag in a filter bar.
// Href is the target that toggles this tag on the current page.
type Chip struct {
	Tag      string
	Selected bool
	Href     string
}

// Chips builds one chip per vocabulary tag for the current state.
func Chips(state domain.QueryState, vocabulary []string, kind PageKind) []Chip {
	chips := make([]Chip, len(vocabulary))
	for i, tag := range vocabulary {
		chips[i] = Chip{
			Tag:      tag,
			Selected: state.HasTag(tag),
			Href:     Encode(Toggle(state, tag), kind),
		}
	}
	return chips
}
