// Package querystate maps a domain.QueryState to and from URL query strings.
//
// It is the single place that builds navigation targets for the listing page,
// the search page and the search bar, so tag chips on every surface toggle
// the same way.
package querystate

import (
	"net/url"
	"strings"

	"github.com/pkordes/circlehub/internal/domain"
)

// Query parameter names shared by every surface.
const (
	ParamText = "q"
	ParamTags = "tags"
)

// tagSeparator joins selected tags inside the tags parameter.
const tagSeparator = ","

// PageKind selects the base path and which parameters a URL carries.
type PageKind int

const (
	// Listing is the home page. It filters by tags only, so text is dropped.
	Listing PageKind = iota
	// Search is the dedicated search page; it carries both text and tags.
	Search
)

// BasePath returns the path a page kind is served on.
func (k PageKind) BasePath() string {
	if k == Search {
		return "/search"
	}
	return "/"
}

func (k PageKind) String() string {
	if k == Search {
		return "search"
	}
	return "listing"
}

// Encode builds the navigation target for state on a page of the given kind.
// q is emitted only when text is non-empty (and only for Search), tags only
// when at least one is selected. With nothing to emit the bare base path is
// returned.
func Encode(state domain.QueryState, kind PageKind) string {
	v := url.Values{}
	if kind == Search && state.Text != "" {
		v.Set(ParamText, state.Text)
	}
	if tags := domain.UniqueTags(state.Tags); len(tags) > 0 {
		v.Set(ParamTags, strings.Join(tags, tagSeparator))
	}
	if len(v) == 0 {
		return kind.BasePath()
	}
	return kind.BasePath() + "?" + v.Encode()
}

// Decode parses a raw query string (with or without the leading "?").
// Malformed escapes are tolerated: whatever url.ParseQuery recovered is used.
func Decode(rawQuery string) domain.QueryState {
	v, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	return FromValues(v)
}

// FromValues reads q and tags from already-parsed query values.
// q is taken verbatim. tags is split on commas; empty tokens are dropped and
// duplicates collapsed, since the tag filter has set semantics anyway.
func FromValues(v url.Values) domain.QueryState {
	state := domain.QueryState{Text: v.Get(ParamText)}
	if raw := v.Get(ParamTags); raw != "" {
		state.Tags = domain.UniqueTags(strings.Split(raw, tagSeparator))
	}
	return state
}

// Toggle returns a copy of state with tag removed if it was selected, or
// appended if it was not. Text is unchanged and state is never mutated.
func Toggle(state domain.QueryState, tag string) domain.QueryState {
	out := domain.QueryState{Text: state.Text}
	if state.HasTag(tag) {
		for _, t := range state.Tags {
			if t != tag {
				out.Tags = append(out.Tags, t)
			}
		}
		return out
	}
	out.Tags = append(append(make([]string, 0, len(state.Tags)+1), state.Tags...), tag)
	return out
}

// SubmitHref is where the search bar navigates on submit: always the search
// page, with the trimmed text and the tags already selected.
func SubmitHref(state domain.QueryState) string {
	return Encode(domain.QueryState{Text: strings.TrimSpace(state.Text), Tags: state.Tags}, Search)
}

// ClubHref is the detail page path for a club key.
func ClubHref(key string) string {
	return "/club/" + url.PathEscape(key)
}
