package domain

import "strings"

// QueryState is the pair (free-text query, selected tags) that decides what a
// listing or search page shows. It is rebuilt from the URL on every request
// and never persisted.
//
// Tags has set semantics. It is kept as a slice so that URLs built from it are
// stable; NewQueryState and the querystate codec keep it free of duplicates
// and empty entries.
type QueryState struct {
	Text string
	Tags []string
}

// NewQueryState builds a QueryState with trimmed text and de-duplicated,
// non-empty tags in first-seen order.
func NewQueryState(text string, tags []string) QueryState {
	return QueryState{Text: strings.TrimSpace(text), Tags: UniqueTags(tags)}
}

// HasTag reports whether tag is selected.
func (s QueryState) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsEmpty reports whether neither text nor tags are set.
func (s QueryState) IsEmpty() bool {
	return s.Text == "" && len(s.Tags) == 0
}

// Equal compares two states treating Tags as a set.
func (s QueryState) Equal(o QueryState) bool {
	if s.Text != o.Text {
		return false
	}
	a, b := UniqueTags(s.Tags), UniqueTags(o.Tags)
	if len(a) != len(b) {
		return false
	}
	for _, t := range a {
		if !o.HasTag(t) {
			return false
		}
	}
	return true
}

// UniqueTags trims entries and drops empty ones and duplicates, preserving
// first-seen order. It returns nil when nothing survives.
func UniqueTags(tags []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
