package querystate_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/circlehub/internal/domain"
	"github.com/pkordes/circlehub/internal/querystate"
)

// ---- Encode ----------------------------------------------------------------

// An empty state encodes to the bare base path.
func TestEncode_Empty(t *testing.T) {
	assert.Equal(t, "/", querystate.Encode(domain.QueryState{}, querystate.Listing))
	assert.Equal(t, "/search", querystate.Encode(domain.QueryState{}, querystate.Search))
}

func TestEncode_Search(t *testing.T) {
	state := domain.QueryState{Text: "tennis club", Tags: []string{"a", "b"}}

	got := querystate.Encode(state, querystate.Search)

	assert.Equal(t, "/search?q=tennis+club&tags=a%2Cb", got)
}

func TestEncode_SearchTextOnly(t *testing.T) {
	got := querystate.Encode(domain.QueryState{Text: "テニス"}, querystate.Search)

	assert.Equal(t, "/search?q="+url.QueryEscape("テニス"), got)
}

func TestEncode_ListingDropsText(t *testing.T) {
	state := domain.QueryState{Text: "tennis", Tags: []string{"スポーツ"}}

	got := querystate.Encode(state, querystate.Listing)

	assert.Equal(t, "/?tags="+url.QueryEscape("スポーツ"), got)
	assert.NotContains(t, got, "q=")
}

func TestEncode_CollapsesDuplicateTags(t *testing.T) {
	got := querystate.Encode(domain.QueryState{Tags: []string{"a", "a", ""}}, querystate.Listing)

	assert.Equal(t, "/?tags=a", got)
}

// ---- Decode ----------------------------------------------------------------

// An empty query string decodes to the empty state.
func TestDecode_Empty(t *testing.T) {
	got := querystate.Decode("")

	assert.Equal(t, "", got.Text)
	assert.Empty(t, got.Tags)
	assert.True(t, got.IsEmpty())
}

func TestDecode_TextVerbatim(t *testing.T) {
	got := querystate.Decode("?q=+tennis+")

	assert.Equal(t, " tennis ", got.Text, "decode does not trim")
}

func TestDecode_Tags(t *testing.T) {
	got := querystate.Decode("tags=" + url.QueryEscape("スポーツ,学術"))

	assert.Equal(t, []string{"スポーツ", "学術"}, got.Tags)
}

func TestDecode_TagsUnescapedComma(t *testing.T) {
	got := querystate.Decode("tags=a,b")

	assert.Equal(t, []string{"a", "b"}, got.Tags)
}

func TestDecode_DuplicateAndEmptyTagTokens(t *testing.T) {
	got := querystate.Decode("tags=a,,a,b,")

	assert.Equal(t, []string{"a", "b"}, got.Tags)
}

func TestDecode_MalformedEscapeIsTolerated(t *testing.T) {
	got := querystate.Decode("q=%zz&tags=a")

	assert.Equal(t, []string{"a"}, got.Tags)
}

// Decode(encode(s)) == s, tags compared as a set.
func TestRoundTrip(t *testing.T) {
	states := []domain.QueryState{
		{},
		{Text: "tennis"},
		{Text: "テニス 大会", Tags: []string{"スポーツ"}},
		{Tags: []string{"学術", "大会参加", "スポーツ"}},
		{Text: "a&b=c?d", Tags: []string{"x y", "z/w"}},
	}

	for _, s := range states {
		encoded := querystate.Encode(s, querystate.Search)
		u, err := url.Parse(encoded)
		require.NoError(t, err)

		got := querystate.Decode(u.RawQuery)

		assert.True(t, s.Equal(got), "round trip of %+v via %q gave %+v", s, encoded, got)
	}
}

// ---- Toggle ----------------------------------------------------------------

func TestToggle_AddsAndRemoves(t *testing.T) {
	s := domain.QueryState{Text: "q", Tags: []string{"a"}}

	added := querystate.Toggle(s, "b")
	assert.Equal(t, []string{"a", "b"}, added.Tags)
	assert.Equal(t, "q", added.Text)

	removed := querystate.Toggle(added, "a")
	assert.Equal(t, []string{"b"}, removed.Tags)
	assert.Equal(t, "q", removed.Text)
}

func TestToggle_DoesNotMutateInput(t *testing.T) {
	tags := make([]string, 1, 4)
	tags[0] = "a"
	s := domain.QueryState{Tags: tags}

	_ = querystate.Toggle(s, "b")
	_ = querystate.Toggle(s, "a")

	assert.Equal(t, []string{"a"}, s.Tags)
	assert.Equal(t, []string{"a", ""}, tags[:2], "spare capacity must stay untouched")
}

// Toggling the same tag twice restores the state.
func TestToggle_Involution(t *testing.T) {
	states := []domain.QueryState{
		{},
		{Text: "x", Tags: []string{"a"}},
		{Tags: []string{"a", "b", "c"}},
	}

	for _, s := range states {
		for _, tag := range []string{"a", "b", "new"} {
			twice := querystate.Toggle(querystate.Toggle(s, tag), tag)
			assert.True(t, s.Equal(twice), "toggle %q twice on %+v gave %+v", tag, s, twice)
		}
	}
}

// ---- Chips -----------------------------------------------------------------

func TestChips_Listing(t *testing.T) {
	state := domain.QueryState{Tags: []string{"a"}}

	chips := querystate.Chips(state, []string{"a", "b"}, querystate.Listing)

	require.Len(t, chips, 2)
	assert.Equal(t, querystate.Chip{Tag: "a", Selected: true, Href: "/"}, chips[0])
	assert.Equal(t, querystate.Chip{Tag: "b", Selected: false, Href: "/?tags=a%2Cb"}, chips[1])
}

func TestChips_SearchKeepsText(t *testing.T) {
	state := domain.QueryState{Text: "club"}

	chips := querystate.Chips(state, []string{"a"}, querystate.Search)

	require.Len(t, chips, 1)
	assert.Equal(t, "/search?q=club&tags=a", chips[0].Href)
}

// ---- SubmitHref / ClubHref -------------------------------------------------

func TestSubmitHref(t *testing.T) {
	assert.Equal(t, "/search?q=tennis&tags=a", querystate.SubmitHref(domain.QueryState{Text: "  tennis ", Tags: []string{"a"}}))
	assert.Equal(t, "/search?tags=a", querystate.SubmitHref(domain.QueryState{Text: "   ", Tags: []string{"a"}}))
	assert.Equal(t, "/search", querystate.SubmitHref(domain.QueryState{}))
}

func TestClubHref(t *testing.T) {
	assert.Equal(t, "/club/tennis-club", querystate.ClubHref("tennis-club"))
	assert.Equal(t, "/club/hibana_univ.kanazawa", querystate.ClubHref("hibana_univ.kanazawa"))
	assert.Equal(t, "/club/a%2Fb", querystate.ClubHref("a/b"))
}
