// Package service assembles the pages of the club directory from the
// in-memory catalog. Services depend on repo interfaces, never on SQL or files.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pkordes/circlehub/internal/catalog"
	"github.com/pkordes/circlehub/internal/domain"
	"github.com/pkordes/circlehub/internal/querystate"
	"github.com/pkordes/circlehub/internal/repo"
	"github.com/pkordes/circlehub/internal/richtext"
	"github.com/pkordes/circlehub/internal/suggest"
)

// Defaults used when the corresponding option is not given.
const (
	DefaultCatalogTTL   = 5 * time.Minute
	DefaultRelatedLimit = 3
)

// ListingPage is the home page: every club, optionally narrowed by tags.
type ListingPage struct {
	State domain.QueryState
	Clubs []domain.Club
	Total int
	Chips []querystate.Chip
}

// SearchPage is the dedicated search results page.
type SearchPage struct {
	State   domain.QueryState
	Heading string
	Clubs   []domain.Club
	Total   int
	Chips   []querystate.Chip
	// SuggestionsDisabled is always true: the search page's own search bar
	// does not open the instant panel.
	SuggestionsDisabled bool
}

// DetailPage is one club's profile.
type DetailPage struct {
	Club    domain.Club
	Related []domain.Club
	HTML    RenderedFields
}

// RenderedFields holds the multi-line club fields as sanitised HTML.
type RenderedFields struct {
	Summary         string
	Record          string
	FeelingPositive string
	FeelingNegative string
	Recruitment     string
	WelcomeSchedule string
}

// SuggestResult is the instant panel for one keystroke.
type SuggestResult struct {
	State suggest.State
	Panel suggest.Panel
}

// ClubService serves pages from a lazily loaded, periodically refreshed
// catalog.
type ClubService struct {
	repo         repo.ClubRepo
	logger       *slog.Logger
	ttl          time.Duration
	relatedLimit int
	suggestLimit int
	catalogOpts  []catalog.Option
	render       func(string) (string, error)
	now          func() time.Time

	group singleflight.Group
	mu    sync.RWMutex
	snap  *snapshot
}

// ClubOption configures a ClubService.
type ClubOption func(*ClubService)

// WithLogger sets the logger used for catalog load events.
func WithLogger(l *slog.Logger) ClubOption {
	return func(s *ClubService) { s.logger = l }
}

// WithCatalogTTL sets how long a loaded catalog is served before the provider
// is asked again. ttl <= 0 loads once and never refreshes.
func WithCatalogTTL(ttl time.Duration) ClubOption {
	return func(s *ClubService) { s.ttl = ttl }
}

// WithRelatedLimit sets the default number of related clubs on a detail page.
func WithRelatedLimit(n int) ClubOption {
	return func(s *ClubService) { s.relatedLimit = n }
}

// WithSuggestionLimit caps the instant panel.
func WithSuggestionLimit(n int) ClubOption {
	return func(s *ClubService) { s.suggestLimit = n }
}

// WithCatalogOptions passes options to every catalog.New call.
func WithCatalogOptions(opts ...catalog.Option) ClubOption {
	return func(s *ClubService) { s.catalogOpts = opts }
}

// WithClock replaces time.Now, for TTL tests.
func WithClock(now func() time.Time) ClubOption {
	return func(s *ClubService) { s.now = now }
}

// NewClubService constructs a ClubService reading from r.
func NewClubService(r repo.ClubRepo, opts ...ClubOption) *ClubService {
	s := &ClubService{
		repo:         r,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		ttl:          DefaultCatalogTTL,
		relatedLimit: DefaultRelatedLimit,
		suggestLimit: suggest.DefaultLimit,
		render:       richtext.Render,
		now:          time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Listing returns the clubs carrying any of state's tags (all clubs when no
// tag is selected). Free text is ignored on the listing page.
func (s *ClubService) Listing(ctx context.Context, state domain.QueryState) (ListingPage, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return ListingPage{}, fmt.Errorf("service.ClubService.Listing: %w", err)
	}

	state = domain.NewQueryState("", state.Tags)
	clubs := snap.idx.Filter(state)
	return ListingPage{
		State: state,
		Clubs: clubs,
		Total: len(clubs),
		Chips: querystate.Chips(state, snap.cat.Vocabulary(), querystate.Listing),
	}, nil
}

// Search returns the clubs matching both the text query and the tag filter.
func (s *ClubService) Search(ctx context.Context, state domain.QueryState) (SearchPage, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return SearchPage{}, fmt.Errorf("service.ClubService.Search: %w", err)
	}

	state = domain.NewQueryState(state.Text, state.Tags)
	clubs := snap.idx.Filter(state)
	return SearchPage{
		State:               state,
		Heading:             searchHeading(state.Text),
		Clubs:               clubs,
		Total:               len(clubs),
		Chips:               querystate.Chips(state, snap.cat.Vocabulary(), querystate.Search),
		SuggestionsDisabled: true,
	}, nil
}

// Detail returns one club with up to limit related clubs. limit <= 0 uses
// the configured default. Unknown keys return domain.ErrNotFound.
func (s *ClubService) Detail(ctx context.Context, key string, limit int) (DetailPage, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return DetailPage{}, fmt.Errorf("service.ClubService.Detail: %w", err)
	}

	club, ok := snap.cat.GetByKey(key)
	if !ok {
		return DetailPage{}, fmt.Errorf("service.ClubService.Detail: club %q: %w", key, domain.ErrNotFound)
	}
	if limit <= 0 {
		limit = s.relatedLimit
	}

	html, err := s.renderFields(club)
	if err != nil {
		return DetailPage{}, fmt.Errorf("service.ClubService.Detail: %w", err)
	}

	return DetailPage{
		Club:    club,
		Related: snap.cat.ListRelated(club, limit),
		HTML:    html,
	}, nil
}

// Suggest feeds text into a fresh search bar and returns the resulting state
// and panel. tags only affects the panel's view-all link.
func (s *ClubService) Suggest(ctx context.Context, text string, tags []string) (SuggestResult, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return SuggestResult{}, fmt.Errorf("service.ClubService.Suggest: %w", err)
	}

	st := suggest.Transition(suggest.State{}, suggest.Input{Text: text})
	return SuggestResult{
		State: st,
		Panel: suggest.Compute(snap.idx, text, domain.UniqueTags(tags), s.suggestLimit),
	}, nil
}

// Vocabulary returns every tag in use, sorted.
func (s *ClubService) Vocabulary(ctx context.Context) ([]string, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ClubService.Vocabulary: %w", err)
	}
	return snap.cat.Vocabulary(), nil
}

// Index returns the search index of the current catalog, for callers that
// drive a suggest.Controller themselves.
func (s *ClubService) Index(ctx context.Context) (suggest.Searcher, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ClubService.Index: %w", err)
	}
	return snap.idx, nil
}

func (s *ClubService) renderFields(c domain.Club) (RenderedFields, error) {
	var out RenderedFields
	fields := []struct {
		src string
		dst *string
	}{
		{c.Activity.Summary, &out.Summary},
		{c.Activity.Record, &out.Record},
		{c.Activity.FeelingPositive, &out.FeelingPositive},
		{c.Activity.FeelingNegative, &out.FeelingNegative},
		{c.Recruitment.Text, &out.Recruitment},
		{c.Recruitment.WelcomeSchedule, &out.WelcomeSchedule},
	}
	for _, f := range fields {
		html, err := s.render(f.src)
		if err != nil {
			return RenderedFields{}, err
		}
		*f.dst = html
	}
	return out, nil
}

func searchHeading(text string) string {
	if strings.TrimSpace(text) == "" {
		return "すべてのクラブ"
	}
	return fmt.Sprintf("\"%s\"の検索結果", text)
}
