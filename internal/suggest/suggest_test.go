package suggest_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pkordes/circlehub/internal/catalog"
	"github.com/pkordes/circlehub/internal/domain"
	"github.com/pkordes/circlehub/internal/search"
	"github.com/pkordes/circlehub/internal/suggest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ---- helpers ---------------------------------------------------------------

func newIndex(t *testing.T, n int) *search.Index {
	t.Helper()
	clubs := make([]domain.Club, n)
	for i := range clubs {
		clubs[i] = domain.Club{
			Key:  string(rune('a'+i)) + "-tennis",
			Name: "Tennis " + string(rune('A'+i)),
		}
	}
	c, err := catalog.New(clubs)
	require.NoError(t, err)
	return search.NewIndex(c)
}

// recorder collects every panel handed to OnChange.
type recorder struct {
	mu     sync.Mutex
	panels []suggest.Panel
	ch     chan suggest.Panel
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan suggest.Panel, 16)}
}

func (r *recorder) fn(_ suggest.State, p suggest.Panel) {
	r.mu.Lock()
	r.panels = append(r.panels, p)
	r.mu.Unlock()
	r.ch <- p
}

func (r *recorder) queries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.panels))
	for i, p := range r.panels {
		out[i] = p.Query
	}
	return out
}

// gatedSearcher blocks Head for one query until release is closed.
type gatedSearcher struct {
	inner   suggest.Searcher
	gate    string
	started chan struct{}
	release chan struct{}
}

func (g *gatedSearcher) Head(query string, limit int) ([]domain.Club, int) {
	if query == g.gate {
		close(g.started)
		<-g.release
	}
	return g.inner.Head(query, limit)
}

// ---- Transition ------------------------------------------------------------

func TestTransition_InputOpensAndEmptyCloses(t *testing.T) {
	s := suggest.Transition(suggest.State{}, suggest.Input{Text: "ten"})
	assert.Equal(t, suggest.Open, s.Phase)
	assert.Equal(t, "ten", s.Text)

	s = suggest.Transition(s, suggest.Input{Text: "   "})
	assert.Equal(t, suggest.Idle, s.Phase)
	assert.Equal(t, "   ", s.Text)
}

func TestTransition_DisabledNeverOpens(t *testing.T) {
	s := suggest.State{Disabled: true}
	s = suggest.Transition(s, suggest.Input{Text: "tennis"})
	assert.Equal(t, suggest.Idle, s.Phase)
	s = suggest.Transition(s, suggest.Focus{})
	assert.Equal(t, suggest.Idle, s.Phase)
	assert.False(t, s.Visible())
}

func TestTransition_OutsideClickKeepsText(t *testing.T) {
	s := suggest.Transition(suggest.State{}, suggest.Input{Text: "tennis"})
	s = suggest.Transition(s, suggest.OutsideClick{})
	assert.Equal(t, suggest.ClosedByBlur, s.Phase)
	assert.Equal(t, "tennis", s.Text)

	s = suggest.Transition(s, suggest.Focus{})
	assert.Equal(t, suggest.Open, s.Phase)
}

func TestTransition_OutsideClickWhenIdleStaysIdle(t *testing.T) {
	s := suggest.Transition(suggest.State{}, suggest.OutsideClick{})
	assert.Equal(t, suggest.Idle, s.Phase)
}

func TestTransition_FocusWithoutTextStaysIdle(t *testing.T) {
	s := suggest.Transition(suggest.State{}, suggest.Focus{})
	assert.Equal(t, suggest.Idle, s.Phase)
}

func TestTransition_SelectAndSubmitHide(t *testing.T) {
	for _, ev := range []suggest.Event{suggest.Select{}, suggest.Submit{}} {
		s := suggest.Transition(suggest.State{}, suggest.Input{Text: "tennis"})
		s = suggest.Transition(s, ev)
		assert.Equal(t, suggest.Idle, s.Phase, "%T", ev)
		assert.Equal(t, "tennis", s.Text, "%T", ev)
	}
}

func TestTransition_Clear(t *testing.T) {
	s := suggest.Transition(suggest.State{}, suggest.Input{Text: "tennis"})
	s = suggest.Transition(s, suggest.Clear{})
	assert.Equal(t, suggest.State{Phase: suggest.Idle}, s)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", suggest.Idle.String())
	assert.Equal(t, "open", suggest.Open.String())
	assert.Equal(t, "closed_by_blur", suggest.ClosedByBlur.String())
}

// ---- Compute ---------------------------------------------------------------

func TestCompute_CapsAndCounts(t *testing.T) {
	idx := newIndex(t, 7)

	p := suggest.Compute(idx, " tennis ", []string{"スポーツ"}, 0)
	assert.Equal(t, "tennis", p.Query)
	assert.Len(t, p.Results, suggest.DefaultLimit)
	assert.Equal(t, 7, p.Total)
	assert.Equal(t, "a-tennis", p.Results[0].Key)
	assert.Equal(t, "/search?q=tennis&tags=%E3%82%B9%E3%83%9D%E3%83%BC%E3%83%84", p.ViewAllHref)
}

func TestCompute_BlankQueryIsEmpty(t *testing.T) {
	p := suggest.Compute(newIndex(t, 3), "  ", nil, 5)
	assert.Empty(t, p.Results)
	assert.NotNil(t, p.Results)
	assert.Zero(t, p.Total)
	assert.Equal(t, "/search", p.ViewAllHref)
}

func TestCompute_NoMatches(t *testing.T) {
	p := suggest.Compute(newIndex(t, 3), "robot", nil, 5)
	assert.Empty(t, p.Results)
	assert.Zero(t, p.Total)
}

// ---- Controller ------------------------------------------------------------

func TestController_SynchronousWithoutDebounce(t *testing.T) {
	rec := newRecorder()
	c := suggest.NewController(newIndex(t, 3), suggest.WithLimit(2), suggest.OnChange(rec.fn))
	defer c.Close()

	st := c.Dispatch(suggest.Input{Text: "tennis"})
	assert.Equal(t, suggest.Open, st.Phase)

	p := c.Panel()
	assert.Len(t, p.Results, 2)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, []string{"tennis"}, rec.queries())
}

func TestController_ClearResetsPanel(t *testing.T) {
	c := suggest.NewController(newIndex(t, 3))
	defer c.Close()

	c.Dispatch(suggest.Input{Text: "tennis"})
	require.Equal(t, 3, c.Panel().Total)

	st := c.Dispatch(suggest.Clear{})
	assert.Equal(t, suggest.Idle, st.Phase)
	assert.Empty(t, c.Panel().Results)
	assert.Equal(t, "", c.State().Text)
}

func TestController_OutsideClickKeepsPanel(t *testing.T) {
	c := suggest.NewController(newIndex(t, 3))
	defer c.Close()

	c.Dispatch(suggest.Input{Text: "tennis"})
	st := c.Dispatch(suggest.OutsideClick{})
	assert.Equal(t, suggest.ClosedByBlur, st.Phase)
	assert.False(t, st.Visible())
	assert.Equal(t, 3, c.Panel().Total)
}

func TestController_Disabled(t *testing.T) {
	c := suggest.NewController(newIndex(t, 3), suggest.Disabled())
	defer c.Close()

	st := c.Dispatch(suggest.Input{Text: "tennis"})
	assert.Equal(t, suggest.Idle, st.Phase)
	assert.Empty(t, c.Panel().Results)
}

func TestController_DebounceCollapsesBursts(t *testing.T) {
	rec := newRecorder()
	c := suggest.NewController(newIndex(t, 3),
		suggest.WithDebounce(30*time.Millisecond),
		suggest.OnChange(rec.fn),
	)
	defer c.Close()

	c.Dispatch(suggest.Input{Text: "t"})
	c.Dispatch(suggest.Input{Text: "te"})
	c.Dispatch(suggest.Input{Text: "tennis"})

	select {
	case p := <-rec.ch:
		assert.Equal(t, "tennis", p.Query)
		assert.Equal(t, 3, p.Total)
	case <-time.After(2 * time.Second):
		t.Fatal("no panel published")
	}
	assert.Never(t, func() bool { return len(rec.queries()) > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestController_DropsSupersededResults(t *testing.T) {
	gs := &gatedSearcher{
		inner:   newIndex(t, 3),
		gate:    "te",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	rec := newRecorder()
	c := suggest.NewController(gs,
		suggest.WithDebounce(time.Millisecond),
		suggest.OnChange(rec.fn),
	)
	defer c.Close()

	c.Dispatch(suggest.Input{Text: "te"})
	<-gs.started

	c.Dispatch(suggest.Input{Text: "tennis"})
	select {
	case p := <-rec.ch:
		assert.Equal(t, "tennis", p.Query)
	case <-time.After(2 * time.Second):
		t.Fatal("no panel published")
	}

	close(gs.release)
	assert.Never(t, func() bool { return len(rec.queries()) > 1 }, 100*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, "tennis", c.Panel().Query)
}

func TestController_CloseCancelsPending(t *testing.T) {
	rec := newRecorder()
	c := suggest.NewController(newIndex(t, 3),
		suggest.WithDebounce(50*time.Millisecond),
		suggest.OnChange(rec.fn),
	)

	c.Dispatch(suggest.Input{Text: "tennis"})
	c.Close()

	assert.Never(t, func() bool { return len(rec.queries()) > 0 }, 150*time.Millisecond, 10*time.Millisecond)
	assert.Empty(t, c.Panel().Results)
}

func TestController_FlushPublishesPending(t *testing.T) {
	rec := newRecorder()
	c := suggest.NewController(newIndex(t, 3),
		suggest.WithDebounce(time.Hour),
		suggest.OnChange(rec.fn),
	)
	defer c.Close()

	c.Dispatch(suggest.Input{Text: "tennis"})
	assert.Empty(t, rec.queries())

	c.Flush()
	assert.Equal(t, []string{"tennis"}, rec.queries())
	assert.Equal(t, 3, c.Panel().Total)

	// Nothing pending any more.
	c.Flush()
	assert.Len(t, rec.queries(), 1)
}
