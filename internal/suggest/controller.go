package suggest

import (
	"sync"
	"time"
)

// Controller drives a State from events and keeps the latest Panel.
//
// With a zero debounce suggestions are recomputed synchronously on every
// Input. With a positive debounce the computation runs once typing pauses.
// Every Input bumps a token, and a computation whose token is no longer the
// latest is discarded instead of published.
type Controller struct {
	idx      Searcher
	tags     []string
	limit    int
	debounce time.Duration
	onChange func(State, Panel)

	mu    sync.Mutex
	state State
	panel Panel
	token uint64
	timer *time.Timer
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithDebounce delays recomputation until input has been quiet for d.
func WithDebounce(d time.Duration) ControllerOption {
	return func(c *Controller) { c.debounce = d }
}

// WithLimit caps the number of suggestions.
func WithLimit(n int) ControllerOption {
	return func(c *Controller) { c.limit = n }
}

// WithTags sets the tag selection carried into the view-all link.
func WithTags(tags []string) ControllerOption {
	return func(c *Controller) { c.tags = tags }
}

// Disabled turns the panel off for this search bar.
func Disabled() ControllerOption {
	return func(c *Controller) { c.state.Disabled = true }
}

// OnChange registers fn to be called after every state change or published
// panel. fn runs without the controller's lock held, on the dispatching
// goroutine or on the debounce timer's goroutine.
func OnChange(fn func(State, Panel)) ControllerOption {
	return func(c *Controller) { c.onChange = fn }
}

// NewController returns a Controller in the Idle state.
func NewController(idx Searcher, opts ...ControllerOption) *Controller {
	c := &Controller{idx: idx, limit: DefaultLimit}
	for _, o := range opts {
		o(c)
	}
	c.panel = Compute(idx, "", c.tags, c.limit)
	return c
}

// Dispatch applies e and returns the resulting state.
func (c *Controller) Dispatch(e Event) State {
	c.mu.Lock()
	c.state = Transition(c.state, e)
	st := c.state

	if _, ok := e.(Input); !ok {
		if _, cleared := e.(Clear); cleared {
			c.cancelLocked()
			c.panel = Compute(c.idx, "", c.tags, c.limit)
		}
		panel := c.panel
		c.mu.Unlock()
		c.notify(st, panel)
		return st
	}

	c.token++
	token := c.token
	text := st.Text

	if st.Phase != Open {
		c.cancelLocked()
		c.panel = Compute(c.idx, "", c.tags, c.limit)
		panel := c.panel
		c.mu.Unlock()
		c.notify(st, panel)
		return st
	}

	if c.debounce <= 0 {
		c.panel = Compute(c.idx, text, c.tags, c.limit)
		panel := c.panel
		c.mu.Unlock()
		c.notify(st, panel)
		return st
	}

	c.cancelLocked()
	c.timer = time.AfterFunc(c.debounce, func() { c.publish(token, text) })
	c.mu.Unlock()
	return st
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Panel returns the latest published panel.
func (c *Controller) Panel() Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel
}

// Flush runs a pending debounced computation now instead of waiting for the
// delay. It does nothing when no computation is pending.
func (c *Controller) Flush() {
	c.mu.Lock()
	if c.timer == nil || !c.timer.Stop() {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	token, text := c.token, c.state.Text
	c.mu.Unlock()

	c.publish(token, text)
}

// Close stops any pending debounced computation. Results of an input typed
// before Close are never published.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.token++
}

// publish computes the panel for text and stores it if token is still the
// latest input.
func (c *Controller) publish(token uint64, text string) {
	panel := Compute(c.idx, text, c.tags, c.limit)

	c.mu.Lock()
	if token != c.token {
		c.mu.Unlock()
		return
	}
	c.panel = panel
	st := c.state
	c.mu.Unlock()

	c.notify(st, panel)
}

func (c *Controller) cancelLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) notify(st State, p Panel) {
	if c.onChange != nil {
		c.onChange(st, p)
	}
}
