// Package suggest models the instant-results panel under the search bar as
// an explicit state machine.
//
// Transition is pure: (State, Event) → State. Computing the suggestions is a
// separate step (Compute), and Controller ties the two together with an
// optional debounce for interactive use.
package suggest

import "strings"

// Phase is the visibility state of the panel.
type Phase int

const (
	// Idle: no query, panel hidden.
	Idle Phase = iota
	// Open: non-empty query, panel visible and live-updating.
	Open
	// ClosedByBlur: hidden after a click outside; the text is kept so a
	// later focus reopens the panel.
	ClosedByBlur
)

func (p Phase) String() string {
	switch p {
	case Open:
		return "open"
	case ClosedByBlur:
		return "closed_by_blur"
	default:
		return "idle"
	}
}

// State is the search bar's view state.
// Disabled is set on surfaces that never show suggestions (the search page).
type State struct {
	Phase    Phase
	Text     string
	Disabled bool
}

// Visible reports whether the panel should be drawn.
func (s State) Visible() bool {
	return s.Phase == Open
}

// hasQuery reports whether the text is worth searching for.
func (s State) hasQuery() bool {
	return strings.TrimSpace(s.Text) != ""
}

// Event is something the user did to the search bar.
type Event interface {
	isEvent()
}

type (
	// Input is a change to the text field.
	Input struct{ Text string }
	// Focus is the text field gaining focus.
	Focus struct{}
	// OutsideClick is a pointer press outside both the field and the panel.
	OutsideClick struct{}
	// Select is a click on one of the suggestions.
	Select struct{}
	// Submit is Enter or the explicit search button.
	Submit struct{}
	// Clear is the clear button; it empties the text.
	Clear struct{}
)

func (Input) isEvent()        {}
func (Focus) isEvent()        {}
func (OutsideClick) isEvent() {}
func (Select) isEvent()       {}
func (Submit) isEvent()       {}
func (Clear) isEvent()        {}

// Transition applies e to s and returns the next state.
func Transition(s State, e Event) State {
	switch ev := e.(type) {
	case Input:
		s.Text = ev.Text
		if s.hasQuery() && !s.Disabled {
			s.Phase = Open
		} else {
			s.Phase = Idle
		}
	case Focus:
		if s.hasQuery() && !s.Disabled {
			s.Phase = Open
		}
	case OutsideClick:
		if s.Phase == Open {
			s.Phase = ClosedByBlur
		}
	case Select, Submit:
		s.Phase = Idle
	case Clear:
		s.Text = ""
		s.Phase = Idle
	}
	return s
}
