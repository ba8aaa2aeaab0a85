// Package nav implements the two-state header menu.
//
// The menu is Closed on every fresh page. On the server the state travels in
// the "menu" query parameter, so each rendered link is a transition. Static
// exports address the open menu by path instead (see Scheme).
package nav

import (
	"net/url"
	"strings"
	"sync"
)

// State is the menu visibility.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Event is a user action on the menu.
type Event int

const (
	// Toggle is a press of the menu button.
	Toggle Event = iota
	// Select is the activation of a link inside the open menu.
	Select
)

func (e Event) String() string {
	if e == Select {
		return "select"
	}
	return "toggle"
}

// Next returns the state after e.
func Next(s State, e Event) State {
	switch e {
	case Toggle:
		if s == Open {
			return Closed
		}
		return Open
	case Select:
		return Closed
	}
	return s
}

// Controller holds the menu state of one mounted page.
type Controller struct {
	mu    sync.Mutex
	state State
}

// Mount returns a controller in the Closed state.
func Mount() *Controller { return &Controller{state: Closed} }

// Toggle flips the state and returns it.
func (c *Controller) Toggle() State { return c.apply(Toggle) }

// Select closes the menu and returns the new state.
func (c *Controller) Select() State { return c.apply(Select) }

func (c *Controller) apply(e Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Next(c.state, e)
	return c.state
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsOpen reports whether the menu panel is shown.
func (c *Controller) IsOpen() bool { return c.State() == Open }

// Unmount discards the state. A later Mount starts Closed again.
func (c *Controller) Unmount() {
	c.mu.Lock()
	c.state = Closed
	c.mu.Unlock()
}

// QueryKey is the query parameter carrying the menu state.
const QueryKey = "menu"

// FromQuery reads the state from request query values. Anything other than
// "open" is Closed.
func FromQuery(q url.Values) State {
	if q.Get(QueryKey) == Open.String() {
		return Open
	}
	return Closed
}

// URL returns path with the menu state encoded. The Closed state carries no
// parameter so closed pages keep their canonical URL.
func URL(path string, s State) string {
	if s == Closed {
		return path
	}
	return path + "?" + url.Values{QueryKey: {s.String()}}.Encode()
}

// MenuSegment is the path element the Path scheme appends for the open menu.
const MenuSegment = "menu"

// PathURL returns path with the open menu addressed as a "menu/" child of
// the page, for hosts that only serve files by path.
func PathURL(path string, s State) string {
	if s == Closed {
		return path
	}
	return strings.TrimSuffix(path, "/") + "/" + MenuSegment + "/"
}

// Scheme maps a page and a menu state to the URL of that view.
type Scheme func(path string, s State) string

// Schemes in use: Query is read back by the server through FromQuery; Path
// is the layout the static exporter writes.
var (
	Query Scheme = URL
	Path  Scheme = PathURL
)

// ToggleURL is the target of the menu button on a page at path in state s.
func (sc Scheme) ToggleURL(path string, s State) string { return sc(path, Next(s, Toggle)) }

// SelectURL is the target of a menu link. No-op links ("#") stay on the
// current page with the menu closed.
func (sc Scheme) SelectURL(current, href string) string {
	if href == "#" || href == "" {
		return sc(current, Next(Open, Select))
	}
	return href
}

// ToggleURL is Query.ToggleURL.
func ToggleURL(path string, s State) string { return Query.ToggleURL(path, s) }

// SelectURL is Query.SelectURL.
func SelectURL(current, href string) string { return Query.SelectURL(current, href) }
