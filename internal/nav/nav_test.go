package nav

import (
	"net/url"
	"testing"
)

func TestNext(t *testing.T) {
	tests := []struct {
		from State
		ev   Event
		want State
	}{
		{Closed, Toggle, Open},
		{Open, Toggle, Closed},
		{Open, Select, Closed},
		{Closed, Select, Closed},
	}
	for _, tt := range tests {
		if got := Next(tt.from, tt.ev); got != tt.want {
			t.Errorf("Next(%s, %s) = %s, want %s", tt.from, tt.ev, got, tt.want)
		}
	}
}

func TestControllerSequences(t *testing.T) {
	c := Mount()
	if c.IsOpen() {
		t.Fatal("fresh mount is open")
	}
	c.Toggle()
	if got := c.Toggle(); got != Closed {
		t.Errorf("toggle,toggle = %s", got)
	}
	c.Toggle()
	if got := c.Select(); got != Closed {
		t.Errorf("toggle,select = %s", got)
	}
}

func TestUnmountResets(t *testing.T) {
	c := Mount()
	c.Toggle()
	c.Unmount()
	if c.State() != Closed {
		t.Error("state survived unmount")
	}
	if Mount().IsOpen() {
		t.Error("remount is open")
	}
}

func TestQueryRoundTrip(t *testing.T) {
	if FromQuery(url.Values{}) != Closed {
		t.Error("empty query not closed")
	}
	if FromQuery(url.Values{"menu": {"bogus"}}) != Closed {
		t.Error("unknown value not closed")
	}
	if got := ToggleURL("/", Closed); got != "/?menu=open" {
		t.Errorf("toggle from closed = %q", got)
	}
	if got := ToggleURL("/", Open); got != "/" {
		t.Errorf("toggle from open = %q", got)
	}
	u, _ := url.Parse(ToggleURL("/", Closed))
	if FromQuery(u.Query()) != Open {
		t.Error("round trip lost state")
	}
}

func TestSelectURL(t *testing.T) {
	if got := SelectURL("/", "#"); got != "/" {
		t.Errorf("noop link = %q", got)
	}
	if got := SelectURL("/", "/whitepaper"); got != "/whitepaper" {
		t.Errorf("link = %q", got)
	}
}

func TestPathScheme(t *testing.T) {
	cases := []struct {
		path string
		s    State
		want string
	}{
		{"/", Closed, "/"},
		{"/", Open, "/menu/"},
		{"/whitepaper", Open, "/whitepaper/menu/"},
		{"/whitepaper/", Open, "/whitepaper/menu/"},
	}
	for _, c := range cases {
		if got := Path(c.path, c.s); got != c.want {
			t.Errorf("Path(%q, %v) = %q, want %q", c.path, c.s, got, c.want)
		}
	}
	if got := Path.ToggleURL("/", Closed); got != "/menu/" {
		t.Errorf("toggle from closed = %q", got)
	}
	if got := Path.ToggleURL("/", Open); got != "/" {
		t.Errorf("toggle from open = %q", got)
	}
	if got := Path.SelectURL("/", "#"); got != "/" {
		t.Errorf("noop link = %q", got)
	}
}
