package parser

import (
	"testing"

	"github.com/catenary/site/internal/document"
)

func kinds(nodes []document.Node) []document.Kind {
	out := make([]document.Kind, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind()
	}
	return out
}

func TestInlinePlain(t *testing.T) {
	got := Inline("Catenary is a Layer 3 network.")
	if len(got) != 1 || got[0].Kind() != document.KindText {
		t.Fatalf("got kinds %v", kinds(got))
	}
	if got[0].Text() != "Catenary is a Layer 3 network." {
		t.Errorf("text = %q", got[0].Text())
	}
}

func TestInlineMarkup(t *testing.T) {
	got := Inline("The **CLOB** uses *intents* via `geass.submit()` calls.")
	want := []document.Kind{
		document.KindText, document.KindStrong, document.KindText,
		document.KindEmphasis, document.KindText, document.KindInlineCode, document.KindText,
	}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds(got), want)
	}
	for i := range want {
		if got[i].Kind() != want[i] {
			t.Errorf("node %d kind = %s, want %s", i, got[i].Kind(), want[i])
		}
	}
	if s := document.PlainText(got[5]); s != "geass.submit()" {
		t.Errorf("code = %q", s)
	}
	if s := document.PlainText(got[1]); s != "CLOB" {
		t.Errorf("strong = %q", s)
	}
}

func TestInlineBlockSyntaxIgnored(t *testing.T) {
	for _, src := range []string{"1. Introduction", "# not a heading", "- not a list"} {
		got := Inline(src)
		if len(got) != 1 || got[0].Text() != src {
			t.Errorf("Inline(%q) = %v", src, kinds(got))
		}
	}
}

func TestInlineLineBreaks(t *testing.T) {
	if got := InlineText("first line\nsecond line"); got != "first line second line" {
		t.Errorf("got %q", got)
	}
}

func TestInlineLinksFlattened(t *testing.T) {
	if got := InlineText("see [the docs](https://docs.catenary.xyz) now"); got != "see the docs now" {
		t.Errorf("got %q", got)
	}
}

func TestInlineEscapes(t *testing.T) {
	if got := InlineText(`price \*not\* emphasized`); got != "price *not* emphasized" {
		t.Errorf("got %q", got)
	}
}

func TestInlineCharacterReferences(t *testing.T) {
	tests := []struct{ src, want string }{
		{"AT&amp;T", "AT&T"},
		{"a &lt; b", "a < b"},
		{"&#215; and &#x3A3;", "× and Σ"},
		{"R&D stays", "R&D stays"},
		{"`a &amp; b`", "a &amp; b"},
		{`\&amp; is literal`, "&amp; is literal"},
	}
	for _, tt := range tests {
		if got := InlineText(tt.src); got != tt.want {
			t.Errorf("InlineText(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
