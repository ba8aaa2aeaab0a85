// Package parser turns the lightweight inline markup used in content files
// into document nodes.
//
// Supported markup is a subset of CommonMark inlines: **strong**, *em* and
// `code`. Character references such as &amp; are decoded outside code spans.
// Links are flattened to their label. Block syntax is not recognized,
// so a line like "1. Introduction" stays a paragraph.
package parser

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"

	"github.com/catenary/site/internal/document"
)

var inlineParser = parser.NewParser(
	parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 100)),
	parser.WithInlineParsers(parser.DefaultInlineParsers()...),
)

// Inline parses src and returns the equivalent inline node sequence.
// Consecutive text runs are merged and line breaks collapse to a space.
func Inline(src string) []document.Node {
	source := []byte(src)
	root := inlineParser.Parse(text.NewReader(source))

	b := &builder{src: source}
	first := true
	for blk := root.FirstChild(); blk != nil; blk = blk.NextSibling() {
		if !first {
			b.text(" ")
		}
		first = false
		b.children(blk)
	}
	return b.finish()
}

// InlineText is Inline for callers that only need the plain text.
func InlineText(src string) string {
	var sb strings.Builder
	for _, n := range Inline(src) {
		sb.WriteString(document.PlainText(n))
	}
	return sb.String()
}

type builder struct {
	src   []byte
	out   []document.Node
	buf   strings.Builder
	stack [][]document.Node
}

func (b *builder) text(s string) { b.buf.WriteString(s) }

func (b *builder) flush() {
	if b.buf.Len() == 0 {
		return
	}
	b.out = append(b.out, document.Text(b.buf.String()))
	b.buf.Reset()
}

func (b *builder) finish() []document.Node {
	b.flush()
	return b.out
}

// wrap collects the nodes produced by fn and wraps them with mk.
func (b *builder) wrap(mk func(...document.Node) document.Node, fn func()) {
	b.flush()
	b.stack = append(b.stack, b.out)
	b.out = nil
	fn()
	b.flush()
	inner := b.out
	b.out = b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if len(inner) > 0 {
		b.out = append(b.out, mk(inner...))
	}
}

func (b *builder) children(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		b.node(c)
	}
}

func (b *builder) node(n ast.Node) {
	switch n := n.(type) {
	case *ast.Text:
		v := n.Segment.Value(b.src)
		if n.IsRaw() {
			b.text(string(v))
		} else {
			b.text(decodeText(v))
		}
		if n.SoftLineBreak() || n.HardLineBreak() {
			b.text(" ")
		}
	case *ast.String:
		b.text(string(n.Value))
	case *ast.CodeSpan:
		b.wrap(document.Code, func() { b.codeText(n) })
	case *ast.Emphasis:
		mk := document.Em
		if n.Level >= 2 {
			mk = document.Strong
		}
		b.wrap(mk, func() { b.children(n) })
	case *ast.AutoLink:
		b.text(string(n.Label(b.src)))
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.text(string(seg.Value(b.src)))
		}
	default:
		// Links, images and anything else contribute their text only.
		b.children(n)
	}
}

// decodeText resolves backslash escapes and character references with
// goldmark's HTML writer and turns the escaped result back into text.
func decodeText(v []byte) string {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	gmhtml.DefaultWriter.Write(w, v)
	_ = w.Flush()
	return html.UnescapeString(buf.String())
}

func (b *builder) codeText(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.text(string(c.Segment.Value(b.src)))
		case *ast.String:
			b.text(string(c.Value))
		}
	}
}
