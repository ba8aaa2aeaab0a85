package document

import "strings"

// TitleBlock is the byline shown above the abstract of an article.
type TitleBlock struct {
	Title        string
	Author       string
	Organization string
	Contact      string
	Date         string
}

// Document is a composed long-form article.
type Document struct {
	Title TitleBlock
	Body  []Node
}

// Walk visits n and its descendants depth-first, pre-order. Returning false
// from fn skips the children of the current node.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		Walk(c, fn)
	}
}

// PlainText concatenates the text content of n, ignoring presentation.
func PlainText(n Node) string {
	var b strings.Builder
	Walk(n, func(c Node) bool {
		switch c.kind {
		case KindText, KindMathBlock:
			b.WriteString(c.text)
		case KindFigure:
			b.WriteString(c.figure.Caption)
		}
		return true
	})
	return b.String()
}

// Sections returns the top-level section nodes of the body in order.
func (d *Document) Sections() []Node {
	var out []Node
	for _, n := range d.Body {
		if n.kind == KindSection {
			out = append(out, n)
		}
	}
	return out
}

// SectionTitle returns the text of the first heading of a section, or "".
func SectionTitle(section Node) string {
	for _, c := range section.children {
		if c.kind == KindHeading {
			return PlainText(c)
		}
	}
	return ""
}
