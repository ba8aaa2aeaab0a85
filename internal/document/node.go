// Package document defines the semantic building blocks of long-form pages.
//
// A page is authored as a tree of immutable Nodes. Nodes carry no presentation
// beyond an optional style-override token; renderers in internal/render map
// each Kind to its default presentation.
package document

import "slices"

// Kind identifies the semantic role of a Node.
type Kind int

const (
	KindText Kind = iota
	KindSection
	KindHeading
	KindParagraph
	KindInlineCode
	KindStrong
	KindEmphasis
	KindList
	KindListItem
	KindFigure
	KindMathBlock
	KindDivider
	KindTable
	KindTableHead
	KindTableBody
	KindTableRow
	KindTableHeaderCell
	KindTableDataCell
)

var kindNames = [...]string{
	KindText:            "text",
	KindSection:         "section",
	KindHeading:         "heading",
	KindParagraph:       "paragraph",
	KindInlineCode:      "inline-code",
	KindStrong:          "strong",
	KindEmphasis:        "emphasis",
	KindList:            "list",
	KindListItem:        "list-item",
	KindFigure:          "figure",
	KindMathBlock:       "math-block",
	KindDivider:         "divider",
	KindTable:           "table",
	KindTableHead:       "table-head",
	KindTableBody:       "table-body",
	KindTableRow:        "table-row",
	KindTableHeaderCell: "table-header-cell",
	KindTableDataCell:   "table-data-cell",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// FigureData is the payload of a KindFigure node.
type FigureData struct {
	Source  string
	Alt     string
	Caption string
}

// Node is a single semantic content unit. The zero value is an empty text node.
// Nodes are values; every method that "modifies" a node returns a copy.
type Node struct {
	kind     Kind
	level    int  // headings only
	ordered  bool // lists only
	text     string
	class    string
	children []Node
	figure   *FigureData
}

// Kind returns the node kind.
func (n Node) Kind() Kind { return n.kind }

// Level returns the heading level, or 0 for non-headings.
func (n Node) Level() int { return n.level }

// Ordered reports whether a list is numbered.
func (n Node) Ordered() bool { return n.ordered }

// Text returns the literal content of text and math-block nodes.
func (n Node) Text() string { return n.text }

// Class returns the style-override token, if any.
func (n Node) Class() string { return n.class }

// Children returns a copy of the node's children.
func (n Node) Children() []Node { return slices.Clone(n.children) }

// Len returns the number of children.
func (n Node) Len() int { return len(n.children) }

// Child returns the i-th child.
func (n Node) Child(i int) Node { return n.children[i] }

// Figure returns the figure payload of a KindFigure node.
func (n Node) Figure() (FigureData, bool) {
	if n.figure == nil {
		return FigureData{}, false
	}
	return *n.figure, true
}

// WithClass returns a copy of n carrying the given style override.
func (n Node) WithClass(class string) Node {
	n.class = class
	return n
}

func container(kind Kind, children []Node) Node {
	return Node{kind: kind, children: slices.Clone(children)}
}
