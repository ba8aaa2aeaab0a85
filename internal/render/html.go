package render

import (
	"io"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/catenary/site/internal/document"
)

// Figure image dimensions hinted to the browser.
const (
	figureWidth  = 800
	figureHeight = 450
)

// HTML renders document nodes to golang.org/x/net/html trees.
type HTML struct {
	theme Theme
}

// NewHTML returns an HTML renderer. A nil theme selects DefaultTheme.
func NewHTML(theme Theme) *HTML {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &HTML{theme: theme}
}

// Render writes the HTML serialization of n to w.
func (r *HTML) Render(w io.Writer, n document.Node) error {
	return html.Render(w, r.Node(n))
}

// String returns the HTML serialization of n.
func (r *HTML) String(n document.Node) string {
	var b strings.Builder
	_ = r.Render(&b, n)
	return b.String()
}

// Article renders a whole document inside an <article>, title block first.
func (r *HTML) Article(d *document.Document) *html.Node {
	art := element(atom.Article, r.theme.Class(SlotArticle, ""))
	if tb := r.titleBlock(d.Title); tb != nil {
		art.AppendChild(tb)
	}
	for _, n := range d.Body {
		art.AppendChild(r.node(n, 0))
	}
	return art
}

func (r *HTML) titleBlock(t document.TitleBlock) *html.Node {
	if t == (document.TitleBlock{}) {
		return nil
	}
	div := element(atom.Div, r.theme.Class(SlotTitleBlock, ""))
	if t.Title != "" {
		div.AppendChild(withText(element(atom.H1, r.theme.Class(SlotTitle, "")), t.Title))
	}
	if t.Author != "" {
		div.AppendChild(withText(element(atom.P, r.theme.Class(SlotAuthor, "")), t.Author))
	}
	if t.Organization != "" {
		div.AppendChild(withText(element(atom.P, r.theme.Class(SlotAffiliation, "")), t.Organization))
	}
	if t.Contact != "" {
		p := element(atom.P, r.theme.Class(SlotAffiliation, ""))
		p.AppendChild(withText(element(atom.Code, r.theme.Class(SlotCode, "")), t.Contact))
		div.AppendChild(p)
	}
	if t.Date != "" {
		div.AppendChild(withText(element(atom.P, r.theme.Class(SlotDate, "")), t.Date))
	}
	return div
}

// Node converts n to an HTML node tree.
func (r *HTML) Node(n document.Node) *html.Node { return r.node(n, 0) }

// depth counts enclosing lists so nested bullet lists get their own style.
func (r *HTML) node(n document.Node, depth int) *html.Node {
	switch n.Kind() {
	case document.KindText:
		return &html.Node{Type: html.TextNode, Data: n.Text()}
	case document.KindSection:
		return r.container(atom.Section, SlotSection, n, depth)
	case document.KindHeading:
		switch n.Level() {
		case 1:
			return r.container(atom.H1, SlotHeading1, n, depth)
		case 2:
			return r.container(atom.H2, SlotHeading2, n, depth)
		default:
			return r.container(atom.H3, SlotHeading3, n, depth)
		}
	case document.KindParagraph:
		return r.container(atom.P, SlotParagraph, n, depth)
	case document.KindInlineCode:
		return r.container(atom.Code, SlotCode, n, depth)
	case document.KindStrong:
		return r.container(atom.Strong, SlotStrong, n, depth)
	case document.KindEmphasis:
		return r.container(atom.Em, SlotEm, n, depth)
	case document.KindList:
		slot := SlotList
		if n.Ordered() {
			slot = SlotOrderedList
		} else if depth > 0 {
			slot = SlotNestedList
		}
		tag := atom.Ul
		if n.Ordered() {
			tag = atom.Ol
		}
		return r.container(tag, slot, n, depth+1)
	case document.KindListItem:
		return r.container(atom.Li, SlotListItem, n, depth)
	case document.KindFigure:
		return r.figure(n)
	case document.KindMathBlock:
		div := element(atom.Div, r.theme.Class(SlotMath, n.Class()))
		pre := element(atom.Pre, r.theme.Class(SlotMathPre, ""))
		pre.AppendChild(withText(element(atom.Code, ""), n.Text()))
		div.AppendChild(pre)
		return div
	case document.KindDivider:
		return element(atom.Hr, r.theme.Class(SlotDivider, n.Class()))
	case document.KindTable:
		wrap := element(atom.Div, r.theme.Class(SlotTableWrap, ""))
		wrap.AppendChild(r.container(atom.Table, SlotTable, n, depth))
		return wrap
	case document.KindTableHead:
		return r.container(atom.Thead, SlotTableHead, n, depth)
	case document.KindTableBody:
		return r.container(atom.Tbody, SlotTableBody, n, depth)
	case document.KindTableRow:
		return r.container(atom.Tr, SlotTableRow, n, depth)
	case document.KindTableHeaderCell:
		th := r.container(atom.Th, SlotTableHeader, n, depth)
		th.Attr = append([]html.Attribute{{Key: "scope", Val: "col"}}, th.Attr...)
		return th
	case document.KindTableDataCell:
		return r.container(atom.Td, SlotTableData, n, depth)
	}
	return &html.Node{Type: html.TextNode, Data: document.PlainText(n)}
}

func (r *HTML) container(tag atom.Atom, slot Slot, n document.Node, depth int) *html.Node {
	el := element(tag, r.theme.Class(slot, n.Class()))
	for i := 0; i < n.Len(); i++ {
		el.AppendChild(r.node(n.Child(i), depth))
	}
	return el
}

func (r *HTML) figure(n document.Node) *html.Node {
	f, _ := n.Figure()
	fig := element(atom.Figure, r.theme.Class(SlotFigure, n.Class()))
	frame := element(atom.Div, r.theme.Class(SlotFigureFrame, ""))
	img := element(atom.Img, r.theme.Class(SlotFigureImage, ""))
	img.Attr = append([]html.Attribute{
		{Key: "src", Val: AssetURL(f.Source)},
		{Key: "alt", Val: f.Alt},
		{Key: "width", Val: strconv.Itoa(figureWidth)},
		{Key: "height", Val: strconv.Itoa(figureHeight)},
		{Key: "loading", Val: "lazy"},
	}, img.Attr...)
	frame.AppendChild(img)
	fig.AppendChild(frame)
	fig.AppendChild(withText(element(atom.Figcaption, r.theme.Class(SlotCaption, "")), f.Caption))
	return fig
}

// AssetURL percent-encodes a site-relative asset path. Remote URLs are kept.
func AssetURL(src string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	return (&url.URL{Path: src}).EscapedPath()
}

func element(tag atom.Atom, class string, attrs ...html.Attribute) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: tag, Data: tag.String()}
	n.Attr = append(n.Attr, attrs...)
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	return n
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return n
}

func attr(key, val string) html.Attribute { return html.Attribute{Key: key, Val: val} }
