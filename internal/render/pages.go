package render

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/catenary/site/internal/compose"
	"github.com/catenary/site/internal/hydrate"
	"github.com/catenary/site/internal/nav"
	"github.com/catenary/site/internal/seo"
)

const classArticleMain = "bg-background min-h-screen w-full flex flex-col items-center px-4 py-10 sm:px-8 sm:py-16"

// Pages renders complete HTML documents.
type Pages struct {
	html       *HTML
	bodyClass  string
	liveReload string
	urls       nav.Scheme
}

// PagesOption configures Pages.
type PagesOption func(*Pages)

// WithLiveReload adds a script that reloads the page when the server-sent
// events stream at path emits a reload event.
func WithLiveReload(path string) PagesOption {
	return func(p *Pages) { p.liveReload = path }
}

// WithBodyClass overrides the canonical body class.
func WithBodyClass(class string) PagesOption {
	return func(p *Pages) { p.bodyClass = class }
}

// WithNavScheme selects how menu links address the open and closed views.
// The default is nav.Query.
func WithNavScheme(sc nav.Scheme) PagesOption {
	return func(p *Pages) { p.urls = sc }
}

// NewPages returns a page renderer using theme for document components.
func NewPages(theme Theme, opts ...PagesOption) *Pages {
	p := &Pages{html: NewHTML(theme), bodyClass: hydrate.CanonicalBodyClass, urls: nav.Query}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render writes the page in the given menu state.
func (p *Pages) Render(w io.Writer, page *compose.Page, state nav.State) error {
	doc, err := p.Document(page, state)
	if err != nil {
		return err
	}
	return html.Render(w, doc)
}

// Bytes is Render into a byte slice.
func (p *Pages) Bytes(page *compose.Page, state nav.State) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf, page, state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Document builds the HTML tree of the page.
func (p *Pages) Document(page *compose.Page, state nav.State) (*html.Node, error) {
	head, err := p.head(page)
	if err != nil {
		return nil, err
	}

	body := element(atom.Body, "")
	switch {
	case page.Article != nil:
		main := element(atom.Main, classArticleMain)
		main.AppendChild(p.html.Article(page.Article))
		body.AppendChild(main)
	case page.Landing != nil:
		body.AppendChild(p.landing(page.Landing, page.Route, state))
	default:
		return nil, fmt.Errorf("render %s: page has no content", page.Route)
	}

	normalizer := hydrate.NewNormalizer(p.bodyClass)
	body.AppendChild(script("", normalizer.Script()))
	if p.liveReload != "" {
		body.AppendChild(script("", liveReloadScript(p.liveReload)))
	}

	root := element(atom.Html, "", attr("lang", "en"))
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)
	normalizer.Apply(doc)
	return doc, nil
}

func (p *Pages) head(page *compose.Page) (*html.Node, error) {
	head := element(atom.Head, "")
	head.AppendChild(element(atom.Meta, "", attr("charset", "utf-8")))
	head.AppendChild(element(atom.Meta, "", attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1")))
	head.AppendChild(withText(element(atom.Title, ""), page.Metadata.Title))
	for _, t := range page.Metadata.Tags() {
		key := "name"
		if t.Property {
			key = "property"
		}
		head.AppendChild(element(atom.Meta, "", attr(key, t.Name), attr("content", t.Content)))
	}
	head.AppendChild(element(atom.Link, "", attr("rel", "canonical"), attr("href", page.Metadata.Canonical)))

	for _, block := range page.JSONLD {
		payload, err := seo.MarshalJSONLD(block...)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", page.Route, err)
		}
		head.AppendChild(script("application/ld+json", string(payload)))
	}
	return head, nil
}

// script returns a script element. Its text is serialized verbatim, so the
// caller must not pass a "</script" sequence.
func script(typ, body string) *html.Node {
	s := element(atom.Script, "")
	if typ != "" {
		s.Attr = append(s.Attr, attr("type", typ))
	}
	s.AppendChild(&html.Node{Type: html.TextNode, Data: body})
	return s
}

func liveReloadScript(path string) string {
	return fmt.Sprintf(`(function(){var es=new EventSource(%q);es.addEventListener("content.reloaded",function(){location.reload()})})();`, path)
}
