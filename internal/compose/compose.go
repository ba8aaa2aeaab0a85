// Package compose assembles pages from content and site metadata.
package compose

import (
	"fmt"
	"time"

	"github.com/catenary/site/internal/apperr"
	"github.com/catenary/site/internal/content"
	"github.com/catenary/site/internal/document"
	"github.com/catenary/site/internal/models"
	"github.com/catenary/site/internal/seo"
)

// Routes of the composed pages.
const (
	RouteHome       = "/"
	RouteWhitepaper = "/whitepaper"
)

// Block names a fixed region of the landing page.
type Block string

const (
	BlockHeader   Block = "header"
	BlockHero     Block = "hero"
	BlockFeatures Block = "features"
	BlockUseCases Block = "use-cases"
	BlockFooter   Block = "footer"
)

// LandingBlocks is the render order of the landing page.
var LandingBlocks = []Block{BlockHeader, BlockHero, BlockFeatures, BlockUseCases, BlockFooter}

// Page is a composed page ready for rendering. Each entry of JSONLD becomes
// one structured-data script.
type Page struct {
	Route    string
	Metadata seo.PageMetadata
	JSONLD   [][]seo.Record
	Article  *document.Document
	Landing  *Landing
}

// Landing is the resolved landing layout for one hero variant.
type Landing struct {
	Variant string
	Hero    models.Hero
	Blocks  []Block
	Content *models.Landing
}

// Composer builds pages against one site definition.
type Composer struct {
	site        *seo.Site
	siteRecords []seo.Record
}

// New returns a Composer for site. The site-wide WebSite and Organization
// records are built once here.
func New(site *seo.Site) (*Composer, error) {
	web, err := seo.BuildStructuredData(seo.KindWebSite, seo.Fields{Name: site.SiteName, URL: site.URL})
	if err != nil {
		return nil, err
	}
	org, err := seo.BuildStructuredData(seo.KindOrganization, seo.Fields{
		Name:   site.Organization,
		URL:    site.URL,
		Logo:   site.ImageURL,
		SameAs: site.SameAs,
	})
	if err != nil {
		return nil, err
	}
	return &Composer{site: site, siteRecords: []seo.Record{web, org}}, nil
}

// Site returns the site definition.
func (c *Composer) Site() *seo.Site { return c.site }

// Whitepaper composes the article page: the abstract, a divider, the document
// heading and then every section in declaration order.
func (c *Composer) Whitepaper(wp *content.Whitepaper) (*Page, error) {
	body := make([]document.Node, 0, len(wp.Sections)+3)
	body = append(body,
		section(wp.Abstract),
		document.Divider(),
		document.H1(document.Text(wp.Heading)),
	)
	for _, s := range wp.Sections {
		body = append(body, section(s))
	}

	meta := seo.BuildPageMetadata(c.site, seo.PageOverrides{
		Title:         wp.Meta.Title,
		Description:   wp.Meta.Description,
		OpenGraphType: wp.Meta.Type,
		Path:          wp.Meta.Path,
		PublishedTime: wp.Meta.Published,
		Authors:       wp.Meta.Authors,
	})

	f := seo.Fields{
		Headline:      wp.Meta.Title,
		Description:   wp.Meta.Description,
		Image:         c.site.ImageURL,
		DatePublished: wp.Meta.Published,
		DateModified:  orDefault(wp.Meta.Modified, wp.Meta.Published),
		Page:          meta.Canonical,
		Keywords:      wp.Meta.Keywords,
	}
	if wp.Meta.Author.Name != "" {
		f.Author = &seo.Person{Name: wp.Meta.Author.Name, URL: wp.Meta.Author.URL}
	}
	if wp.Meta.Publisher.Name != "" {
		f.Publisher = &seo.Publisher{Name: wp.Meta.Publisher.Name}
		if wp.Meta.Publisher.Logo != "" {
			f.Publisher.Logo = c.site.Resolve(wp.Meta.Publisher.Logo)
		}
	}
	article, err := seo.BuildStructuredData(seo.KindTechArticle, f)
	if err != nil {
		return nil, fmt.Errorf("whitepaper: %w", err)
	}

	return &Page{
		Route:    RouteWhitepaper,
		Metadata: meta,
		JSONLD:   [][]seo.Record{c.siteRecords, {article}},
		Article:  &document.Document{Title: wp.Byline.Document(), Body: body},
	}, nil
}

// Landing composes the landing page with the hero copy of variant.
func (c *Composer) Landing(l *models.Landing, variant string) (*Page, error) {
	if variant == "" {
		variant = models.VariantPrimary
	}
	hero, ok := l.Heroes[variant]
	if !ok {
		return nil, fmt.Errorf("landing variant %q: %w", variant, apperr.ErrUnknownVariant)
	}
	return &Page{
		Route: RouteHome,
		Metadata: seo.BuildPageMetadata(c.site, seo.PageOverrides{
			Title:       l.Title,
			Description: l.Description,
		}),
		JSONLD: [][]seo.Record{c.siteRecords},
		Landing: &Landing{
			Variant: variant,
			Hero:    hero,
			Blocks:  append([]Block(nil), LandingBlocks...),
			Content: l,
		},
	}, nil
}

// Bundle composes every page of a content bundle in route order.
func (c *Composer) Bundle(b *content.Bundle, variant string) ([]*Page, error) {
	home, err := c.Landing(b.Landing, variant)
	if err != nil {
		return nil, err
	}
	wp, err := c.Whitepaper(b.Whitepaper)
	if err != nil {
		return nil, err
	}
	return []*Page{home, wp}, nil
}

func section(s content.Section) document.Node {
	kids := make([]document.Node, 0, len(s.Blocks)+1)
	kids = append(kids, document.H2(document.Text(s.Title)))
	kids = append(kids, s.Blocks.Nodes()...)
	return document.Section(kids...)
}

func orDefault(t, def time.Time) time.Time {
	if t.IsZero() {
		return def
	}
	return t
}
