package render

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/catenary/site/internal/compose"
	"github.com/catenary/site/internal/models"
	"github.com/catenary/site/internal/nav"
)

const gold = "#ffd230"

// MenuID is the id of the menu panel referenced by the toggle.
const MenuID = "site-menu"

const (
	classLandingMain = "bg-background min-h-screen w-full flex flex-col items-center"
	classHeader      = "sticky top-0 z-50 w-full flex items-center justify-between px-4 sm:px-8 py-2 bg-background/80 backdrop-blur-md border-b border-white/10"
	classHeaderLogo  = "sm:w-[108px] sm:h-[30px] object-contain"
	classToggle      = "text-white p-2"
	classMenu        = "absolute top-full right-0 mt-1 w-48 bg-background/90 backdrop-blur-md border border-white/10 rounded-lg shadow-lg py-2 z-50"
	classMenuNav     = "flex flex-col px-4 py-2 gap-3"
	classMenuLink    = "text-white hover:text-primary"

	classHero      = "relative flex flex-col items-center justify-center min-h-[380px] sm:min-h-[480px] md:min-h-[540px] px-4 sm:px-6 pt-16 sm:pt-20 mb-[-40px] sm:mb-[-48px] overflow-hidden"
	classHeroInner = "relative z-10 flex flex-col items-center text-center gap-6"
	classHeroLogo  = "sm:w-[240px] sm:h-[68px] object-contain mb-[-10px]"
	classHeroTitle = "text-xl sm:text-2xl md:text-3xl lg:text-4xl font-bold text-white leading-tight"
	classCTA       = "bg-primary text-black font-semibold rounded-full px-6 py-2.5 sm:px-7 sm:py-3 mt-4 hover:scale-105 transition shadow-md shadow-primary/30"

	classWhy      = "relative flex flex-col items-center py-16 sm:py-24 px-4 sm:px-6 bg-background w-full"
	classWhyInner = "w-full max-w-2xl lg:max-w-3xl text-center"
	classWhyLabel = "text-primary font-semibold text-xs sm:text-sm uppercase"
	classWhyTitle = "font-bold text-2xl sm:text-3xl text-white mt-2 mb-3 sm:mb-4"
	classWhyBody  = "text-white/80 text-base sm:text-lg"

	classFeatures     = "relative w-full px-4 sm:px-6 py-16 sm:py-20 bg-black flex gap-4 sm:gap-6 justify-center items-stretch flex-wrap overflow-hidden"
	classFeatureCard  = "relative z-10 bg-gradient-to-b from-primary/15 to-primary/5 border border-white/15 rounded-2xl p-4 sm:p-5 flex-1 min-w-[210px] sm:min-w-[180px] sm:max-w-xs flex flex-col gap-3 sm:gap-4 items-center text-center transition duration-300 ease-in-out shadow-inner shadow-black/10"
	classFeatureIcon  = "p-2 bg-black/20 rounded-full mb-3 inline-flex"
	classFeatureTitle = "font-semibold text-lg sm:text-xl text-white"
	classCardBody     = "text-white/90 text-xs sm:text-sm"

	classUseCases      = "relative w-full flex flex-col items-center gap-8 sm:gap-12 py-16 sm:py-20 px-4 sm:px-6 bg-background"
	classUseCasesHead  = "text-white max-w-lg flex flex-col items-center text-center"
	classUseCasesTitle = "text-lg sm:text-xl md:text-2xl mb-4 font-bold leading-tight"
	classUseCaseGrid   = "w-full flex flex-col sm:flex-row flex-wrap justify-center gap-6 sm:gap-8 max-w-3xl lg:max-w-5xl"
	classUseCaseCard   = "flex-1 min-w-[195px] sm:min-w-[210px] sm:max-w-xs bg-gradient-to-b from-primary/15 to-primary/5 border border-white/15 rounded-2xl p-4 sm:p-5 shadow-lg flex flex-col justify-start relative backdrop-blur-sm transition duration-300 ease-in-out"
	classUseCaseLabel  = "uppercase text-xs text-primary tracking-wide font-semibold"
	classUseCaseTitle  = "font-semibold text-base sm:text-lg text-white leading-snug"

	classFooter      = "relative w-full bg-black py-4 overflow-hidden mt-auto"
	classFooterInner = "relative z-10 w-full max-w-5xl mx-auto px-6 flex flex-col items-center justify-center gap-4"
	classCopyright   = "text-white text-xs opacity-50"
	classSocialRow   = "flex items-center justify-center gap-4"
	classSocialLink  = "w-5 h-5 flex items-center justify-center rounded-full bg-white/10 border border-white/20 text-white hover:bg-primary hover:text-black hover:border-primary transition duration-300 ease-in-out group"
	classSocialIcon  = "opacity-80 group-hover:opacity-100 transition"
)

// Menu icon paths.
const (
	iconOpen  = "M4 6h16M4 12h16m-7 6h7"
	iconClose = "M6 18L18 6M6 6l12 12"
)

// landing renders the blocks of a landing page in order.
func (p *Pages) landing(l *compose.Landing, route string, state nav.State) *html.Node {
	main := element(atom.Main, classLandingMain)
	for _, b := range l.Blocks {
		var n *html.Node
		switch b {
		case compose.BlockHeader:
			n = header(l.Content, p.urls, route, state)
		case compose.BlockHero:
			n = hero(l.Content.Logo, l.Hero)
		case compose.BlockFeatures:
			why := whyBlock(l.Content.Why)
			main.AppendChild(why)
			n = features(l.Content.Features)
		case compose.BlockUseCases:
			n = useCases(l.Content.UseCases)
		case compose.BlockFooter:
			n = footer(l.Content.Footer)
		}
		if n != nil {
			main.AppendChild(n)
		}
	}
	return main
}

func header(c *models.Landing, urls nav.Scheme, route string, state nav.State) *html.Node {
	h := element(atom.Header, classHeader)

	logo := element(atom.Div, "flex items-center gap-2")
	home := element(atom.A, "", attr("href", compose.RouteHome))
	home.AppendChild(image(models.Image{Src: c.Logo.Src, Alt: c.Logo.Alt, Width: 43, Height: 12}, classHeaderLogo))
	logo.AppendChild(home)
	h.AppendChild(logo)

	toggle := element(atom.A, classToggle,
		attr("href", urls.ToggleURL(route, state)),
		attr("role", "button"),
		attr("aria-label", "Toggle menu"),
		attr("aria-expanded", strconv.FormatBool(state == nav.Open)),
		attr("aria-controls", MenuID),
	)
	icon := iconOpen
	if state == nav.Open {
		icon = iconClose
	}
	toggle.AppendChild(menuIcon(icon))
	h.AppendChild(toggle)

	if state == nav.Open {
		panel := element(atom.Div, classMenu, attr("id", MenuID))
		menu := element(atom.Nav, classMenuNav)
		for _, link := range c.Nav {
			menu.AppendChild(menuLink(urls, route, link))
		}
		panel.AppendChild(menu)
		h.AppendChild(panel)
	}
	return h
}

func menuLink(urls nav.Scheme, route string, link models.Link) *html.Node {
	a := element(atom.A, classMenuLink, attr("href", urls.SelectURL(route, link.Href)))
	if link.External {
		a.Attr = append(a.Attr, attr("target", "_blank"), attr("rel", "noopener noreferrer"))
	}
	return withText(a, link.Label)
}

func menuIcon(d string) *html.Node {
	svg := &html.Node{Type: html.ElementNode, DataAtom: atom.Svg, Data: "svg", Attr: []html.Attribute{
		attr("xmlns", "http://www.w3.org/2000/svg"),
		attr("class", "h-6 w-6"),
		attr("fill", "none"),
		attr("viewBox", "0 0 24 24"),
		attr("stroke", "currentColor"),
		attr("aria-hidden", "true"),
	}}
	svg.AppendChild(&html.Node{Type: html.ElementNode, Data: "path", Attr: []html.Attribute{
		attr("stroke-linecap", "round"),
		attr("stroke-linejoin", "round"),
		attr("stroke-width", "2"),
		attr("d", d),
	}})
	return svg
}

func hero(logo models.Image, h models.Hero) *html.Node {
	sec := element(atom.Section, classHero)
	inner := element(atom.Div, classHeroInner)
	inner.AppendChild(image(logo, classHeroLogo))
	inner.AppendChild(segments(element(atom.H1, classHeroTitle), h.Headline))
	inner.AppendChild(withText(element(atom.A, classCTA, attr("href", h.CTA.Href)), h.CTA.Label))
	sec.AppendChild(inner)
	return sec
}

func whyBlock(w models.Why) *html.Node {
	sec := element(atom.Section, classWhy)
	inner := element(atom.Div, classWhyInner)
	inner.AppendChild(withText(element(atom.Span, classWhyLabel), w.Label))
	inner.AppendChild(withText(element(atom.H2, classWhyTitle), w.Title))
	inner.AppendChild(withText(element(atom.P, classWhyBody), w.Body))
	sec.AppendChild(inner)
	return sec
}

func features(cards []models.FeatureCard) *html.Node {
	sec := element(atom.Section, classFeatures)
	for _, c := range cards {
		card := element(atom.Div, classFeatureCard)
		if c.Icon != nil {
			wrap := element(atom.Div, classFeatureIcon)
			wrap.AppendChild(image(*c.Icon, "sm:w-9 sm:h-9"))
			card.AppendChild(wrap)
		}
		card.AppendChild(segments(element(atom.H3, classFeatureTitle), c.Title))
		card.AppendChild(withText(element(atom.P, classCardBody), c.Body))
		sec.AppendChild(card)
	}
	return sec
}

func useCases(u models.UseCases) *html.Node {
	sec := element(atom.Section, classUseCases)
	head := element(atom.Div, classUseCasesHead)
	head.AppendChild(segments(element(atom.H2, classUseCasesTitle), u.Title))
	sec.AppendChild(head)

	grid := element(atom.Div, classUseCaseGrid)
	for _, c := range u.Cards {
		card := element(atom.Div, classUseCaseCard)
		card.AppendChild(withText(element(atom.Span, classUseCaseLabel), c.Label))
		card.AppendChild(withText(element(atom.H3, classUseCaseTitle), c.Title))
		card.AppendChild(withText(element(atom.P, classCardBody), c.Body))
		grid.AppendChild(card)
	}
	sec.AppendChild(grid)
	return sec
}

func footer(f models.Footer) *html.Node {
	ft := element(atom.Footer, classFooter)
	inner := element(atom.Div, classFooterInner)
	inner.AppendChild(withText(element(atom.Div, classCopyright), f.Copyright))
	row := element(atom.Div, classSocialRow)
	for _, s := range f.Social {
		a := element(atom.A, classSocialLink, attr("href", s.URL))
		a.AppendChild(withText(element(atom.Span, "sr-only"), s.Label))
		a.AppendChild(image(s.Icon, classSocialIcon))
		row.AppendChild(a)
	}
	inner.AppendChild(row)
	ft.AppendChild(inner)
	return ft
}

func segments(parent *html.Node, segs []models.Segment) *html.Node {
	for _, s := range segs {
		switch s.Accent {
		case models.AccentGold:
			parent.AppendChild(withText(element(atom.Span, "", attr("style", "color: "+gold)), s.Text))
		case models.AccentPrimary:
			parent.AppendChild(withText(element(atom.Span, "text-primary"), s.Text))
		default:
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: s.Text})
		}
	}
	return parent
}

func image(img models.Image, class string) *html.Node {
	attrs := []html.Attribute{attr("src", AssetURL(img.Src)), attr("alt", img.Alt)}
	if img.Width > 0 && img.Height > 0 {
		attrs = append(attrs, attr("width", strconv.Itoa(img.Width)), attr("height", strconv.Itoa(img.Height)))
	}
	return element(atom.Img, class, attrs...)
}
