package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/catenary/site/internal/compose"
	"github.com/catenary/site/internal/content"
	"github.com/catenary/site/internal/document"
	"github.com/catenary/site/internal/nav"
	"github.com/catenary/site/internal/seo"
)

func query(t *testing.T, s string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		t.Fatalf("goquery: %v", err)
	}
	return doc
}

func pages(t *testing.T) (*compose.Page, *compose.Page) {
	t.Helper()
	site, err := seo.NewSite(seo.DefaultSite())
	if err != nil {
		t.Fatal(err)
	}
	c, err := compose.New(site)
	if err != nil {
		t.Fatal(err)
	}
	b, err := content.Load(content.Default())
	if err != nil {
		t.Fatal(err)
	}
	home, err := c.Landing(b.Landing, "")
	if err != nil {
		t.Fatal(err)
	}
	wp, err := c.Whitepaper(b.Whitepaper)
	if err != nil {
		t.Fatal(err)
	}
	return home, wp
}

func TestParagraphClassOverride(t *testing.T) {
	r := NewHTML(nil)
	out := r.String(document.P(document.Text("Maximize")).WithClass("text-center italic my-2"))
	want := `<p class="my-4 text-base sm:text-lg text-white/80 leading-relaxed text-center italic my-2">Maximize</p>`
	if out != want {
		t.Errorf("got  %s\nwant %s", out, want)
	}
}

func TestTextIsEscaped(t *testing.T) {
	out := NewHTML(nil).String(document.P(document.Text(`<script>alert("x")</script>`)))
	if strings.Contains(out, "<script>") {
		t.Errorf("unescaped text: %s", out)
	}
}

func TestFigure(t *testing.T) {
	fig, err := document.Figure("images/wip/PoL Mechanism.png", "PoL diagram", "Figure 5: PoL Mechanism")
	if err != nil {
		t.Fatal(err)
	}
	doc := query(t, NewHTML(nil).String(fig))
	img := doc.Find("figure > div > img")
	if src, _ := img.Attr("src"); src != "/images/wip/PoL%20Mechanism.png" {
		t.Errorf("src = %q", src)
	}
	if w, _ := img.Attr("width"); w != "800" {
		t.Errorf("width = %q", w)
	}
	if got := doc.Find("figcaption").Text(); got != "Figure 5: PoL Mechanism" {
		t.Errorf("caption = %q", got)
	}
}

func TestNestedListStyles(t *testing.T) {
	n := document.BulletList(
		document.Item(document.Text("outer"), document.BulletList(document.Item(document.Text("inner")))),
	)
	doc := query(t, NewHTML(nil).String(n))
	if cls, _ := doc.Find("ul").First().Attr("class"); !strings.HasPrefix(cls, "list-disc") {
		t.Errorf("outer class = %q", cls)
	}
	if cls, _ := doc.Find("ul ul").Attr("class"); !strings.HasPrefix(cls, "list-circle") {
		t.Errorf("inner class = %q", cls)
	}
}

func TestTable(t *testing.T) {
	tbl := document.Table(
		document.Head(document.TH(document.Text("Retries")), document.TH(document.Text("Proportion"))),
		document.Row(document.TD(document.Text("0")), document.TD(document.Text("0.9837"))),
	)
	doc := query(t, NewHTML(nil).String(tbl))
	if doc.Find("div > table > thead > tr > th[scope=col]").Length() != 2 {
		t.Error("header cells missing scope")
	}
	if got := doc.Find("tbody td").Last().Text(); got != "0.9837" {
		t.Errorf("cell = %q", got)
	}
}

func TestMathBlockVerbatim(t *testing.T) {
	out := NewHTML(nil).String(document.MathBlock("a < b && c"))
	doc := query(t, out)
	if got := doc.Find("div > pre > code").Text(); got != "a < b && c" {
		t.Errorf("math = %q", got)
	}
}

func TestWhitepaperPage(t *testing.T) {
	_, wp := pages(t)
	out, err := NewPages(nil).Bytes(wp, nav.Closed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("<!DOCTYPE html>")) {
		t.Errorf("missing doctype: %.40s", out)
	}
	doc := query(t, string(out))

	if got := doc.Find("title").Text(); got != wp.Metadata.Title {
		t.Errorf("title = %q", got)
	}
	if cls, _ := doc.Find("body").Attr("class"); cls != "antialiased" {
		t.Errorf("body class = %q", cls)
	}
	if href, _ := doc.Find(`link[rel=canonical]`).Attr("href"); href != "https://catenary.xyz/whitepaper" {
		t.Errorf("canonical = %q", href)
	}
	if v, _ := doc.Find(`meta[property="og:type"]`).Attr("content"); v != "article" {
		t.Errorf("og:type = %q", v)
	}

	var headings []string
	doc.Find("article > section > h2").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, strings.Fields(s.Text())[0])
	})
	if got := strings.Join(headings, ","); got != "Abstract,1,2,3,4,5,6,7,8,9,10" {
		t.Errorf("sections = %s", got)
	}
	if doc.Find("article > hr").Length() != 1 || doc.Find("article > h1").Length() != 1 {
		t.Error("divider or document heading missing")
	}

	var articles int
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var one map[string]any
		if json.Unmarshal([]byte(s.Text()), &one) == nil && one["@type"] == "TechArticle" {
			articles++
			if one["headline"] != "Catenary v0.1 Whitepaper | L3 Financial Infrastructure" {
				t.Errorf("headline = %v", one["headline"])
			}
		}
	})
	if articles != 1 {
		t.Errorf("TechArticle scripts = %d", articles)
	}
}

func TestLandingMenuStates(t *testing.T) {
	home, _ := pages(t)
	p := NewPages(nil)

	closed, err := p.Bytes(home, nav.Closed)
	if err != nil {
		t.Fatal(err)
	}
	doc := query(t, string(closed))
	if doc.Find("#"+MenuID).Length() != 0 {
		t.Error("closed page renders the menu panel")
	}
	toggle := doc.Find(`header a[aria-label="Toggle menu"]`)
	if v, _ := toggle.Attr("aria-expanded"); v != "false" {
		t.Errorf("aria-expanded = %q", v)
	}
	if href, _ := toggle.Attr("href"); href != "/?menu=open" {
		t.Errorf("toggle href = %q", href)
	}

	open, _ := p.Bytes(home, nav.Open)
	doc = query(t, string(open))
	links := doc.Find("#" + MenuID + " nav a")
	if links.Length() != 3 {
		t.Fatalf("menu links = %d", links.Length())
	}
	if href, _ := links.Eq(0).Attr("href"); href != "/" {
		t.Errorf("Build href = %q", href)
	}
	if target, _ := links.Eq(2).Attr("target"); target != "_blank" {
		t.Errorf("Docs target = %q", target)
	}
	if rel, _ := links.Eq(2).Attr("rel"); rel != "noopener noreferrer" {
		t.Errorf("Docs rel = %q", rel)
	}
}

func TestLandingBlocks(t *testing.T) {
	home, _ := pages(t)
	out, _ := NewPages(nil).Bytes(home, nav.Closed)
	doc := query(t, string(out))
	if got := doc.Find("main > section h1").Text(); got != "Next-Gen Decentralized Infrastructure for Global Trade" {
		t.Errorf("hero = %q", got)
	}
	if style, _ := doc.Find("main > section h1 span").First().Attr("style"); style != "color: #ffd230" {
		t.Errorf("accent style = %q", style)
	}
	if n := doc.Find("main > footer a").Length(); n != 2 {
		t.Errorf("social links = %d", n)
	}
	if doc.Find(`script[type="application/ld+json"]`).Length() != 1 {
		t.Error("landing should carry only the site JSON-LD block")
	}
}

func TestRenderDeterministic(t *testing.T) {
	_, wp := pages(t)
	p := NewPages(nil)
	a, _ := p.Bytes(wp, nav.Closed)
	b, _ := p.Bytes(wp, nav.Closed)
	if !bytes.Equal(a, b) {
		t.Error("rendering is not deterministic")
	}
}

func TestLiveReloadScript(t *testing.T) {
	home, _ := pages(t)
	out, _ := NewPages(nil, WithLiveReload("/events")).Bytes(home, nav.Closed)
	if !strings.Contains(string(out), `new EventSource("/events")`) {
		t.Error("live reload script missing")
	}
	plain, _ := NewPages(nil).Bytes(home, nav.Closed)
	if strings.Contains(string(plain), "EventSource") {
		t.Error("live reload script present without option")
	}
}

func TestBodyClassOption(t *testing.T) {
	home, _ := pages(t)
	out, _ := NewPages(nil, WithBodyClass("antialiased dark")).Bytes(home, nav.Closed)
	doc := query(t, string(out))
	if cls, _ := doc.Find("body").Attr("class"); cls != "antialiased dark" {
		t.Errorf("body class = %q", cls)
	}
}

func TestNavSchemeOption(t *testing.T) {
	home, _ := pages(t)
	p := NewPages(nil, WithNavScheme(nav.Path))

	closed, _ := p.Bytes(home, nav.Closed)
	toggle := query(t, string(closed)).Find(`header a[aria-label="Toggle menu"]`)
	if href, _ := toggle.Attr("href"); href != "/menu/" {
		t.Errorf("toggle href = %q", href)
	}

	open, _ := p.Bytes(home, nav.Open)
	doc := query(t, string(open))
	if href, _ := doc.Find(`header a[aria-label="Toggle menu"]`).Attr("href"); href != "/" {
		t.Errorf("open toggle href = %q", href)
	}
	if href, _ := doc.Find("#" + MenuID + " nav a").Eq(0).Attr("href"); href != "/" {
		t.Errorf("Build href = %q", href)
	}
}

func TestMarkdown(t *testing.T) {
	_, wp := pages(t)
	var buf bytes.Buffer
	if err := (Markdown{}).Document(&buf, wp.Article); err != nil {
		t.Fatal(err)
	}
	md := buf.String()
	for _, want := range []string{
		"# Catenary v0.1\n",
		"## Abstract\n",
		"## 10 Conclusion\n",
		"| Retries | Proportion |\n| --- | --- |\n",
		"```\nPenalty_i = SlashingPercentage × StakedAmount_i\n```",
		"![Diagram illustrating the Proof-of-Liquidity mechanism with scoring and rewards](</images/wip/PoL Mechanism.png>)",
		"- **Application Optimization:**",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownInline(t *testing.T) {
	got := (Markdown{}).String(document.P(
		document.Text("use "), document.Code(document.Text("a`b")), document.Text(" and "),
		document.Em(document.Text("x_y")),
	))
	if got != "use ``a`b`` and *x\\_y*\n" {
		t.Errorf("got %q", got)
	}
}

func TestMarkdownLineStartEscapes(t *testing.T) {
	tests := []struct{ text, want string }{
		{"1. Introduction", "1\\. Introduction\n"},
		{"2) second", "2\\) second\n"},
		{"# not a heading", "\\# not a heading\n"},
		{"- not a list", "\\- not a list\n"},
		{"> not a quote", "\\> not a quote\n"},
		{"---", "\\---\n"},
		{"10 Conclusion", "10 Conclusion\n"},
		{"AT&amp;T", "AT\\&amp;T\n"},
	}
	md := Markdown{}
	for _, tt := range tests {
		if got := md.String(document.P(document.Text(tt.text))); got != tt.want {
			t.Errorf("paragraph %q = %q, want %q", tt.text, got, tt.want)
		}
	}
	got := md.String(document.BulletList(document.Item(document.Text("- dash first"))))
	if got != "- \\- dash first\n" {
		t.Errorf("list item = %q", got)
	}
}
