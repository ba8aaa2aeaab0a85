package render

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/catenary/site/internal/document"
)

// Markdown renders document nodes as CommonMark with pipe tables.
type Markdown struct{}

// Document writes the whole article: title block, then body blocks.
func (Markdown) Document(w io.Writer, d *document.Document) error {
	var b strings.Builder
	writeTitleBlock(&b, d.Title)
	for _, n := range d.Body {
		block(&b, n, "")
	}
	_, err := io.WriteString(w, strings.TrimRight(b.String(), "\n")+"\n")
	return err
}

// String returns the Markdown of a single block node.
func (Markdown) String(n document.Node) string {
	var b strings.Builder
	block(&b, n, "")
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeTitleBlock(b *strings.Builder, t document.TitleBlock) {
	if t.Title == "" {
		return
	}
	fmt.Fprintf(b, "# %s\n\n", t.Title)
	var lines []string
	for _, s := range []string{t.Author, t.Organization} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	if t.Contact != "" {
		lines = append(lines, "`"+t.Contact+"`")
	}
	if t.Date != "" {
		lines = append(lines, t.Date)
	}
	if len(lines) > 0 {
		b.WriteString(strings.Join(lines, "  \n"))
		b.WriteString("\n\n")
	}
}

// block writes a block-level node followed by a blank line. indent prefixes
// every line for content nested in list items.
func block(b *strings.Builder, n document.Node, indent string) {
	switch n.Kind() {
	case document.KindSection:
		for _, c := range n.Children() {
			block(b, c, indent)
		}
	case document.KindHeading:
		fmt.Fprintf(b, "%s%s %s\n\n", indent, strings.Repeat("#", n.Level()), inline(n))
	case document.KindParagraph:
		fmt.Fprintf(b, "%s%s\n\n", indent, escapeLineStart(inline(n)))
	case document.KindList:
		list(b, n, indent)
		b.WriteString("\n")
	case document.KindMathBlock:
		fmt.Fprintf(b, "%s```\n", indent)
		for _, line := range strings.Split(n.Text(), "\n") {
			fmt.Fprintf(b, "%s%s\n", indent, line)
		}
		fmt.Fprintf(b, "%s```\n\n", indent)
	case document.KindFigure:
		f, _ := n.Figure()
		fmt.Fprintf(b, "%s![%s](<%s>)\n\n%s*%s*\n\n", indent, escapeMarkdown(f.Alt), f.Source, indent, escapeMarkdown(f.Caption))
	case document.KindDivider:
		fmt.Fprintf(b, "%s---\n\n", indent)
	case document.KindTable:
		table(b, n, indent)
	default:
		fmt.Fprintf(b, "%s%s\n\n", indent, inline(n))
	}
}

func list(b *strings.Builder, n document.Node, indent string) {
	for i, item := range n.Children() {
		marker := "- "
		if n.Ordered() {
			marker = fmt.Sprintf("%d. ", i+1)
		}
		pad := indent + strings.Repeat(" ", len(marker))
		var text []string
		first := true
		flush := func() {
			if len(text) == 0 {
				return
			}
			prefix := pad
			if first {
				prefix = indent + marker
				first = false
			}
			fmt.Fprintf(b, "%s%s\n", prefix, escapeLineStart(strings.Join(text, "")))
			text = nil
		}
		for _, c := range item.Children() {
			switch c.Kind() {
			case document.KindList:
				flush()
				if first {
					fmt.Fprintf(b, "%s%s\n", indent, strings.TrimRight(marker, " "))
					first = false
				}
				list(b, c, pad)
			case document.KindMathBlock:
				flush()
				if first {
					fmt.Fprintf(b, "%s%s\n", indent, strings.TrimRight(marker, " "))
					first = false
				}
				b.WriteString("\n")
				var sub strings.Builder
				block(&sub, c, pad)
				b.WriteString(sub.String())
			default:
				text = append(text, inlineNode(c))
			}
		}
		flush()
		if first {
			fmt.Fprintf(b, "%s%s\n", indent, strings.TrimRight(marker, " "))
		}
	}
}

func table(b *strings.Builder, n document.Node, indent string) {
	var rows [][]string
	for _, section := range n.Children() {
		for _, row := range section.Children() {
			var cells []string
			for _, cell := range row.Children() {
				cells = append(cells, strings.ReplaceAll(inline(cell), "|", `\|`))
			}
			rows = append(rows, cells)
		}
	}
	if len(rows) == 0 {
		return
	}
	writeRow := func(cells []string) {
		fmt.Fprintf(b, "%s| %s |\n", indent, strings.Join(cells, " | "))
	}
	writeRow(rows[0])
	sep := make([]string, len(rows[0]))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(sep)
	for _, r := range rows[1:] {
		writeRow(r)
	}
	b.WriteString("\n")
}

func inline(n document.Node) string {
	var b strings.Builder
	for _, c := range n.Children() {
		b.WriteString(inlineNode(c))
	}
	return b.String()
}

func inlineNode(n document.Node) string {
	switch n.Kind() {
	case document.KindText:
		return escapeMarkdown(n.Text())
	case document.KindInlineCode:
		return codeSpan(document.PlainText(n))
	case document.KindStrong:
		return "**" + inline(n) + "**"
	case document.KindEmphasis:
		return "*" + inline(n) + "*"
	default:
		return escapeMarkdown(document.PlainText(n))
	}
}

func codeSpan(s string) string {
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

var charRef = regexp.MustCompile(`&(#[0-9]+|#[xX][0-9a-fA-F]+|[A-Za-z][A-Za-z0-9]*);`)

func escapeMarkdown(s string) string {
	return charRef.ReplaceAllString(markdownEscaper.Replace(s), `\$0`)
}

// Line starts that CommonMark reads as block syntax.
var (
	orderedMarker = regexp.MustCompile(`^(\d{1,9})([.)])(\s|$)`)
	lineMarker    = regexp.MustCompile(`^(#{1,6}|[-+])(\s|$)|^>`)
	thematicBreak = regexp.MustCompile(`^-(\s*-){2,}\s*$`)
)

// escapeLineStart keeps s a paragraph when it is written at the start of a
// line.
func escapeLineStart(s string) string {
	switch {
	case orderedMarker.MatchString(s):
		return orderedMarker.ReplaceAllString(s, `$1\$2$3`)
	case lineMarker.MatchString(s), thematicBreak.MatchString(s):
		return `\` + s
	}
	return s
}
