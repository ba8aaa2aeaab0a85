package document

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/catenary/site/internal/apperr"
)

// Text returns a plain-text leaf.
func Text(s string) Node { return Node{kind: KindText, text: s} }

// Section groups the blocks of one document section.
func Section(children ...Node) Node { return container(KindSection, children) }

// Heading returns a heading of the given level (1, 2 or 3).
func Heading(level int, children ...Node) (Node, error) {
	if level < 1 || level > 3 {
		return Node{}, fmt.Errorf("document: heading level %d out of range [1,3]", level)
	}
	n := container(KindHeading, children)
	n.level = level
	return n, nil
}

// H1 is a level 1 heading. The fixed-level constructors cannot fail, unlike
// Heading.
func H1(children ...Node) Node { return mustHeading(1, children) }

// H2 is a level 2 heading.
func H2(children ...Node) Node { return mustHeading(2, children) }

// H3 is a level 3 heading.
func H3(children ...Node) Node { return mustHeading(3, children) }

func mustHeading(level int, children []Node) Node {
	n := container(KindHeading, children)
	n.level = level
	return n
}

// P returns a paragraph.
func P(children ...Node) Node { return container(KindParagraph, children) }

// Code returns inline code.
func Code(children ...Node) Node { return container(KindInlineCode, children) }

// Strong returns strongly emphasized inline content.
func Strong(children ...Node) Node { return container(KindStrong, children) }

// Em returns emphasized inline content.
func Em(children ...Node) Node { return container(KindEmphasis, children) }

// Item returns a list item. Items may nest lists and math blocks.
func Item(children ...Node) Node { return container(KindListItem, children) }

// BulletList returns an unordered list of items.
func BulletList(items ...Node) Node { return container(KindList, items) }

// OrderedList returns a numbered list of items.
func OrderedList(items ...Node) Node {
	n := container(KindList, items)
	n.ordered = true
	return n
}

// MathBlock returns a preformatted formula. The expression is kept verbatim.
func MathBlock(expr string) Node { return Node{kind: KindMathBlock, text: expr} }

// Divider returns a thematic break.
func Divider() Node { return Node{kind: KindDivider} }

// Figure returns an image with a mandatory alt text and caption.
// The source path is normalized with NormalizeSourcePath.
func Figure(src, alt, caption string) (Node, error) {
	if err := validateSource(src); err != nil {
		return Node{}, err
	}
	if strings.TrimSpace(alt) == "" {
		return Node{}, &apperr.MissingFieldError{Record: "Figure", Field: "alt"}
	}
	if strings.TrimSpace(caption) == "" {
		return Node{}, &apperr.MissingFieldError{Record: "Figure", Field: "caption"}
	}
	return Node{
		kind: KindFigure,
		figure: &FigureData{
			Source:  NormalizeSourcePath(src),
			Alt:     alt,
			Caption: caption,
		},
	}, nil
}

// NormalizeSourcePath makes a site-relative image path absolute by prefixing
// "/". Remote http(s) URLs are returned unchanged.
func NormalizeSourcePath(src string) string {
	if isRemote(src) || strings.HasPrefix(src, "/") {
		return src
	}
	return "/" + src
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "http://")
}

func validateSource(src string) error {
	if strings.TrimSpace(src) == "" {
		return &apperr.AssetPathError{Path: src, Reason: "empty source"}
	}
	for _, r := range src {
		if unicode.IsControl(r) {
			return &apperr.AssetPathError{Path: src, Reason: "control character"}
		}
	}
	if strings.HasPrefix(src, "//") {
		return &apperr.AssetPathError{Path: src, Reason: "protocol-relative source"}
	}
	u, err := url.Parse(src)
	if err != nil {
		return &apperr.AssetPathError{Path: src, Reason: err.Error()}
	}
	if u.Scheme != "" && !isRemote(src) {
		return &apperr.AssetPathError{Path: src, Reason: "unsupported scheme " + u.Scheme}
	}
	if !isRemote(src) {
		for _, seg := range strings.Split(u.Path, "/") {
			if seg == ".." {
				return &apperr.AssetPathError{Path: src, Reason: "parent reference"}
			}
		}
	}
	return nil
}
