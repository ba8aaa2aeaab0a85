// Package hydrate resets the document body class to its canonical value once
// per page lifecycle, discarding classes injected by browser extensions before
// the page became interactive.
package hydrate

import (
	"encoding/json"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CanonicalBodyClass is the body class every page settles on.
const CanonicalBodyClass = "antialiased"

// Normalize sets the class attribute of the first <body> in doc to class,
// replacing any existing value. It reports whether a body was found.
func Normalize(doc *html.Node, class string) bool {
	body := findBody(doc)
	if body == nil {
		return false
	}
	for i, a := range body.Attr {
		if a.Namespace == "" && a.Key == "class" {
			body.Attr[i].Val = class
			return true
		}
	}
	body.Attr = append(body.Attr, html.Attribute{Key: "class", Val: class})
	return true
}

func findBody(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// Normalizer applies Normalize at most once. Create one per page lifecycle.
type Normalizer struct {
	class string
	once  sync.Once
}

// NewNormalizer returns a Normalizer for class. An empty class selects
// CanonicalBodyClass.
func NewNormalizer(class string) *Normalizer {
	if class == "" {
		class = CanonicalBodyClass
	}
	return &Normalizer{class: class}
}

// Class returns the class the normalizer enforces.
func (n *Normalizer) Class() string { return n.class }

// Apply normalizes doc on the first call and is a no-op afterwards. It
// reports whether this call did the work.
func (n *Normalizer) Apply(doc *html.Node) bool {
	ran := false
	n.once.Do(func() {
		Normalize(doc, n.class)
		ran = true
	})
	return ran
}

// Script returns the inline client script performing the same reset once the
// document has loaded.
func (n *Normalizer) Script() string {
	cls, _ := json.Marshal(n.class)
	return `(function(){var c=` + string(cls) + `;function r(){document.body.className=c}` +
		`if(document.readyState==="loading"){document.addEventListener("DOMContentLoaded",r,{once:true})}else{r()}})();`
}
