package content

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/catenary/site/internal/document"
	"github.com/catenary/site/internal/parser"
)

// Block is one body element of a content file. It decodes from a mapping with a
// single kind key and an optional "class" override:
//
//	- p: "Plain **inline** markup"
//	- {p: "Maximize `f(S)`", class: "text-center italic my-2"}
//	- h3: "2.1 Traditional Cross-Border Payments"
//	- ul: ["item", {text: "item with a nested list", blocks: [{ul: [...]}]}]
//	- figure: {src: images/x.png, alt: "...", caption: "..."}
//	- math: "Penalty_i = SlashingPercentage × StakedAmount_i"
//	- table: {head: [A, B], rows: [[1, 2]]}
//	- hr: {}
type Block struct {
	Node document.Node
}

// Blocks is a decoded block sequence.
type Blocks []Block

// Nodes returns the document nodes of the sequence.
func (bs Blocks) Nodes() []document.Node {
	out := make([]document.Node, len(bs))
	for i, b := range bs {
		out[i] = b.Node
	}
	return out
}

// LineError locates a decoding failure in its content file.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }

func lineErr(n *yaml.Node, err error) error {
	var le *LineError
	if errors.As(err, &le) {
		return err
	}
	return &LineError{Line: n.Line, Err: err}
}

func lineErrf(n *yaml.Node, format string, args ...any) error {
	return &LineError{Line: n.Line, Err: fmt.Errorf(format, args...)}
}

func (b *Block) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return lineErrf(n, "block must be a mapping, got %s", kindName(n))
	}
	var (
		kind  string
		value *yaml.Node
		class string
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Value == "class" {
			if err := val.Decode(&class); err != nil {
				return lineErr(val, err)
			}
			continue
		}
		if kind != "" {
			return lineErrf(key, "block has both %q and %q", kind, key.Value)
		}
		kind, value = key.Value, val
	}
	if kind == "" {
		return lineErrf(n, "block has no kind")
	}

	node, err := decodeBlock(kind, value)
	if err != nil {
		return lineErr(value, err)
	}
	if class != "" {
		node = node.WithClass(class)
	}
	b.Node = node
	return nil
}

func decodeBlock(kind string, v *yaml.Node) (document.Node, error) {
	switch kind {
	case "h1", "h2", "h3":
		s, err := scalar(v)
		if err != nil {
			return document.Node{}, err
		}
		return document.Heading(int(kind[1]-'0'), parser.Inline(s)...)
	case "p":
		s, err := scalar(v)
		if err != nil {
			return document.Node{}, err
		}
		return document.P(parser.Inline(s)...), nil
	case "ul", "ol":
		items, err := decodeItems(v)
		if err != nil {
			return document.Node{}, err
		}
		if kind == "ol" {
			return document.OrderedList(items...), nil
		}
		return document.BulletList(items...), nil
	case "math":
		s, err := scalar(v)
		if err != nil {
			return document.Node{}, err
		}
		return document.MathBlock(strings.TrimRight(s, "\n")), nil
	case "figure":
		var f struct {
			Src     string `yaml:"src"`
			Alt     string `yaml:"alt"`
			Caption string `yaml:"caption"`
		}
		if err := v.Decode(&f); err != nil {
			return document.Node{}, err
		}
		return document.Figure(f.Src, f.Alt, f.Caption)
	case "table":
		return decodeTable(v)
	case "hr":
		return document.Divider(), nil
	default:
		return document.Node{}, fmt.Errorf("unknown block kind %q", kind)
	}
}

func decodeItems(v *yaml.Node) ([]document.Node, error) {
	if v.Kind != yaml.SequenceNode {
		return nil, lineErrf(v, "list must be a sequence, got %s", kindName(v))
	}
	items := make([]document.Node, 0, len(v.Content))
	for _, it := range v.Content {
		switch it.Kind {
		case yaml.ScalarNode:
			items = append(items, document.Item(parser.Inline(it.Value)...))
		case yaml.MappingNode:
			var rich struct {
				Text   string `yaml:"text"`
				Blocks Blocks `yaml:"blocks"`
				Tail   string `yaml:"tail"`
			}
			if err := it.Decode(&rich); err != nil {
				return nil, lineErr(it, err)
			}
			var kids []document.Node
			kids = append(kids, parser.Inline(rich.Text)...)
			kids = append(kids, rich.Blocks.Nodes()...)
			kids = append(kids, parser.Inline(rich.Tail)...)
			items = append(items, document.Item(kids...))
		default:
			return nil, lineErrf(it, "list item must be a string or mapping, got %s", kindName(it))
		}
	}
	return items, nil
}

func decodeTable(v *yaml.Node) (document.Node, error) {
	var t struct {
		Head []string   `yaml:"head"`
		Rows [][]string `yaml:"rows"`
	}
	if err := v.Decode(&t); err != nil {
		return document.Node{}, err
	}
	if len(t.Head) == 0 {
		return document.Node{}, fmt.Errorf("table has no header")
	}
	head := make([]document.HeaderCell, len(t.Head))
	for i, h := range t.Head {
		head[i] = document.TH(parser.Inline(h)...)
	}
	rows := make([]document.BodyRow, len(t.Rows))
	for i, r := range t.Rows {
		if len(r) != len(t.Head) {
			return document.Node{}, fmt.Errorf("table row %d has %d cells, header has %d", i+1, len(r), len(t.Head))
		}
		cells := make([]document.DataCell, len(r))
		for j, c := range r {
			cells[j] = document.TD(parser.Inline(c)...)
		}
		rows[i] = document.Row(cells...)
	}
	return document.Table(document.Head(head...), rows...), nil
}

func scalar(v *yaml.Node) (string, error) {
	if v.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("expected a string, got %s", kindName(v))
	}
	return v.Value, nil
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
