// Package content loads the site's page descriptions from YAML files.
//
// The default content is embedded in the binary; a directory on disk can be
// used instead (see content.path in the configuration) and is re-read on change.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/catenary/site/internal/document"
	"github.com/catenary/site/internal/models"
)

// File names inside a content directory.
const (
	WhitepaperFile = "whitepaper.yaml"
	LandingFile    = "landing.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

// Default returns the embedded content tree.
func Default() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Person is an article author.
type Person struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Organization is an article publisher.
type Organization struct {
	Name string `yaml:"name"`
	Logo string `yaml:"logo"`
}

// Meta holds the per-page metadata overrides of an article.
type Meta struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Path        string       `yaml:"path"`
	Type        string       `yaml:"type"`
	Published   time.Time    `yaml:"published"`
	Modified    time.Time    `yaml:"modified"`
	Authors     []string     `yaml:"authors"`
	Author      Person       `yaml:"author"`
	Publisher   Organization `yaml:"publisher"`
	Keywords    []string     `yaml:"keywords"`
}

func (m *Meta) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Description, validation.Required),
		validation.Field(&m.Path, validation.Required),
	)
}

// Section is a titled group of body blocks.
type Section struct {
	Title  string `yaml:"title"`
	Blocks Blocks `yaml:"blocks"`
}

// Whitepaper is the long-form article.
type Whitepaper struct {
	Meta     Meta       `yaml:"meta"`
	Byline   TitleBlock `yaml:"title_block"`
	Abstract Section    `yaml:"abstract"`
	Heading  string     `yaml:"heading"`
	Sections []Section  `yaml:"sections"`
}

// TitleBlock mirrors document.TitleBlock with YAML tags.
type TitleBlock struct {
	Title        string `yaml:"title"`
	Author       string `yaml:"author"`
	Organization string `yaml:"organization"`
	Contact      string `yaml:"contact"`
	Date         string `yaml:"date"`
}

// Document returns the byline as a document.TitleBlock.
func (t TitleBlock) Document() document.TitleBlock {
	return document.TitleBlock(t)
}

func (w *Whitepaper) Validate() error {
	if err := w.Meta.Validate(); err != nil {
		return fmt.Errorf("meta: %w", err)
	}
	return validation.ValidateStruct(w,
		validation.Field(&w.Heading, validation.Required),
		validation.Field(&w.Sections, validation.Required),
	)
}

// Bundle is the full content set of the site.
type Bundle struct {
	Whitepaper *Whitepaper
	Landing    *models.Landing
}

// Load reads and validates both content files from fsys.
func Load(fsys fs.FS) (*Bundle, error) {
	wp := new(Whitepaper)
	if err := decodeFile(fsys, WhitepaperFile, wp); err != nil {
		return nil, err
	}
	landing := new(models.Landing)
	if err := decodeFile(fsys, LandingFile, landing); err != nil {
		return nil, err
	}
	return &Bundle{Whitepaper: wp, Landing: landing}, nil
}

type validator interface {
	Validate() error
}

func decodeFile(fsys fs.FS, name string, target validator) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	if err := target.Validate(); err != nil {
		return fmt.Errorf("validate %s: %w", name, err)
	}
	return nil
}
