package seo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/catenary/site/internal/apperr"
)

const schemaContext = "https://schema.org"

// Kind is a schema.org record type.
type Kind string

const (
	KindWebSite      Kind = "WebSite"
	KindOrganization Kind = "Organization"
	KindTechArticle  Kind = "TechArticle"
)

// Record is one JSON-LD object.
type Record map[string]any

// Type returns the @type of the record.
func (r Record) Type() string {
	s, _ := r["@type"].(string)
	return s
}

// Person is an article author.
type Person struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Validate requires a name.
func (p Person) Validate() error {
	return validation.ValidateStruct(&p, validation.Field(&p.Name, validation.Required))
}

// Publisher is the organization that publishes an article.
type Publisher struct {
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// Validate requires a name. The logo is optional.
func (p Publisher) Validate() error {
	return validation.ValidateStruct(&p, validation.Field(&p.Name, validation.Required))
}

// Fields are the inputs of BuildStructuredData. Which fields are read depends
// on the kind.
type Fields struct {
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	Logo          string     `json:"logo"`
	SameAs        []string   `json:"sameAs"`
	Headline      string     `json:"headline"`
	Description   string     `json:"description"`
	Image         string     `json:"image"`
	Author        *Person    `json:"author"`
	Publisher     *Publisher `json:"publisher"`
	DatePublished time.Time  `json:"datePublished"`
	DateModified  time.Time  `json:"dateModified"`
	Page          string     `json:"mainEntityOfPage"`
	Keywords      []string   `json:"keywords"`
}

// required lists the mandatory fields per kind in reporting order.
var required = map[Kind][]string{
	KindWebSite:      {"name", "url"},
	KindOrganization: {"name", "url"},
	KindTechArticle:  {"headline", "author", "publisher"},
}

func (f *Fields) validate(kind Kind) error {
	var rules []*validation.FieldRules
	switch kind {
	case KindWebSite, KindOrganization:
		rules = append(rules,
			validation.Field(&f.Name, validation.Required),
			validation.Field(&f.URL, validation.Required),
		)
	case KindTechArticle:
		rules = append(rules,
			validation.Field(&f.Headline, validation.Required),
			validation.Field(&f.Author, validation.Required),
			validation.Field(&f.Publisher, validation.Required),
		)
	}
	err := validation.ValidateStruct(f, rules...)
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	for _, name := range required[kind] {
		if path, ok := missingPath(name, errs[name]); ok {
			return &apperr.MissingFieldError{Record: string(kind), Field: path}
		}
	}
	return err
}

// missingPath reports the dotted path of the first "required" failure in err.
func missingPath(name string, err error) (string, bool) {
	if err == nil {
		return "", false
	}
	var nested validation.Errors
	if errors.As(err, &nested) {
		for key, e := range nested {
			if p, ok := missingPath(key, e); ok {
				return name + "." + p, true
			}
		}
		return "", false
	}
	var ve validation.Error
	if errors.As(err, &ve) && ve.Code() == validation.ErrRequired.Code() {
		return name, true
	}
	return "", false
}

// BuildStructuredData returns the JSON-LD record of the given kind. A missing
// mandatory field yields an *apperr.MissingFieldError.
func BuildStructuredData(kind Kind, f Fields) (Record, error) {
	if _, ok := required[kind]; !ok {
		return nil, fmt.Errorf("structured data: unsupported kind %q", kind)
	}
	if err := f.validate(kind); err != nil {
		return nil, err
	}

	r := Record{"@context": schemaContext, "@type": string(kind)}
	switch kind {
	case KindWebSite:
		r["name"] = f.Name
		r["url"] = f.URL
	case KindOrganization:
		r["name"] = f.Name
		r["url"] = f.URL
		setString(r, "logo", f.Logo)
		if len(f.SameAs) > 0 {
			r["sameAs"] = append([]string(nil), f.SameAs...)
		}
	case KindTechArticle:
		r["headline"] = f.Headline
		setString(r, "description", f.Description)
		setString(r, "image", f.Image)
		author := map[string]any{"@type": "Person", "name": f.Author.Name}
		setString(author, "url", f.Author.URL)
		r["author"] = author
		publisher := map[string]any{"@type": "Organization", "name": f.Publisher.Name}
		if f.Publisher.Logo != "" {
			publisher["logo"] = map[string]any{"@type": "ImageObject", "url": f.Publisher.Logo}
		}
		r["publisher"] = publisher
		if !f.DatePublished.IsZero() {
			r["datePublished"] = f.DatePublished.UTC().Format(time.DateOnly)
		}
		if !f.DateModified.IsZero() {
			r["dateModified"] = f.DateModified.UTC().Format(time.DateOnly)
		}
		if f.Page != "" {
			r["mainEntityOfPage"] = map[string]any{"@type": "WebPage", "@id": f.Page}
		}
		if len(f.Keywords) > 0 {
			r["keywords"] = strings.Join(f.Keywords, ", ")
		}
	}
	return r, nil
}

func setString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

// MarshalJSONLD encodes one record as an object and several as an array. The
// output escapes <, > and & so it can be embedded in a script element.
func MarshalJSONLD(records ...Record) ([]byte, error) {
	switch len(records) {
	case 0:
		return nil, errors.New("structured data: no records")
	case 1:
		return json.Marshal(records[0])
	default:
		return json.Marshal(records)
	}
}
