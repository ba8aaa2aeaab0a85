// Package models defines the content types of the Catenary site.
package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Accent colors available to headline segments.
const (
	AccentNone    = ""
	AccentGold    = "gold"
	AccentPrimary = "primary"
)

// Hero variants.
const (
	VariantPrimary   = "primary"
	VariantAlternate = "alternate"
)

// Segment is a run of headline text with an optional accent.
type Segment struct {
	Text   string `yaml:"text" json:"text"`
	Accent string `yaml:"accent,omitempty" json:"accent,omitempty"`
}

func (s Segment) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Text, validation.Required),
		validation.Field(&s.Accent, validation.In(AccentGold, AccentPrimary)),
	)
}

// Image is a referenced asset. Width and height are hints for the renderer.
type Image struct {
	Src    string `yaml:"src" json:"src"`
	Alt    string `yaml:"alt" json:"alt"`
	Width  int    `yaml:"width,omitempty" json:"width,omitempty"`
	Height int    `yaml:"height,omitempty" json:"height,omitempty"`
}

func (i Image) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Src, validation.Required),
		validation.Field(&i.Alt, validation.Required),
	)
}

// Link is a labelled navigation target. External links open in a new tab.
type Link struct {
	Label    string `yaml:"label" json:"label"`
	Href     string `yaml:"href" json:"href"`
	External bool   `yaml:"external,omitempty" json:"external,omitempty"`
}

func (l Link) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Label, validation.Required),
		validation.Field(&l.Href, validation.Required),
	)
}

// IsNoop reports whether the link points nowhere ("#").
func (l Link) IsNoop() bool { return l.Href == "#" }

// Hero is the headline block under the header.
type Hero struct {
	Headline []Segment `yaml:"headline" json:"headline"`
	CTA      Link      `yaml:"cta" json:"cta"`
}

func (h Hero) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Headline, validation.Required),
		validation.Field(&h.CTA),
	)
}

// Why is the introductory feature block.
type Why struct {
	Label string `yaml:"label" json:"label"`
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
}

func (w Why) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Label, validation.Required),
		validation.Field(&w.Title, validation.Required),
		validation.Field(&w.Body, validation.Required),
	)
}

// FeatureCard highlights one property of the network.
type FeatureCard struct {
	Title []Segment `yaml:"title" json:"title"`
	Body  string    `yaml:"body" json:"body"`
	Icon  *Image    `yaml:"icon,omitempty" json:"icon,omitempty"`
}

func (c FeatureCard) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Body, validation.Required),
		validation.Field(&c.Icon),
	)
}

// UseCaseCard describes one application of the network.
type UseCaseCard struct {
	Label string `yaml:"label" json:"label"`
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
}

func (c UseCaseCard) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Label, validation.Required),
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Body, validation.Required),
	)
}

// UseCases groups the use-case cards under a headline.
type UseCases struct {
	Title []Segment     `yaml:"title" json:"title"`
	Cards []UseCaseCard `yaml:"cards" json:"cards"`
}

func (u UseCases) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Title, validation.Required),
		validation.Field(&u.Cards, validation.Required),
	)
}

// SocialLink is a footer icon link.
type SocialLink struct {
	Label string `yaml:"label" json:"label"` // screen-reader text
	URL   string `yaml:"url" json:"url"`
	Icon  Image  `yaml:"icon" json:"icon"`
}

func (s SocialLink) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Label, validation.Required),
		validation.Field(&s.URL, validation.Required),
		validation.Field(&s.Icon),
	)
}

// Footer closes every landing page.
type Footer struct {
	Copyright string       `yaml:"copyright" json:"copyright"`
	Social    []SocialLink `yaml:"social" json:"social"`
}

func (f Footer) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Copyright, validation.Required),
		validation.Field(&f.Social),
	)
}

// Landing is the content of the landing page. Heroes is keyed by variant.
type Landing struct {
	Title       string          `yaml:"title,omitempty" json:"title,omitempty"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Logo        Image           `yaml:"logo" json:"logo"`
	Nav         []Link          `yaml:"nav" json:"nav"`
	Heroes      map[string]Hero `yaml:"hero" json:"hero"`
	Why         Why             `yaml:"why" json:"why"`
	Features    []FeatureCard   `yaml:"features" json:"features"`
	UseCases    UseCases        `yaml:"use_cases" json:"use_cases"`
	Footer      Footer          `yaml:"footer" json:"footer"`
}

// Validate validates the landing content.
func (l *Landing) Validate() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.Logo),
		validation.Field(&l.Nav, validation.Required),
		validation.Field(&l.Heroes, validation.Required,
			validation.Map(validation.Key(VariantPrimary, validation.Required)).AllowExtraKeys()),
		validation.Field(&l.Why),
		validation.Field(&l.Features, validation.Required),
		validation.Field(&l.UseCases),
		validation.Field(&l.Footer),
	)
}
