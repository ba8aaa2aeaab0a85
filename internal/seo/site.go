// Package seo builds page metadata and JSON-LD structured data from site-wide
// defaults and per-page overrides.
package seo

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SiteDefaults is the site-wide metadata, usually read from config.yaml.
type SiteDefaults struct {
	Title         string   `yaml:"title"`
	TitleTemplate string   `yaml:"title_template"`
	Description   string   `yaml:"description"`
	URL           string   `yaml:"url"`
	ImageURL      string   `yaml:"image_url"`
	ImageAlt      string   `yaml:"image_alt"`
	ImageWidth    int      `yaml:"image_width"`
	ImageHeight   int      `yaml:"image_height"`
	Locale        string   `yaml:"locale"`
	SiteName      string   `yaml:"site_name"`
	Organization  string   `yaml:"organization"`
	SameAs        []string `yaml:"same_as"`
}

// Validate validates the site defaults.
func (d *SiteDefaults) Validate() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.Title, validation.Required),
		validation.Field(&d.TitleTemplate, validation.Required, validation.By(containsPlaceholder)),
		validation.Field(&d.Description, validation.Required),
		validation.Field(&d.URL, validation.Required, validation.By(absoluteURL)),
		validation.Field(&d.ImageWidth, validation.Min(0)),
		validation.Field(&d.ImageHeight, validation.Min(0)),
		validation.Field(&d.Locale, validation.Required),
		validation.Field(&d.SiteName, validation.Required),
		validation.Field(&d.Organization, validation.Required),
		validation.Field(&d.SameAs, validation.Each(validation.By(absoluteURL))),
	)
}

func containsPlaceholder(v any) error {
	s, _ := v.(string)
	if !strings.Contains(s, "%s") {
		return errors.New("must contain %s")
	}
	return nil
}

func absoluteURL(v any) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
}

// DefaultSite returns the defaults of catenary.xyz.
func DefaultSite() SiteDefaults {
	return SiteDefaults{
		Title:         "Catenary | Next-Gen Decentralized Infrastructure for Global Trade",
		TitleTemplate: "%s | Catenary",
		Description: "Catenary is a specialized Layer 3 network built on the OP Stack, featuring a native CLOB, " +
			"intent-based system (Geass), and AI connector (MSAC) to accelerate cross-border trade settlement " +
			"and financial innovation.",
		URL:          "https://catenary.xyz",
		ImageURL:     "/images/catenary-logo.png",
		ImageAlt:     "Catenary Logo",
		ImageWidth:   1200,
		ImageHeight:  630,
		Locale:       "en_US",
		SiteName:     "Catenary",
		Organization: "Catenary Foundation",
		SameAs:       []string{"https://x.com/CatenaryFDN", "https://discord.com/invite/catenary"},
	}
}

// Site is a validated SiteDefaults with its base URL resolved.
type Site struct {
	SiteDefaults
	base *url.URL
}

// NewSite validates d and resolves the image URL against the site URL.
func NewSite(d SiteDefaults) (*Site, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("site defaults: %w", err)
	}
	base, err := url.Parse(strings.TrimRight(d.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("site url: %w", err)
	}
	s := &Site{SiteDefaults: d, base: base}
	s.URL = base.String()
	if d.ImageURL != "" {
		s.ImageURL = s.Resolve(d.ImageURL)
	}
	return s, nil
}

// Resolve returns the absolute URL of a site-relative path. Absolute URLs are
// returned unchanged.
func (s *Site) Resolve(ref string) string {
	if ref == "" || ref == "/" {
		return s.base.String()
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if u.IsAbs() {
		return ref
	}
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	return s.base.ResolveReference(u).String()
}
