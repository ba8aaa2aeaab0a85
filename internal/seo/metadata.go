package seo

import (
	"strconv"
	"strings"
	"time"
)

// PageOverrides are the per-page values that replace site defaults.
// Zero fields fall back to the site.
type PageOverrides struct {
	Title         string
	Description   string
	OpenGraphType string
	Path          string
	PublishedTime time.Time
	Authors       []string
}

// PageMetadata is the fully resolved metadata of one page.
type PageMetadata struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Canonical     string    `json:"canonical"`
	SiteName      string    `json:"site_name"`
	Locale        string    `json:"locale"`
	Image         string    `json:"image,omitempty"`
	ImageAlt      string    `json:"image_alt,omitempty"`
	ImageWidth    int       `json:"image_width,omitempty"`
	ImageHeight   int       `json:"image_height,omitempty"`
	OpenGraphType string    `json:"og_type"`
	PublishedTime time.Time `json:"published_time,omitzero"`
	Authors       []string  `json:"authors,omitempty"`
}

// Tag is one <meta> element. Property tags use the property attribute
// (Open Graph), the others use name.
type Tag struct {
	Name     string
	Property bool
	Content  string
}

// BuildPageMetadata merges overrides into the site defaults. The title is the
// site template applied to the override, or the bare site title without one.
func BuildPageMetadata(site *Site, o PageOverrides) PageMetadata {
	m := PageMetadata{
		Title:         site.Title,
		Description:   site.Description,
		Canonical:     site.Resolve(o.Path),
		SiteName:      site.SiteName,
		Locale:        site.Locale,
		Image:         site.ImageURL,
		ImageAlt:      site.ImageAlt,
		ImageWidth:    site.ImageWidth,
		ImageHeight:   site.ImageHeight,
		OpenGraphType: "website",
		PublishedTime: o.PublishedTime,
		Authors:       append([]string(nil), o.Authors...),
	}
	if o.Title != "" {
		m.Title = strings.Replace(site.TitleTemplate, "%s", o.Title, 1)
	}
	if o.Description != "" {
		m.Description = o.Description
	}
	if o.OpenGraphType != "" {
		m.OpenGraphType = o.OpenGraphType
	}
	return m
}

// Tags returns the meta tags of the page in document order.
func (m PageMetadata) Tags() []Tag {
	tags := []Tag{
		{Name: "description", Content: m.Description},
		{Name: "og:title", Property: true, Content: m.Title},
		{Name: "og:description", Property: true, Content: m.Description},
		{Name: "og:url", Property: true, Content: m.Canonical},
		{Name: "og:site_name", Property: true, Content: m.SiteName},
		{Name: "og:locale", Property: true, Content: m.Locale},
	}
	if m.Image != "" {
		tags = append(tags, Tag{Name: "og:image", Property: true, Content: m.Image})
		if m.ImageWidth > 0 && m.ImageHeight > 0 {
			tags = append(tags,
				Tag{Name: "og:image:width", Property: true, Content: strconv.Itoa(m.ImageWidth)},
				Tag{Name: "og:image:height", Property: true, Content: strconv.Itoa(m.ImageHeight)},
			)
		}
		if m.ImageAlt != "" {
			tags = append(tags, Tag{Name: "og:image:alt", Property: true, Content: m.ImageAlt})
		}
	}
	tags = append(tags, Tag{Name: "og:type", Property: true, Content: m.OpenGraphType})
	if !m.PublishedTime.IsZero() {
		tags = append(tags, Tag{Name: "article:published_time", Property: true, Content: m.PublishedTime.UTC().Format(time.RFC3339)})
	}
	for _, a := range m.Authors {
		tags = append(tags, Tag{Name: "article:author", Property: true, Content: a})
	}
	tags = append(tags,
		Tag{Name: "twitter:card", Content: "summary_large_image"},
		Tag{Name: "twitter:title", Content: m.Title},
		Tag{Name: "twitter:description", Content: m.Description},
	)
	if m.Image != "" {
		tags = append(tags, Tag{Name: "twitter:image", Content: m.Image})
	}
	return tags
}
