// Package siteservice loads site content, renders every page variant up front
// and serves them from an immutable snapshot that reloads swap atomically.
package siteservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/catenary/site/internal/apperr"
	"github.com/catenary/site/internal/checksum"
	"github.com/catenary/site/internal/compose"
	"github.com/catenary/site/internal/content"
	"github.com/catenary/site/internal/metrics"
	"github.com/catenary/site/internal/nav"
	"github.com/catenary/site/internal/render"
	"github.com/catenary/site/internal/seo"
)

// Content types of rendered outputs.
const (
	ContentTypeHTML     = "text/html; charset=utf-8"
	ContentTypeMarkdown = "text/markdown; charset=utf-8"
)

// Rendered is a pre-rendered response body.
type Rendered struct {
	Body        []byte
	ETag        string
	ContentType string
}

func newRendered(body []byte, contentType string) Rendered {
	return Rendered{Body: body, ETag: checksum.ETag(body), ContentType: contentType}
}

// PageInfo describes one page for the JSON API.
type PageInfo struct {
	Route    string            `json:"route"`
	Kind     string            `json:"kind"`
	Metadata seo.PageMetadata  `json:"metadata"`
	JSONLD   []json.RawMessage `json:"json_ld"`
	ETag     string            `json:"etag"`
}

type pageKey struct {
	route string
	state nav.State
}

// Snapshot is one consistent rendering of the site. It is never mutated
// after publication.
type Snapshot struct {
	Version  string
	LoadedAt time.Time
	Bundle   *content.Bundle

	pages    []*compose.Page
	byRoute  map[string]*compose.Page
	rendered map[pageKey]Rendered
	markdown Rendered
	info     []PageInfo
}

// Service serves the current snapshot.
type Service struct {
	composer *compose.Composer
	renderer *render.Pages
	variant  string
	metrics  *metrics.Metrics
	logger   *slog.Logger
	onReload func(version string)

	current atomic.Pointer[Snapshot]
}

// Option configures a Service.
type Option func(*Service)

// WithVariant selects the landing hero variant.
func WithVariant(v string) Option { return func(s *Service) { s.variant = v } }

// WithMetrics records render and reload metrics on m.
func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.logger = l } }

// WithReloadHook calls fn with the new version after every successful swap.
func WithReloadHook(fn func(version string)) Option { return func(s *Service) { s.onReload = fn } }

// New creates a service. Load must succeed before pages can be served.
func New(composer *compose.Composer, renderer *render.Pages, opts ...Option) *Service {
	s := &Service{composer: composer, renderer: renderer, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads and renders the content in fsys. The current snapshot is
// replaced only if every page renders; on error the previous one stays live.
func (s *Service) Load(ctx context.Context, fsys fs.FS) error {
	start := time.Now()
	snap, err := s.build(ctx, fsys)
	if s.metrics != nil {
		s.metrics.ObserveReload(err)
	}
	if err != nil {
		return err
	}
	prev := s.current.Swap(snap)
	if s.metrics != nil {
		s.metrics.RenderDuration.Observe(time.Since(start).Seconds())
		s.metrics.Pages.Set(float64(len(snap.rendered)))
	}
	s.logger.Info("content loaded",
		slog.String("version", snap.Version),
		slog.Int("pages", len(snap.pages)),
		slog.Duration("took", time.Since(start)))
	if prev != nil && prev.Version != snap.Version && s.onReload != nil {
		s.onReload(snap.Version)
	}
	return nil
}

func (s *Service) build(ctx context.Context, fsys fs.FS) (*Snapshot, error) {
	bundle, err := content.Load(fsys)
	if err != nil {
		return nil, err
	}
	pages, err := s.composer.Bundle(bundle, s.variant)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		LoadedAt: time.Now().UTC(),
		Bundle:   bundle,
		pages:    pages,
		byRoute:  make(map[string]*compose.Page, len(pages)),
		rendered: make(map[pageKey]Rendered, 2*len(pages)),
	}
	var all bytes.Buffer
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap.byRoute[p.Route] = p
		for _, state := range []nav.State{nav.Closed, nav.Open} {
			body, err := s.renderer.Bytes(p, state)
			if err != nil {
				return nil, err
			}
			snap.rendered[pageKey{p.Route, state}] = newRendered(body, ContentTypeHTML)
			all.Write(body)
		}
		info, err := pageInfo(p, snap.rendered[pageKey{p.Route, nav.Closed}].ETag)
		if err != nil {
			return nil, err
		}
		snap.info = append(snap.info, info)
	}

	if wp, ok := snap.byRoute[compose.RouteWhitepaper]; ok {
		var md bytes.Buffer
		if err := (render.Markdown{}).Document(&md, wp.Article); err != nil {
			return nil, fmt.Errorf("render markdown: %w", err)
		}
		snap.markdown = newRendered(md.Bytes(), ContentTypeMarkdown)
		all.Write(md.Bytes())
	}

	snap.Version = checksum.Sum(all.Bytes())[:12]
	return snap, nil
}

func pageInfo(p *compose.Page, etag string) (PageInfo, error) {
	info := PageInfo{Route: p.Route, Kind: "landing", Metadata: p.Metadata, ETag: etag}
	if p.Article != nil {
		info.Kind = "article"
	}
	for _, block := range p.JSONLD {
		raw, err := seo.MarshalJSONLD(block...)
		if err != nil {
			return PageInfo{}, fmt.Errorf("page %s: %w", p.Route, err)
		}
		info.JSONLD = append(info.JSONLD, raw)
	}
	return info, nil
}

// Ready reports whether a snapshot has been loaded.
func (s *Service) Ready() bool { return s.current.Load() != nil }

// Snapshot returns the current snapshot, or nil before the first load.
func (s *Service) Snapshot() *Snapshot { return s.current.Load() }

func (s *Service) snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, fmt.Errorf("content not loaded: %w", apperr.ErrNotFound)
	}
	return snap, nil
}

// Page returns the rendered page at route in the given menu state.
func (s *Service) Page(route string, state nav.State) (Rendered, error) {
	snap, err := s.snapshot()
	if err != nil {
		return Rendered{}, err
	}
	r, ok := snap.rendered[pageKey{route, state}]
	if !ok {
		return Rendered{}, fmt.Errorf("page %s: %w", route, apperr.ErrNotFound)
	}
	if s.metrics != nil {
		s.metrics.RendersTotal.WithLabelValues(route, state.String()).Inc()
	}
	return r, nil
}

// Markdown returns the whitepaper as Markdown.
func (s *Service) Markdown() (Rendered, error) {
	snap, err := s.snapshot()
	if err != nil {
		return Rendered{}, err
	}
	if snap.markdown.Body == nil {
		return Rendered{}, fmt.Errorf("whitepaper markdown: %w", apperr.ErrNotFound)
	}
	return snap.markdown, nil
}

// Pages lists the pages of the current snapshot in route order.
func (s *Service) Pages() ([]PageInfo, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return append([]PageInfo(nil), snap.info...), nil
}

// PageInfo returns the description of the page at route.
func (s *Service) PageInfo(route string) (PageInfo, error) {
	snap, err := s.snapshot()
	if err != nil {
		return PageInfo{}, err
	}
	for _, info := range snap.info {
		if info.Route == route {
			return info, nil
		}
	}
	return PageInfo{}, fmt.Errorf("page %s: %w", route, apperr.ErrNotFound)
}

// Routes returns the routes of the current snapshot.
func (s *Service) Routes() []string {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	out := make([]string, 0, len(snap.pages))
	for _, p := range snap.pages {
		out = append(out, p.Route)
	}
	return out
}

// Whitepaper returns the composed whitepaper page.
func (s *Service) Whitepaper() (*compose.Page, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	p, ok := snap.byRoute[compose.RouteWhitepaper]
	if !ok {
		return nil, fmt.Errorf("whitepaper: %w", apperr.ErrNotFound)
	}
	return p, nil
}
