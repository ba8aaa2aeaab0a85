// Package testutil provides shared test helpers for building a loaded site.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/catenary/site/internal/compose"
	"github.com/catenary/site/internal/content"
	"github.com/catenary/site/internal/render"
	"github.com/catenary/site/internal/seo"
	"github.com/catenary/site/internal/siteservice"
)

// Logger returns a logger that discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Composer returns a composer for the default site.
func Composer(t testing.TB) *compose.Composer {
	t.Helper()
	site, err := seo.NewSite(seo.DefaultSite())
	if err != nil {
		t.Fatal(err)
	}
	c, err := compose.New(site)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// Service returns a site service over the embedded content. The content is
// loaded unless load is false.
func Service(t testing.TB, load bool, opts ...siteservice.Option) *siteservice.Service {
	t.Helper()
	return ServiceWith(t, render.NewPages(nil), load, opts...)
}

// ServiceWith is Service with the given page renderer.
func ServiceWith(t testing.TB, pages *render.Pages, load bool, opts ...siteservice.Option) *siteservice.Service {
	t.Helper()
	opts = append([]siteservice.Option{siteservice.WithLogger(Logger())}, opts...)
	svc := siteservice.New(Composer(t), pages, opts...)
	if load {
		if err := svc.Load(context.Background(), content.Default()); err != nil {
			t.Fatalf("Load: %v", err)
		}
	}
	return svc
}
