// Package export writes the rendered site to a directory for static hosting.
//
// Static hosts serve files by path, so exported pages address the open menu
// with nav.Path: the open view of "/" is written to menu/index.html.
package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/catenary/site/internal/nav"
	"github.com/catenary/site/internal/render"
	"github.com/catenary/site/internal/siteservice"
	"github.com/catenary/site/internal/storage"
)

// DefaultConcurrency bounds parallel file writes.
const DefaultConcurrency = 4

// MarkdownFile is the output path of the whitepaper Markdown.
const MarkdownFile = "whitepaper.md"

// File is one exported output.
type File struct {
	Path     string
	Rendered siteservice.Rendered
}

// Result summarizes one export run.
type Result struct {
	Files     []File   // every output of the snapshot
	Written   int      // outputs whose bytes changed
	Unchanged int      // outputs already present with identical bytes
	Removed   []string // stale files deleted from the store
}

// PagesOption configures a renderer for export.
func PagesOption() render.PagesOption { return render.WithNavScheme(nav.Path) }

// OutputPath maps a URL path to its file: "/" is index.html and every other
// path gets a directory with an index.html.
func OutputPath(route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return "index.html"
	}
	return path.Join(trimmed, "index.html")
}

// Files lists the outputs of the current snapshot in route order. Every page
// is exported closed; the open view gets its own file only where it renders
// differently. The service must render with PagesOption for the menu links
// to resolve.
func Files(svc *siteservice.Service) ([]File, error) {
	var out []File
	for _, route := range svc.Routes() {
		closed, err := svc.Page(route, nav.Closed)
		if err != nil {
			return nil, err
		}
		out = append(out, File{Path: OutputPath(nav.Path(route, nav.Closed)), Rendered: closed})

		open, err := svc.Page(route, nav.Open)
		if err != nil {
			return nil, err
		}
		if open.ETag != closed.ETag {
			out = append(out, File{Path: OutputPath(nav.Path(route, nav.Open)), Rendered: open})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("export: no pages loaded")
	}
	md, err := svc.Markdown()
	if err != nil {
		return nil, err
	}
	return append(out, File{Path: MarkdownFile, Rendered: md}), nil
}

// Write exports the current snapshot of svc into store, at most concurrency
// files at a time. Files whose stored bytes already match are left alone.
// Once every output is in place, files the snapshot no longer produces are
// deleted.
func Write(ctx context.Context, svc *siteservice.Service, store storage.Provider, concurrency int, logger *slog.Logger) (*Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	files, err := Files(svc)
	if err != nil {
		return nil, err
	}

	var written, unchanged atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, f := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if old, err := store.Read(f.Path); err == nil && bytes.Equal(old, f.Rendered.Body) {
				unchanged.Add(1)
				logger.Debug("export: unchanged", slog.String("path", f.Path))
				return nil
			}
			if err := store.Write(f.Path, f.Rendered.Body); err != nil {
				return fmt.Errorf("export %s: %w", f.Path, err)
			}
			written.Add(1)
			logger.Debug("export: wrote", slog.String("path", f.Path), slog.Int("bytes", len(f.Rendered.Body)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	removed, err := prune(store, files, logger)
	if err != nil {
		return nil, err
	}
	return &Result{
		Files:     files,
		Written:   int(written.Load()),
		Unchanged: int(unchanged.Load()),
		Removed:   removed,
	}, nil
}

// prune deletes every listed file that is not one of files. The provider
// does not list in-flight temp files, so those are never touched.
func prune(store storage.Provider, files []File, logger *slog.Logger) ([]string, error) {
	current := make(map[string]struct{}, len(files))
	for _, f := range files {
		current[f.Path] = struct{}{}
	}
	listed, err := store.List("")
	if err != nil {
		return nil, fmt.Errorf("export: list: %w", err)
	}
	var removed []string
	for _, f := range listed {
		if _, ok := current[f.Path]; ok {
			continue
		}
		if err := store.Delete(f.Path); err != nil {
			return removed, fmt.Errorf("export: prune: %w", err)
		}
		logger.Debug("export: removed", slog.String("path", f.Path))
		removed = append(removed, f.Path)
	}
	return removed, nil
}
