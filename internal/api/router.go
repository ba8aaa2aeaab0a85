package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/catenary/site/internal/compose"
	"github.com/catenary/site/internal/metrics"
	"github.com/catenary/site/internal/siteservice"
)

// Options are the optional parts of the router.
type Options struct {
	// Metrics, if non-nil, instruments every route and serves GET /metrics.
	Metrics *metrics.Metrics
	// Events, if non-nil, is mounted at GET /events for live reload.
	Events http.Handler
	// PublicDir, if set, serves GET /images/* from PublicDir/images.
	PublicDir string
	// RequestLog enables chi's request logger.
	RequestLog bool
}

// NewRouter creates a chi router with the site pages, the JSON API and the
// health endpoints mounted.
func NewRouter(svc *siteservice.Service, o Options) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if o.RequestLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.GetHead)
	if o.Metrics != nil {
		r.Use(MetricsMiddleware(o.Metrics))
	}

	// Health check endpoints.
	r.Get("/health/live", h.Live)
	r.Get("/health/ready", h.Ready)

	// Pages.
	r.Get(compose.RouteHome, h.Page(compose.RouteHome))
	r.Get(compose.RouteWhitepaper, h.Page(compose.RouteWhitepaper))
	r.Get(compose.RouteWhitepaper+".md", h.Markdown)

	// Page metadata.
	r.Route("/api", func(api chi.Router) {
		api.Get("/pages", h.ListPages)
		api.Get("/pages/*", h.GetPage)
	})

	if o.PublicDir != "" {
		r.Get("/images/*", NewAssetHandler(o.PublicDir).ServeImage)
	}
	if o.Events != nil {
		r.Get("/events", o.Events.ServeHTTP)
	}
	if o.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", o.Metrics.Handler())
	}

	return r
}
