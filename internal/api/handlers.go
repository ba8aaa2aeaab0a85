package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/catenary/site/internal/apperr"
	"github.com/catenary/site/internal/checksum"
	"github.com/catenary/site/internal/nav"
	"github.com/catenary/site/internal/siteservice"
)

const cacheControl = "public, max-age=0, must-revalidate"

// Handler holds the route handlers.
type Handler struct {
	svc *siteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *siteservice.Service) *Handler {
	return &Handler{svc: svc}
}

// Page returns the handler of the pre-rendered page at route. The menu state
// comes from the query string.
func (h *Handler) Page(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := nav.FromQuery(r.URL.Query())
		page, err := h.svc.Page(route, state)
		if err != nil {
			h.serveError(w, r, err)
			return
		}
		serveRendered(w, r, page)
	}
}

// Markdown handles GET /whitepaper.md.
func (h *Handler) Markdown(w http.ResponseWriter, r *http.Request) {
	md, err := h.svc.Markdown()
	if err != nil {
		h.serveError(w, r, err)
		return
	}
	serveRendered(w, r, md)
}

// ListPages handles GET /api/pages.
func (h *Handler) ListPages(w http.ResponseWriter, _ *http.Request) {
	pages, err := h.svc.Pages()
	if err != nil {
		writeAPIError(w, "", err)
		return
	}
	writeJSON(w, http.StatusOK, PageListResponse{Version: h.svc.Snapshot().Version, Pages: pages})
}

// IndexPage is the wildcard under /api/pages that names the "/" route.
// Trailing slashes are stripped, so "/api/pages/" is the list instead.
const IndexPage = "index"

// GetPage handles GET /api/pages/*, where the wildcard is the route without
// its leading slash, or IndexPage for the home page.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	name := pageParam(r)
	if name == IndexPage {
		name = ""
	}
	route := "/" + name
	info, err := h.svc.PageInfo(route)
	if err != nil {
		writeAPIError(w, route, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Live handles GET /health/live.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// Ready handles GET /health/ready. It fails until content has loaded.
func (h *Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	snap := h.svc.Snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "loading"})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok", Version: snap.Version})
}

// pageParam is the decoded chi wildcard of the request.
func pageParam(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

func serveRendered(w http.ResponseWriter, r *http.Request, page siteservice.Rendered) {
	w.Header().Set("ETag", page.ETag)
	w.Header().Set("Cache-Control", cacheControl)
	if checksum.Match(r.Header.Get("If-None-Match"), page.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", page.ContentType)
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(page.Body)
	}
}

func (h *Handler) serveError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperr.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	slog.Error("serve page failed", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
	http.Error(w, "internal error", http.StatusInternalServerError)
}
