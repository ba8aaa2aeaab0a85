package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/catenary/site/internal/metrics"
	"github.com/catenary/site/internal/render"
	"github.com/catenary/site/internal/siteservice"
	"github.com/catenary/site/internal/testutil"
)

// testEnv builds a service over the embedded content and a router for it.
func testEnv(t *testing.T, load bool, o Options) (*siteservice.Service, http.Handler) {
	t.Helper()
	svc := testutil.Service(t, load)
	return svc, NewRouter(svc, o)
}

func do(t *testing.T, h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHomePage(t *testing.T) {
	_, router := testEnv(t, true, Options{})

	w := do(t, router, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != siteservice.ContentTypeHTML {
		t.Errorf("content type = %q", ct)
	}
	if w.Header().Get("ETag") == "" {
		t.Error("missing ETag")
	}
	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	if cls, _ := doc.Find("body").Attr("class"); cls != "antialiased" {
		t.Errorf("body class = %q", cls)
	}
	if doc.Find("#"+render.MenuID).Length() != 0 {
		t.Error("menu open by default")
	}
}

func TestMenuQuery(t *testing.T) {
	_, router := testEnv(t, true, Options{})

	w := do(t, router, http.MethodGet, "/?menu=open", nil)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Find("#"+render.MenuID).Length() != 1 {
		t.Fatal("menu panel missing")
	}
	// Selecting the whitepaper link navigates with the menu closed.
	href, _ := doc.Find("#" + render.MenuID + " a").Eq(1).Attr("href")
	if href != "/whitepaper" {
		t.Errorf("link href = %q", href)
	}
}

func TestConditionalGet(t *testing.T) {
	_, router := testEnv(t, true, Options{})

	first := do(t, router, http.MethodGet, "/whitepaper", nil)
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	w := do(t, router, http.MethodGet, "/whitepaper", http.Header{"If-None-Match": {etag}})
	if w.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Error("304 carried a body")
	}

	w = do(t, router, http.MethodGet, "/whitepaper", http.Header{"If-None-Match": {`"stale"`}})
	if w.Code != http.StatusOK {
		t.Errorf("stale etag status = %d", w.Code)
	}
}

func TestTrailingSlashAndHead(t *testing.T) {
	_, router := testEnv(t, true, Options{})

	if w := do(t, router, http.MethodGet, "/whitepaper/", nil); w.Code != http.StatusOK {
		t.Errorf("trailing slash status = %d", w.Code)
	}
	w := do(t, router, http.MethodHead, "/whitepaper", nil)
	if w.Code != http.StatusOK || w.Body.Len() != 0 {
		t.Errorf("HEAD status = %d, body = %d bytes", w.Code, w.Body.Len())
	}
}

func TestWhitepaperMarkdown(t *testing.T) {
	_, router := testEnv(t, true, Options{})

	w := do(t, router, http.MethodGet, "/whitepaper.md", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != siteservice.ContentTypeMarkdown {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "## 10 Conclusion") {
		t.Error("markdown missing conclusion")
	}
}

func TestPagesAPI(t *testing.T) {
	_, router := testEnv(t, true, Options{})

	w := do(t, router, http.MethodGet, "/api/pages", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var list PageListResponse
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if list.Version == "" || len(list.Pages) != 2 {
		t.Fatalf("list = %+v", list)
	}
	if list.Pages[1].Metadata.Canonical != "https://catenary.xyz/whitepaper" {
		t.Errorf("canonical = %q", list.Pages[1].Metadata.Canonical)
	}

	w = do(t, router, http.MethodGet, "/api/pages/whitepaper", nil)
	var info PageInfo
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Kind != "article" || info.Metadata.OpenGraphType != "article" {
		t.Errorf("info = %+v", info)
	}

	w = do(t, router, http.MethodGet, "/api/pages/"+IndexPage, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("index status = %d", w.Code)
	}
	info = PageInfo{}
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Route != "/" || info.Kind != "landing" {
		t.Errorf("index info = %+v", info)
	}

	w = do(t, router, http.MethodGet, "/api/pages/pricing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown page status = %d", w.Code)
	}
	var body apiError
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error != "not found" || body.Route != "/pricing" {
		t.Errorf("error body = %+v", body)
	}
}

func TestNotLoaded(t *testing.T) {
	_, router := testEnv(t, false, Options{})

	if w := do(t, router, http.MethodGet, "/health/live", nil); w.Code != http.StatusOK {
		t.Errorf("live status = %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/health/ready", nil); w.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/", nil); w.Code != http.StatusNotFound {
		t.Errorf("page status = %d", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	_, router := testEnv(t, true, Options{})
	if w := do(t, router, http.MethodGet, "/docs", nil); w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	svc := testutil.Service(t, true, siteservice.WithMetrics(m))
	router := NewRouter(svc, Options{Metrics: m})

	do(t, router, http.MethodGet, "/whitepaper?menu=open", nil)
	w := do(t, router, http.MethodGet, "/metrics", nil)
	body, _ := io.ReadAll(w.Body)
	text := string(body)
	if !strings.Contains(text, `catenary_http_requests_total{method="GET",route="/whitepaper",status="200"} 1`) {
		t.Errorf("request counter missing:\n%s", text)
	}
	if !strings.Contains(text, `catenary_page_renders_total{menu="open",route="/whitepaper"} 1`) {
		t.Error("render counter missing")
	}
}

func TestImages(t *testing.T) {
	public := t.TempDir()
	if err := os.MkdirAll(filepath.Join(public, "images", "wip"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(public, "images", "wip", "PoL Mechanism.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(public, "secret.txt"), []byte("no"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, router := testEnv(t, true, Options{PublicDir: public})

	w := do(t, router, http.MethodGet, "/images/wip/PoL%20Mechanism.png", nil)
	if w.Code != http.StatusOK || w.Body.String() != "png" {
		t.Errorf("image status = %d body = %q", w.Code, w.Body.String())
	}
	if cc := w.Header().Get("Cache-Control"); cc != assetCacheControl {
		t.Errorf("cache control = %q", cc)
	}
	if w := do(t, router, http.MethodGet, "/images/missing.png", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing image status = %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/images/..%2Fsecret.txt", nil); w.Code != http.StatusBadRequest {
		t.Errorf("traversal status = %d", w.Code)
	}
}

func TestEventsMounted(t *testing.T) {
	events := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	_, router := testEnv(t, true, Options{Events: events})
	if w := do(t, router, http.MethodGet, "/events", nil); w.Code != http.StatusTeapot {
		t.Errorf("status = %d", w.Code)
	}
	_, plain := testEnv(t, true, Options{})
	if w := do(t, plain, http.MethodGet, "/events", nil); w.Code != http.StatusNotFound {
		t.Errorf("events mounted without handler: %d", w.Code)
	}
}
