package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pkgconfig "github.com/catenary/site/pkg/config"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestContentConfig_WatchNeedsPath(t *testing.T) {
	cfg := ContentConfig{Watch: true}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("watch without path should fail")
	}
	if !strings.Contains(err.Error(), "required when watch is enabled") {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Path = "./content"
	if err := cfg.Validate(); err != nil {
		t.Errorf("watch with path should pass: %v", err)
	}
}

func TestContentConfig_UnknownVariant(t *testing.T) {
	cfg := ContentConfig{Variant: "holiday"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown variant should fail validation")
	}
}

func TestHTTPConfig_PortRange(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := HTTPConfig{Port: port}
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail", port)
		}
	}
}

func TestFullConfig_SiteValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Site.TitleTemplate = "no placeholder"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch site error")
	}
	if !strings.HasPrefix(err.Error(), "site: ") {
		t.Errorf("error not scoped: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("CATENARY_PORT", "9090")
	data := `
app:
  log_level: debug
  http:
    port: ${CATENARY_PORT}
content:
  path: ./content
  watch: true
  variant: alternate
  debounce: 500ms
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.App.HTTP.Port)
	}
	if cfg.Content.Debounce != 500*time.Millisecond || cfg.Content.Variant != "alternate" {
		t.Errorf("content = %+v", cfg.Content)
	}
	if cfg.App.LogLevel.String() != "DEBUG" {
		t.Errorf("log level = %v", cfg.App.LogLevel)
	}
	// Sections absent from the file keep their defaults.
	if cfg.Site.URL != "https://catenary.xyz" || cfg.Export.Dir != "./dist" {
		t.Errorf("defaults lost: site=%q export=%q", cfg.Site.URL, cfg.Export.Dir)
	}
}
