package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/catenary/site/internal/export"
	"github.com/catenary/site/internal/models"
	"github.com/catenary/site/internal/seo"
	"github.com/catenary/site/internal/watch"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Site    seo.SiteDefaults  `yaml:"site"`
	Content ContentConfig     `yaml:"content"`
	Assets  AssetsConfig      `yaml:"assets"`
	Export  ExportConfig      `yaml:"export"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Site.Validate(); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if err := c.Content.Validate(); err != nil {
		return fmt.Errorf("content: %w", err)
	}
	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
	// Dev enables request logging and the live-reload script.
	Dev bool `yaml:"dev"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig selects where site content is read from.
//
// An empty Path serves the content compiled into the binary. Watch reloads
// content from Path whenever a YAML file under it changes.
type ContentConfig struct {
	Path     string        `yaml:"path"`
	Watch    bool          `yaml:"watch"`
	Variant  string        `yaml:"variant"`
	Debounce time.Duration `yaml:"debounce"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.When(c.Watch, validation.Required.Error("is required when watch is enabled"))),
		validation.Field(&c.Variant, validation.In(models.VariantPrimary, models.VariantAlternate)),
		validation.Field(&c.Debounce, validation.Min(time.Duration(0))),
	)
}

// AssetsConfig holds the public directory served under /images.
type AssetsConfig struct {
	Path string `yaml:"path"`
}

// ExportConfig holds static export settings.
type ExportConfig struct {
	Dir         string `yaml:"dir"`
	Concurrency int    `yaml:"concurrency"`
}

// Validate validates the export configuration.
func (c *ExportConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Concurrency, validation.Min(0), validation.Max(64)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Site: seo.DefaultSite(),
		Content: ContentConfig{
			Variant:  models.VariantPrimary,
			Debounce: watch.DefaultDebounce,
		},
		Export: ExportConfig{
			Dir:         "./dist",
			Concurrency: export.DefaultConcurrency,
		},
	}
}
