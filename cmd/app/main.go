package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/catenary/site/internal"
	pkgconfig "github.com/catenary/site/pkg/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type runner func(ctx context.Context, opts ...internal.Option) error

func action(run runner) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		configPath := cmd.String("config")

		cfg := internal.NewDefaultConfig()
		if _, err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		if dir := cmd.String("content"); dir != "" {
			cfg.Content.Path = dir
		}
		if cmd.Bool("watch") {
			cfg.Content.Watch = true
		}
		if cmd.Bool("dev") {
			cfg.App.Dev = true
		}
		if out := cmd.String("out"); out != "" {
			cfg.Export.Dir = out
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		opts := []internal.Option{
			internal.WithConfig(cfg),
			internal.WithVersion(version),
		}

		if err := run(ctx, opts...); err != nil {
			return fmt.Errorf("app run error: %w", err)
		}

		return nil
	}
}

func main() {
	serve := &cli.Command{
		Name:   "serve",
		Usage:  "Serve the site over HTTP",
		Action: action(internal.Run),
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "watch", Usage: "Reload content when YAML files change"},
			&cli.BoolFlag{Name: "dev", Usage: "Enable request logging and browser live reload"},
		},
	}

	cmd := &cli.Command{
		Name:    "catenary",
		Usage:   "Catenary marketing site: landing page and whitepaper renderer",
		Version: version,
		Action:  serve.Action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "content",
				Usage:   "Content directory (defaults to the embedded content)",
				Sources: cli.EnvVars("CATENARY_CONTENT_DIR"),
			},
		},
		Commands: []*cli.Command{
			serve,
			{
				Name:   "export",
				Usage:  "Render the site into a directory for static hosting",
				Action: action(internal.Export),
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output directory"},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve the site content to LLM clients over MCP stdio",
				Action: action(internal.ServeMCP),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
