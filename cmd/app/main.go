package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/sitegen/internal"
	pkgconfig "github.com/starford/sitegen/pkg/config"
)

const (
	defaultConfigFile  = "config/config.yaml"
	fallbackConfigFile = "config/config.toml"
)

// loadConfig reads path over the defaults. A missing path is replaced by
// fallback when one is given.
func loadConfig(path, fallback string) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadWithDefaults(path, fallback, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func loadOptions(cmd *cli.Command) ([]internal.Option, error) {
	// Only the implicit default may fall back to the TOML file.
	fallback := ""
	if !cmd.IsSet("config") {
		fallback = fallbackConfigFile
	}

	cfg, err := loadConfig(cmd.String("config"), fallback)
	if err != nil {
		return nil, err
	}

	return []internal.Option{
		internal.WithConfig(cfg),
	}, nil
}

func build(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if err := internal.Build(ctx, opts...); err != nil {
		return fmt.Errorf("build error: %w", err)
	}
	return nil
}

func watch(ctx context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if err := internal.Watch(ctx, opts...); err != nil {
		return fmt.Errorf("watch error: %w", err)
	}
	return nil
}

func search(_ context.Context, cmd *cli.Command) error {
	query := cmd.Args().First()
	if query == "" {
		return fmt.Errorf("search: query is required")
	}
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	results, err := internal.Search(query, int(cmd.Int("limit")), opts...)
	if err != nil {
		return fmt.Errorf("search error: %w", err)
	}
	for _, r := range results {
		fmt.Printf("%-9s %s\t%s\n", r.Kind, r.Path, r.Title)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "sitegen",
		Usage: "Build the page plan of a static blog from Markdown posts and PDF notes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (.yaml or .toml)",
				DefaultText: defaultConfigFile + " (or " + fallbackConfigFile + ")",
				Value:       defaultConfigFile,
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Build and publish the page plan once",
				Action: build,
			},
			{
				Name:   "watch",
				Usage:  "Build, then rebuild whenever content changes",
				Action: watch,
			},
			{
				Name:      "search",
				Usage:     "Query the search index of the last build",
				ArgsUsage: "<query>",
				Action:    search,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 20,
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
