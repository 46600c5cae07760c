package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dgallion1/bddgen/internal/catalog"
	"github.com/dgallion1/bddgen/internal/config"
	"github.com/dgallion1/bddgen/internal/extract"
	"github.com/dgallion1/bddgen/internal/pipeline"
	"github.com/dgallion1/bddgen/internal/segment"
)

var rootCmd = &cobra.Command{
	Use:          "bddgen",
	Short:        "Turn requirement documents into Gherkin features",
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newPipeline builds a pipeline from the environment. Logs go to stderr so that
// command output stays pipeable.
func newPipeline() (*pipeline.Pipeline, config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		var err error
		if cat, err = catalog.Load(cfg.CatalogPath); err != nil {
			return nil, cfg, err
		}
	}
	p := pipeline.New(cat, segment.Default(), pipeline.Options{
		WorkerCount:     cfg.WorkerCount,
		Extract:         extract.Options{PDFFallback: cfg.PDFFallbackPdftotext},
		DefaultLanguage: cfg.DefaultLanguage,
		StatsWindow:     cfg.StatsWindow,
	}, log)
	return p, cfg, nil
}
