package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/bddgen/internal/doctype"
	"github.com/dgallion1/bddgen/internal/ui"
)

var identifyCmd = &cobra.Command{
	Use:   "identify <file>",
	Short: "Score a document against each document type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunIdentify(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func RunIdentify(w io.Writer, path string) error {
	p, _, err := newPipeline()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	a, err := p.Analyze(filepath.Base(path), data)
	if err != nil {
		return err
	}

	ui.Header(w, fmt.Sprintf("%s (%s)", a.Title, a.Format))
	for _, t := range doctype.All {
		best := a.SuggestedType != nil && *a.SuggestedType == t
		ui.ScoreLine(w, t.String(), a.Scores[t], best)
	}
	if a.SuggestedType == nil {
		ui.Warning(w, "could not determine document type")
	}
	return nil
}
