package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/bddgen/internal/stepdef"
	"github.com/dgallion1/bddgen/internal/ui"
)

var (
	stepsLangFlag      string
	stepsFrameworkFlag string
	stepsOutFlag       string
)

var stepsCmd = &cobra.Command{
	Use:   "steps <feature-file>",
	Short: "Generate step definition stubs for a feature file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSteps(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], stepsLangFlag, stepsFrameworkFlag, stepsOutFlag)
	},
}

func init() {
	stepsCmd.Flags().StringVar(&stepsLangFlag, "lang", "", "Target language (python, javascript); defaults to DEFAULT_LANGUAGE")
	stepsCmd.Flags().StringVar(&stepsFrameworkFlag, "framework", "", "Test framework; defaults per language")
	stepsCmd.Flags().StringVar(&stepsOutFlag, "out", "", "File to write the stubs to; prints to stdout when omitted")
	rootCmd.AddCommand(stepsCmd)
}

// RunSteps writes the generated code to w, or to out when set. Diagnostics go to
// errw so that w stays valid source code.
func RunSteps(w, errw io.Writer, path, lang, framework, out string) error {
	p, _, err := newPipeline()
	if err != nil {
		return err
	}
	feature, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	res, err := p.GenerateSteps(string(feature), lang, framework)
	if err != nil {
		return err
	}
	for _, d := range res.Duplicates {
		ui.Warning(errw, "pattern %s used by %d steps", d.Pattern, d.Count)
	}

	if out == "" {
		fmt.Fprint(w, res.Code)
		return nil
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(out, []byte(res.Code), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	ui.Success(w, "%d step definitions (%s/%s) -> %s", len(stepdef.Unique(res.Definitions)), res.Language, res.Framework, out)
	return nil
}
