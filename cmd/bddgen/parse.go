package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	parseTypeFlag   string
	parseStrictFlag bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the structure extracted from a document as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunParse(cmd.OutOrStdout(), args[0], parseTypeFlag, parseStrictFlag)
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseTypeFlag, "type", "", `Document type: "BRD", "FRD", "User Story" or "Test Case"`)
	parseCmd.Flags().BoolVar(&parseStrictFlag, "strict", false, "Fail when a user story document has no stories")
	_ = parseCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(parseCmd)
}

func RunParse(w io.Writer, path, docType string, strict bool) error {
	p, _, err := newPipeline()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var out any
	if strict {
		out, err = p.Validate(filepath.Base(path), data, docType)
	} else {
		out, err = p.Parse(filepath.Base(path), data, docType)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
