package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/bddgen/internal/pipeline"
	"github.com/dgallion1/bddgen/internal/ui"
)

var (
	convertTypeFlag string
	convertNameFlag string
	convertOutFlag  string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>...",
	Short: "Convert documents to Gherkin feature files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunConvert(cmd.Context(), cmd.OutOrStdout(), args, convertTypeFlag, convertNameFlag, convertOutFlag)
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertTypeFlag, "type", "", "Document type; detected when omitted")
	convertCmd.Flags().StringVar(&convertNameFlag, "name", "", "Feature name; defaults per document type")
	convertCmd.Flags().StringVar(&convertOutFlag, "out", "", "Directory to write .feature files to; prints to stdout when omitted")
	rootCmd.AddCommand(convertCmd)
}

// RunConvert converts each file. Without outDir the feature text is printed.
func RunConvert(ctx context.Context, w io.Writer, paths []string, docType, name, outDir string) error {
	p, _, err := newPipeline()
	if err != nil {
		return err
	}

	reqs := make([]pipeline.Request, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		reqs = append(reqs, pipeline.Request{
			Filename:    filepath.Base(path),
			Data:        data,
			DocType:     docType,
			FeatureName: name,
		})
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", outDir, err)
		}
	}

	batch := p.ConvertBatch(ctx, reqs)
	for _, item := range batch.Items {
		if item.Err() != nil {
			ui.Warning(w, "%s: %s", item.Filename, item.Error)
			continue
		}
		conv := item.Result
		if outDir == "" {
			ui.Gherkin(w, conv.Feature)
			fmt.Fprintln(w)
			continue
		}
		dest := filepath.Join(outDir, conv.FeatureFile)
		if len(batch.Items) > 1 {
			dest = filepath.Join(outDir, stem(item.Filename)+"-"+conv.FeatureFile)
		}
		if err := os.WriteFile(dest, []byte(conv.Feature), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
		ui.Success(w, "%s -> %s (%s)", item.Filename, dest, conv.DocType)
	}

	if batch.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed to convert", batch.Failed, len(batch.Items))
	}
	return nil
}

func stem(filename string) string {
	return filename[:len(filename)-len(filepath.Ext(filename))]
}
