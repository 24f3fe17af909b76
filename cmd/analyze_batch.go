package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/analysis"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/export"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/pipeline"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/runs"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/utils"
)

var (
	abOutDir     string
	abReports    bool
	abSave       bool
	abSampleRows int
	abQuiet      bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple survey exports, writing one workbook per file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		c, err := currentConfig()
		if err != nil {
			return err
		}
		log := newLogger(c.LogLevel)
		defer func() { _ = log.Sync() }()
		opt := pipelineOptions(cmd, log)

		outDir := abOutDir
		if outDir == "" {
			outDir = c.OutputDir
		}
		if outDir == "" {
			outDir = "."
		}
		if outDir, err = utils.ExpandHome(outDir); err != nil {
			return err
		}
		if err := utils.EnsureDir(outDir); err != nil {
			return fmt.Errorf("ensure output dir: %w", err)
		}

		ropt := analysis.DefaultReportOptions()
		if cmd.Flags().Changed("sample-rows") {
			ropt.SampleRows = abSampleRows
		}

		total := len(files)
		skipped := 0
		for i, path := range files {
			if !abQuiet {
				fmt.Printf("[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			out, err := pipeline.Run(context.Background(), path, opt)
			if errors.Is(err, pipeline.ErrNoResponses) {
				fmt.Fprintf(os.Stderr, "⚠ Warning: %s: no responses found, skipping\n", path)
				skipped++
				continue
			}
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			stem := uniqueStem(outDir, strings.TrimSuffix(base, filepath.Ext(base)))
			xlsxPath := filepath.Join(outDir, stem+".xlsx")
			if err := export.WriteXLSX(xlsxPath, out.Dataset, out.Basic, out.Advanced); err != nil {
				return err
			}
			if !abQuiet {
				fmt.Printf("✓ Wrote %s (%d responses)\n", xlsxPath, out.Dataset.Len())
			}
			ropt.Name = path
			md := analysis.Markdown(out.Dataset, out.Basic, out.Advanced, ropt)
			if abReports {
				mdPath := filepath.Join(outDir, stem+".summary.md")
				if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				if !abQuiet {
					fmt.Printf("✓ Wrote %s\n", mdPath)
				}
			}
			if abSave {
				r := runs.NewRun(out)
				r.Report = md
				if err := r.Save(c.RunsDir); err != nil {
					return fmt.Errorf("save run: %w", err)
				}
				if !abQuiet {
					fmt.Printf("✓ Saved run %s\n", r.ID)
				}
			}
		}
		if skipped == total {
			return fmt.Errorf("none of the %d input files contained responses", total)
		}
		return nil
	},
}

// expandInputs resolves glob patterns and literal paths, dropping duplicates.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

// uniqueStem returns stem, or stem__N when a workbook with that stem already
// exists in dir.
func uniqueStem(dir, stem string) string {
	if _, err := os.Stat(filepath.Join(dir, stem+".xlsx")); os.IsNotExist(err) {
		return stem
	}
	for idx := 2; ; idx++ {
		cand := fmt.Sprintf("%s__%d", stem, idx)
		if _, err := os.Stat(filepath.Join(dir, cand+".xlsx")); os.IsNotExist(err) {
			if !abQuiet {
				fmt.Printf("⚠ Detected existing workbook, writing to %s.xlsx to avoid overwrite.\n", cand)
			}
			return cand
		}
	}
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "directory for workbooks (default: output_dir from config, else current directory)")
	analyzeBatchCmd.Flags().BoolVar(&abReports, "reports", false, "also write a Markdown report next to each workbook")
	analyzeBatchCmd.Flags().BoolVar(&abSave, "save", false, "save each run to the runs directory")
	analyzeBatchCmd.Flags().IntVar(&abSampleRows, "sample-rows", 5, "number of sample rows to include in reports")
	analyzeBatchCmd.Flags().IntVar(&anaK, "k", 0, "number of response time clusters (overrides config)")
	analyzeBatchCmd.Flags().Uint64Var(&anaSeed, "seed", 0, "k-means random seed (overrides config)")
	analyzeBatchCmd.Flags().IntVar(&anaNInit, "n-init", 0, "k-means initializations (overrides config)")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}
