package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/analysis"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/export"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/pipeline"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/runs"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/utils"
)

var (
	anaOutputPath string
	anaReportPath string
	anaFormat     string
	anaSave       bool
	anaSampleRows int
	anaK          int
	anaSeed       uint64
	anaNInit      int
	anaQuiet      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.html|->",
	Short: "Extract a survey export and compute its statistics",
	Long:  "Extract a survey export and compute its statistics. Pass - to read the HTML from stdin.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		fromStdin := path == "-"
		if fromStdin {
			path = "stdin"
		}
		switch anaFormat {
		case "markdown", "json":
		default:
			return fmt.Errorf("unsupported --format: %s (use markdown|json)", anaFormat)
		}
		c, err := currentConfig()
		if err != nil {
			return err
		}
		log := newLogger(c.LogLevel)
		defer func() { _ = log.Sync() }()

		opt := pipelineOptions(cmd, log)
		if !anaQuiet {
			fmt.Printf("Loading %s...\n", path)
		}
		var out *pipeline.Outcome
		if fromStdin {
			out, err = pipeline.RunReader(context.Background(), path, cmd.InOrStdin(), opt)
		} else {
			out, err = pipeline.Run(context.Background(), path, opt)
		}
		if errors.Is(err, pipeline.ErrNoResponses) {
			fmt.Println("No responses found.")
			return nil
		}
		if err != nil {
			return err
		}
		if !anaQuiet {
			fmt.Printf("✓ Extracted %d responses into %d columns\n", out.Dataset.Len(), out.Dataset.Width())
		}

		ropt := analysis.DefaultReportOptions()
		ropt.Name = path
		if cmd.Flags().Changed("sample-rows") {
			ropt.SampleRows = anaSampleRows
		}
		md := analysis.Markdown(out.Dataset, out.Basic, out.Advanced, ropt)

		written := false
		if anaOutputPath != "" {
			dest, err := utils.OutputPath(c.OutputDir, anaOutputPath)
			if err != nil {
				return err
			}
			if err := export.WriteXLSX(dest, out.Dataset, out.Basic, out.Advanced); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote workbook to %s\n", dest)
			written = true
		}
		if anaReportPath != "" {
			dest, err := utils.OutputPath(c.OutputDir, anaReportPath)
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Printf("✓ Wrote report to %s\n", dest)
			written = true
		}
		if anaSave {
			r := runs.NewRun(out)
			r.Report = md
			if err := r.Save(c.RunsDir); err != nil {
				return fmt.Errorf("save run: %w", err)
			}
			fmt.Printf("✓ Saved run %s\n", r.ID)
		}
		if !written {
			if anaFormat == "json" {
				b, err := utils.PrettyJSON(runs.NewRun(out))
				if err != nil {
					return err
				}
				fmt.Println(string(b))
			} else {
				fmt.Println(md)
			}
		}
		return nil
	},
}

// pipelineOptions merges the loaded configuration with the clustering flags
// changed on cmd.
func pipelineOptions(cmd *cobra.Command, log *zap.Logger) pipeline.Options {
	cl := cfg.ClusterConfig()
	f := cmd.Flags()
	if f.Changed("k") && anaK > 0 {
		cl.K = anaK
	}
	if f.Changed("seed") {
		cl.Seed = anaSeed
	}
	if f.Changed("n-init") && anaNInit > 0 {
		cl.NInit = anaNInit
	}
	return pipeline.Options{
		Markers: cfg.Markers,
		Cluster: cl,
		Digits:  cfg.RoundDigits,
		Logger:  log,
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write an Excel workbook (.xlsx)")
	analyzeCmd.Flags().StringVar(&anaReportPath, "report", "", "optional path to write the Markdown report")
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "markdown", "stdout format when no output file is given: markdown|json")
	analyzeCmd.Flags().BoolVar(&anaSave, "save", false, "save the run to the runs directory")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 5, "number of sample rows to include in the report")
	analyzeCmd.Flags().IntVar(&anaK, "k", 0, "number of response time clusters (overrides config)")
	analyzeCmd.Flags().Uint64Var(&anaSeed, "seed", 0, "k-means random seed (overrides config)")
	analyzeCmd.Flags().IntVar(&anaNInit, "n-init", 0, "k-means initializations (overrides config)")
	analyzeCmd.Flags().BoolVar(&anaQuiet, "quiet", false, "suppress progress output")
}
