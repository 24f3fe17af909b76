package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/analysis"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/columns"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/dataset"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/parser"
)

// ErrNoResponses is returned when a document contains no response containers
// or its responses answer no questions.
var ErrNoResponses = errors.New("no responses found")

// Options configures one pipeline run.
type Options struct {
	Markers columns.Markers
	Cluster analysis.ClusterConfig
	Digits  int
	Logger  *zap.Logger
}

// Outcome carries the enriched dataset and both statistics results.
type Outcome struct {
	Source   string
	Records  int
	Dataset  *dataset.Dataset
	Basic    analysis.Result
	Advanced analysis.Result
	Duration time.Duration
}

// Run extracts the survey at path and computes basic then advanced statistics.
func Run(ctx context.Context, path string, opt Options) (*Outcome, error) {
	start := time.Now()
	records, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	out, err := analyze(ctx, records, opt)
	if err != nil {
		return nil, err
	}
	out.Source = path
	out.Duration = time.Since(start)
	return out, nil
}

// RunReader is Run over an already opened HTML document.
func RunReader(ctx context.Context, name string, r io.Reader, opt Options) (*Outcome, error) {
	start := time.Now()
	records, err := parser.Extract(r)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", name, err)
	}
	out, err := analyze(ctx, records, opt)
	if err != nil {
		return nil, err
	}
	out.Source = name
	out.Duration = time.Since(start)
	return out, nil
}

func analyze(ctx context.Context, records []parser.Record, opt Options) (*Outcome, error) {
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ds := dataset.FromRecords(records)
	log.Debug("dataset built", zap.Int("rows", ds.Len()), zap.Int("columns", ds.Width()))
	if ds.Empty() {
		return nil, ErrNoResponses
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	basic := analysis.NewBasicEngine(opt.Markers, log).Compute(ds)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	advanced, ds := analysis.NewAdvancedEngine(opt.Markers, opt.Cluster, opt.Digits, log).Compute(ds)
	return &Outcome{
		Records:  len(records),
		Dataset:  ds,
		Basic:    basic,
		Advanced: advanced,
	}, nil
}
