package analysis

import (
	"math"
	"sort"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/dataset"
)

// ReportOptions controls the dataset summary rendered alongside statistics.
type ReportOptions struct {
	// Name labels the source file in the report header.
	Name string
	// SampleRows determines how many example rows to include in the report.
	SampleRows int
	// OutlierThreshold is the robust |z| above which numeric values count as outliers.
	OutlierThreshold float64
}

// DefaultReportOptions returns reasonable defaults for survey reports.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{SampleRows: 5, OutlierThreshold: 3.5}
}

// ColumnSummary captures kind and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|datetime|categorical|text|unknown
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// Categorical top values
	TopValues    []CategoryCount
	ExampleTexts []string
}

type CategoryCount struct {
	Value string
	Count int
}

// Summarize describes every column of ds in column order.
func Summarize(ds *dataset.Dataset, opt ReportOptions) []ColumnSummary {
	if ds == nil {
		return nil
	}
	out := make([]ColumnSummary, 0, ds.Width())
	for _, name := range ds.Columns() {
		col, _ := ds.Column(name)
		nn := col.NonNull()
		s := ColumnSummary{Name: name, NonNull: nn, Missing: ds.Len() - nn, Kind: "unknown"}
		switch col.Kind {
		case dataset.KindNumeric:
			vals, _ := ds.Floats(name)
			if len(vals) == 0 {
				break
			}
			s.Kind = "numeric"
			d := describe(vals)
			s.Min, s.Max, s.Mean = d.min, d.max, d.mean
			if d.n > 1 {
				s.Std = d.std
			}
			thr := opt.OutlierThreshold
			if thr > 0 && len(vals) >= 8 {
				s.OutliersCount, s.OutliersMaxAbsZ = robustOutliers(vals, thr)
				s.OutlierThreshold = thr
			}
		case dataset.KindTime:
			if nn > 0 {
				s.Kind = "datetime"
			}
		default:
			cats := map[string]int{}
			var examples []string
			for _, c := range col.Cells {
				if !c.Valid || c.Text == "" {
					continue
				}
				if len(cats) <= 10000 && len(c.Text) <= 64 {
					cats[c.Text]++
				}
				if len(examples) < 3 {
					examples = append(examples, c.Text)
				}
			}
			if len(cats) > 0 {
				s.Kind = "categorical"
				tops := make([]CategoryCount, 0, len(cats))
				for k, v := range cats {
					tops = append(tops, CategoryCount{Value: k, Count: v})
				}
				sort.Slice(tops, func(i, j int) bool {
					if tops[i].Count == tops[j].Count {
						return tops[i].Value < tops[j].Value
					}
					return tops[i].Count > tops[j].Count
				})
				if len(tops) > 8 {
					tops = tops[:8]
				}
				s.TopValues = tops
				s.Unique = len(cats)
			} else if len(examples) > 0 {
				s.Kind = "text"
				s.ExampleTexts = examples
			}
		}
		out = append(out, s)
	}
	return out
}

// robustOutliers counts values whose robust Z-score exceeds thr.
func robustOutliers(vals []float64, thr float64) (count int, maxAbsZ float64) {
	median, mad := medianMAD(vals)
	if mad == 0 {
		return 0, 0
	}
	for _, v := range vals {
		az := math.Abs(0.6745 * (v - median) / mad)
		if az > thr {
			count++
		}
		if az > maxAbsZ {
			maxAbsZ = az
		}
	}
	return count, maxAbsZ
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}
