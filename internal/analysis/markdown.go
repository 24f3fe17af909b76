package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/dataset"
)

// Markdown renders the enriched dataset and both results as a compact report.
func Markdown(ds *dataset.Dataset, basic, advanced Result, opt ReportOptions) string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if opt.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", opt.Name))
	}
	if ds != nil {
		b.WriteString(fmt.Sprintf("Responses: %d\n", ds.Len()))
		b.WriteString(fmt.Sprintf("Columns: %d\n", ds.Width()))
	}

	cols := Summarize(ds, opt)
	if len(cols) > 0 {
		b.WriteString("\n[SCHEMA]\n")
	}
	for _, c := range cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case "numeric":
			b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
			if c.OutlierThreshold > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.OutliersCount, c.OutlierThreshold))
			}
		case "categorical":
			if len(c.TopValues) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		case "text":
			if len(c.ExampleTexts) > 0 {
				b.WriteString(" — e.g., ")
				for i, ex := range c.ExampleTexts {
					if i > 0 {
						b.WriteString(" | ")
					}
					b.WriteString(safeVal(ex))
				}
			}
		}
		b.WriteString("\n")
	}

	writeMetrics(&b, "BASIC STATISTICS", basic)
	writeMetrics(&b, "ADVANCED STATISTICS", advanced)

	if m, ok := advanced.Lookup(MetricCorrelation); ok && m.Matrix != nil && len(m.Matrix.Columns) >= 2 {
		b.WriteString("\n[CORRELATIONS]\n")
		type pr struct {
			A, B string
			R    float64
		}
		var pairs []pr
		n := len(m.Matrix.Columns)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				r := m.Matrix.Values[i][j]
				if math.IsNaN(r) {
					continue
				}
				pairs = append(pairs, pr{A: m.Matrix.Columns[i], B: m.Matrix.Columns[j], R: r})
			}
		}
		sort.Slice(pairs, func(i, j int) bool {
			ai := math.Abs(pairs[i].R)
			aj := math.Abs(pairs[j].R)
			if ai == aj {
				return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
			}
			return ai > aj
		})
		if len(pairs) > 10 {
			pairs = pairs[:10]
		}
		for _, p := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: rho=%.3f\n", p.A, p.B, p.R))
		}
		if len(pairs) == 0 {
			b.WriteString("- (no defined pairs)\n")
		}
	}

	if ds != nil && opt.SampleRows > 0 && ds.Len() > 0 && ds.Width() > 0 {
		names := ds.Columns()
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, name := range names {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeVal(safeName(name)))
		}
		b.WriteString(" |\n| ")
		for i := range names {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for row := 0; row < ds.Len() && row < opt.SampleRows; row++ {
			b.WriteString("| ")
			for i, name := range names {
				if i > 0 {
					b.WriteString(" | ")
				}
				col, _ := ds.Column(name)
				val := ""
				if c := col.Cells[row]; c.Valid {
					val = cellText(col.Kind, c)
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	return b.String()
}

func writeMetrics(b *strings.Builder, title string, r Result) {
	if r.Len() == 0 {
		return
	}
	b.WriteString("\n[" + title + "]\n")
	for _, m := range r.Metrics {
		switch m.Kind {
		case DistributionValue:
			b.WriteString(fmt.Sprintf("- %s:\n", m.Name))
			for _, c := range m.Counts {
				b.WriteString(fmt.Sprintf("  • %s: %d\n", safeVal(safeName(c.Value)), c.Count))
			}
		case MatrixValue:
			if m.Matrix != nil {
				b.WriteString(fmt.Sprintf("- %s: %d numeric columns\n", m.Name, len(m.Matrix.Columns)))
			}
		default:
			b.WriteString(fmt.Sprintf("- %s: %s\n", m.Name, m.String()))
		}
	}
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
