package analysis

import (
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/columns"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/dataset"
)

// ResponseTimeColumn is the derived column holding submission minus launch time.
const ResponseTimeColumn = "Response Time (minutes)"

// Basic metric names.
const (
	MetricAgeMean             = "Age Mean"
	MetricAgeMedian           = "Age Median"
	MetricAgeStd              = "Age Std"
	MetricAgeMin              = "Age Min"
	MetricAgeMax              = "Age Max"
	MetricAvgResponseTime     = "Average Response Time"
	MetricMedianResponseTime  = "Median Response Time"
	MetricGenderDistribution  = "Gender Distribution"
	MetricAcademyDistribution = "Academy Distribution"
	MetricStatusDistribution  = "Status Distribution"
)

// BasicEngine computes descriptive statistics over a survey dataset.
type BasicEngine struct {
	Markers columns.Markers
	Logger  *zap.Logger
}

// NewBasicEngine returns an engine using markers; empty markers fall back to defaults.
func NewBasicEngine(markers columns.Markers, logger *zap.Logger) *BasicEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BasicEngine{Markers: markers.WithDefaults(), Logger: logger}
}

// Compute returns age aggregates, response time aggregates and categorical
// distributions. Each group is omitted when its columns cannot be resolved.
// The age column is coerced to numeric, the launch and submission columns
// to timestamps, and ResponseTimeColumn is added when both exist.
func (e *BasicEngine) Compute(ds *dataset.Dataset) Result {
	var res Result
	if ds == nil {
		return res
	}
	log := e.logger()
	f := columns.ResolveAll(ds.Columns(), e.Markers)

	if f.Age != "" {
		ds.ToNumeric(f.Age)
		vals, _ := ds.Floats(f.Age)
		d := describe(vals)
		res.Set(scalar(MetricAgeMean, d.mean))
		res.Set(scalar(MetricAgeMedian, d.median))
		res.Set(scalar(MetricAgeStd, d.std))
		res.Set(scalar(MetricAgeMin, d.min))
		res.Set(scalar(MetricAgeMax, d.max))
		log.Debug("age statistics", zap.String("column", f.Age), zap.Int("values", len(vals)))
	} else {
		log.Debug("age column not found", zap.String("marker", e.Markers.Age))
	}

	if f.Start != "" && f.End != "" {
		if addResponseTime(ds, f.Start, f.End) {
			vals, _ := ds.Floats(ResponseTimeColumn)
			d := describe(vals)
			res.Set(scalar(MetricAvgResponseTime, d.mean))
			res.Set(scalar(MetricMedianResponseTime, d.median))
			log.Debug("response time derived", zap.String("start", f.Start), zap.String("end", f.End), zap.Int("values", len(vals)))
		}
	} else {
		log.Debug("response time skipped", zap.Bool("start_found", f.Start != ""), zap.Bool("end_found", f.End != ""))
	}

	for _, dist := range []struct{ metric, column string }{
		{MetricGenderDistribution, f.Gender},
		{MetricAcademyDistribution, f.Organization},
		{MetricStatusDistribution, f.Status},
	} {
		if dist.column == "" {
			continue
		}
		res.Set(Metric{Name: dist.metric, Kind: DistributionValue, Counts: valueCounts(ds, dist.column)})
	}
	return res
}

func (e *BasicEngine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func addResponseTime(ds *dataset.Dataset, start, end string) bool {
	ds.ToTime(start)
	ds.ToTime(end)
	sc, ok1 := ds.Column(start)
	ec, ok2 := ds.Column(end)
	if !ok1 || !ok2 {
		return false
	}
	cells := make([]dataset.Cell, ds.Len())
	for i := range cells {
		s, e := sc.Cells[i], ec.Cells[i]
		if !s.Valid || !e.Valid {
			continue
		}
		cells[i] = dataset.NumberCell(e.Time.Sub(s.Time).Seconds() / 60)
	}
	return ds.SetColumn(&dataset.Column{Name: ResponseTimeColumn, Kind: dataset.KindNumeric, Cells: cells}) == nil
}

type summary struct {
	n      int
	mean   float64
	median float64
	std    float64
	min    float64
	max    float64
}

// describe aggregates vals; every field is NaN when vals is empty.
func describe(vals []float64) summary {
	nan := math.NaN()
	if len(vals) == 0 {
		return summary{mean: nan, median: nan, std: nan, min: nan, max: nan}
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	s := summary{
		n:      len(vals),
		mean:   stat.Mean(vals, nil),
		median: quantile(sorted, 0.5),
		min:    floats.Min(vals),
		max:    floats.Max(vals),
		std:    nan,
	}
	if len(vals) > 1 {
		s.std = stat.StdDev(vals, nil)
	}
	return s
}

// valueCounts counts valid cells by text, most frequent first; ties keep
// first-seen order.
func valueCounts(ds *dataset.Dataset, name string) []Count {
	col, ok := ds.Column(name)
	if !ok {
		return nil
	}
	idx := map[string]int{}
	var out []Count
	for _, c := range col.Cells {
		if !c.Valid {
			continue
		}
		v := cellText(col.Kind, c)
		if i, ok := idx[v]; ok {
			out[i].Count++
			continue
		}
		idx[v] = len(out)
		out = append(out, Count{Value: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func cellText(kind dataset.Kind, c dataset.Cell) string {
	switch kind {
	case dataset.KindNumeric:
		return formatFloat(c.Num)
	case dataset.KindTime:
		return c.Time.Format("2006-01-02 15:04:05")
	default:
		return c.Text
	}
}

// quantile interpolates linearly between order statistics of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
