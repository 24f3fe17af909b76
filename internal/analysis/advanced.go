package analysis

import (
	"go.uber.org/zap"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/columns"
	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/dataset"
)

// Derived columns added by the advanced engine.
const (
	AgeGroupColumn = "Age Group"
	ClusterColumn  = "Response Time Cluster"
)

// Advanced metric names.
const (
	MetricNormality   = "Shapiro-Wilk Normality Test"
	MetricClusters    = "Response Time Clusters"
	MetricCorrelation = "Spearman Correlation Matrix"

	FieldStatistic = "statistic"
	FieldPValue    = "p-value"
)

// AgeBand is a half-open age interval [Low, High); the last band also
// includes High.
type AgeBand struct {
	Low, High float64
	Label     string
}

// AgeBands are the fixed respondent age groups.
var AgeBands = []AgeBand{
	{0, 20, "<20"},
	{20, 30, "20-30"},
	{30, 40, "30-40"},
	{40, 50, "40-50"},
	{50, 60, "50-60"},
	{60, 100, "60+"},
}

// AgeGroup returns the band label for age, or false outside [0, 100].
func AgeGroup(age float64) (string, bool) {
	for i, b := range AgeBands {
		if age >= b.Low && (age < b.High || (i == len(AgeBands)-1 && age == b.High)) {
			return b.Label, true
		}
	}
	return "", false
}

// AdvancedEngine runs the normality test, response time clustering and
// rank correlation.
type AdvancedEngine struct {
	Markers columns.Markers
	Cluster ClusterConfig
	// Digits is the rounding applied to test outputs and correlations.
	Digits int
	Logger *zap.Logger
}

// NewAdvancedEngine returns an engine with defaults for zero-valued settings.
func NewAdvancedEngine(markers columns.Markers, cluster ClusterConfig, digits int, logger *zap.Logger) *AdvancedEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if digits <= 0 {
		digits = 3
	}
	return &AdvancedEngine{Markers: markers.WithDefaults(), Cluster: cluster.withDefaults(), Digits: digits, Logger: logger}
}

// Compute enriches ds with AgeGroupColumn and ClusterColumn when their
// inputs are usable and returns the advanced metrics together with ds.
// Steps without usable input are skipped and leave no metric behind.
func (e *AdvancedEngine) Compute(ds *dataset.Dataset) (Result, *dataset.Dataset) {
	var res Result
	if ds == nil {
		return res, ds
	}
	log := e.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if age, ok := columns.Resolve(ds.Columns(), e.Markers.WithDefaults().Age); ok {
		ds.ToNumeric(age)
		vals, rows := ds.Floats(age)
		if len(vals) > 0 {
			w, p := ShapiroWilk(vals)
			res.Set(Metric{Name: MetricNormality, Kind: FieldsValue, Fields: []Field{
				{Key: FieldStatistic, Value: roundTo(w, e.digits())},
				{Key: FieldPValue, Value: roundTo(p, e.digits())},
			}})
			e.addAgeGroups(ds, vals, rows)
			log.Debug("normality test", zap.String("column", age), zap.Int("n", len(vals)), zap.Float64("w", w), zap.Float64("p", p))
		} else {
			log.Debug("normality test skipped: no usable ages", zap.String("column", age))
		}
	}

	if vals, rows := ds.Floats(ResponseTimeColumn); len(vals) > 0 {
		c := KMeans(vals, e.Cluster)
		cells := make([]dataset.Cell, ds.Len())
		for i, row := range rows {
			cells[row] = dataset.NumberCell(float64(c.Labels[i]))
		}
		if err := ds.SetColumn(&dataset.Column{Name: ClusterColumn, Kind: dataset.KindNumeric, Cells: cells}); err != nil {
			log.Warn("cluster column not written", zap.Error(err))
		}
		centers := make([][]float64, len(c.Centers))
		for i, v := range c.Centers {
			centers[i] = []float64{v}
		}
		res.Set(Metric{Name: MetricClusters, Kind: CentersValue, Centers: centers})
		log.Debug("response time clustered", zap.Int("n", len(vals)), zap.Int("k", len(c.Centers)), zap.Float64("inertia", c.Inertia))
	}

	if names := ds.NumericColumns(); len(names) > 0 {
		m := SpearmanMatrix(ds, names)
		for i := range m.Values {
			for j := range m.Values[i] {
				m.Values[i][j] = roundTo(m.Values[i][j], e.digits())
			}
		}
		res.Set(Metric{Name: MetricCorrelation, Kind: MatrixValue, Matrix: m})
	}
	return res, ds
}

func (e *AdvancedEngine) digits() int {
	if e.Digits <= 0 {
		return 3
	}
	return e.Digits
}

func (e *AdvancedEngine) addAgeGroups(ds *dataset.Dataset, vals []float64, rows []int) {
	cells := make([]dataset.Cell, ds.Len())
	for i, row := range rows {
		if label, ok := AgeGroup(vals[i]); ok {
			cells[row] = dataset.CategoryCell(label)
		}
	}
	_ = ds.SetColumn(&dataset.Column{Name: AgeGroupColumn, Kind: dataset.KindCategory, Cells: cells})
}
