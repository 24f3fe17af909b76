package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind tells which field of a Metric carries its value.
type ValueKind string

const (
	ScalarValue       ValueKind = "scalar"
	DistributionValue ValueKind = "distribution"
	FieldsValue       ValueKind = "fields"
	MatrixValue       ValueKind = "matrix"
	CentersValue      ValueKind = "centers"
)

// Count is one entry of a frequency distribution.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Field is a named number inside a structured metric such as a test result.
type Field struct {
	Key   string
	Value float64
}

// CorrMatrix holds a symmetric correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// Get returns the correlation between columns a and b.
func (m *CorrMatrix) Get(a, b string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	i, j := -1, -1
	for k, c := range m.Columns {
		if c == a {
			i = k
		}
		if c == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

// Metric is one named statistic. Exactly one value field is meaningful,
// selected by Kind.
type Metric struct {
	Name    string
	Kind    ValueKind
	Scalar  float64
	Counts  []Count
	Fields  []Field
	Matrix  *CorrMatrix
	Centers [][]float64
}

// Field returns the named entry of a FieldsValue metric.
func (m Metric) Field(key string) (float64, bool) {
	for _, f := range m.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return 0, false
}

// String renders the value on one line for tabular outputs.
func (m Metric) String() string {
	switch m.Kind {
	case ScalarValue:
		return formatFloat(m.Scalar)
	case DistributionValue:
		parts := make([]string, len(m.Counts))
		for i, c := range m.Counts {
			parts[i] = fmt.Sprintf("%s: %d", safeName(c.Value), c.Count)
		}
		return strings.Join(parts, "; ")
	case FieldsValue:
		parts := make([]string, len(m.Fields))
		for i, f := range m.Fields {
			parts[i] = fmt.Sprintf("%s: %s", f.Key, formatFloat(f.Value))
		}
		return strings.Join(parts, "; ")
	case CentersValue:
		parts := make([]string, len(m.Centers))
		for i, c := range m.Centers {
			coords := make([]string, len(c))
			for j, x := range c {
				coords[j] = formatFloat(x)
			}
			parts[i] = "[" + strings.Join(coords, ", ") + "]"
		}
		return strings.Join(parts, "; ")
	case MatrixValue:
		if m.Matrix == nil {
			return ""
		}
		var parts []string
		for i, a := range m.Matrix.Columns {
			for j := i + 1; j < len(m.Matrix.Columns); j++ {
				parts = append(parts, fmt.Sprintf("%s ~ %s: %s", a, m.Matrix.Columns[j], formatFloat(m.Matrix.Values[i][j])))
			}
		}
		if len(parts) == 0 && len(m.Matrix.Columns) == 1 {
			return fmt.Sprintf("%s ~ %s: 1", m.Matrix.Columns[0], m.Matrix.Columns[0])
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

func formatFloat(x float64) string {
	if math.IsNaN(x) {
		return "NaN"
	}
	return strconv.FormatFloat(x, 'g', 6, 64)
}

// Result is an ordered set of metrics. A statistic that could not be
// computed is absent, which Lookup reports distinctly from a zero value.
type Result struct {
	Metrics []Metric `json:"metrics"`
}

// Set adds m, replacing a metric with the same name.
func (r *Result) Set(m Metric) {
	for i := range r.Metrics {
		if r.Metrics[i].Name == m.Name {
			r.Metrics[i] = m
			return
		}
	}
	r.Metrics = append(r.Metrics, m)
}

// Lookup returns the named metric.
func (r Result) Lookup(name string) (Metric, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// Names lists metric names in insertion order.
func (r Result) Names() []string {
	out := make([]string, len(r.Metrics))
	for i, m := range r.Metrics {
		out[i] = m.Name
	}
	return out
}

// Len returns the number of metrics.
func (r Result) Len() int { return len(r.Metrics) }

// Combine concatenates results for reporting; later duplicates win.
func Combine(rs ...Result) Result {
	var out Result
	for _, r := range rs {
		for _, m := range r.Metrics {
			out.Set(m)
		}
	}
	return out
}

func scalar(name string, x float64) Metric {
	return Metric{Name: name, Kind: ScalarValue, Scalar: x}
}

// jsonFloat encodes NaN and infinities as null.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	x := float64(f)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, x, 'g', -1, 64), nil
}

func (f *jsonFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = jsonFloat(math.NaN())
		return nil
	}
	x, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("decode float: %w", err)
	}
	*f = jsonFloat(x)
	return nil
}

type fieldJSON struct {
	Key   string    `json:"key"`
	Value jsonFloat `json:"value"`
}

type matrixJSON struct {
	Columns []string      `json:"columns"`
	Values  [][]jsonFloat `json:"values"`
}

type metricJSON struct {
	Name    string        `json:"name"`
	Kind    ValueKind     `json:"kind"`
	Scalar  *jsonFloat    `json:"scalar,omitempty"`
	Counts  []Count       `json:"counts,omitempty"`
	Fields  []fieldJSON   `json:"fields,omitempty"`
	Matrix  *matrixJSON   `json:"matrix,omitempty"`
	Centers [][]jsonFloat `json:"centers,omitempty"`
}

func (m Metric) MarshalJSON() ([]byte, error) {
	out := metricJSON{Name: m.Name, Kind: m.Kind, Counts: m.Counts}
	switch m.Kind {
	case ScalarValue:
		v := jsonFloat(m.Scalar)
		out.Scalar = &v
	case FieldsValue:
		for _, f := range m.Fields {
			out.Fields = append(out.Fields, fieldJSON{Key: f.Key, Value: jsonFloat(f.Value)})
		}
	case MatrixValue:
		if m.Matrix != nil {
			mj := &matrixJSON{Columns: m.Matrix.Columns}
			for _, row := range m.Matrix.Values {
				mj.Values = append(mj.Values, toJSONFloats(row))
			}
			out.Matrix = mj
		}
	case CentersValue:
		for _, c := range m.Centers {
			out.Centers = append(out.Centers, toJSONFloats(c))
		}
	}
	return json.Marshal(out)
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	var in metricJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*m = Metric{Name: in.Name, Kind: in.Kind, Counts: in.Counts}
	switch in.Kind {
	case ScalarValue:
		m.Scalar = math.NaN()
		if in.Scalar != nil {
			m.Scalar = float64(*in.Scalar)
		}
	case FieldsValue:
		for _, f := range in.Fields {
			m.Fields = append(m.Fields, Field{Key: f.Key, Value: float64(f.Value)})
		}
	case MatrixValue:
		if in.Matrix != nil {
			cm := &CorrMatrix{Columns: in.Matrix.Columns}
			for _, row := range in.Matrix.Values {
				cm.Values = append(cm.Values, fromJSONFloats(row))
			}
			m.Matrix = cm
		}
	case CentersValue:
		for _, c := range in.Centers {
			m.Centers = append(m.Centers, fromJSONFloats(c))
		}
	}
	return nil
}

func toJSONFloats(xs []float64) []jsonFloat {
	out := make([]jsonFloat, len(xs))
	for i, x := range xs {
		out[i] = jsonFloat(x)
	}
	return out
}

func fromJSONFloats(xs []jsonFloat) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
