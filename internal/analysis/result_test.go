package analysis

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSetReplacesByName(t *testing.T) {
	var r Result
	r.Set(scalar("a", 1))
	r.Set(scalar("b", 2))
	r.Set(scalar("a", 3))
	assert.Equal(t, []string{"a", "b"}, r.Names())
	m, _ := r.Lookup("a")
	assert.Equal(t, 3.0, m.Scalar)
	_, ok := r.Lookup("missing")
	assert.False(t, ok)
}

func TestCombineKeepsOrder(t *testing.T) {
	var a, b Result
	a.Set(scalar("x", 1))
	b.Set(scalar("y", 2))
	assert.Equal(t, []string{"x", "y"}, Combine(a, b).Names())
}

func TestMetricJSONEncodesNaNAsNull(t *testing.T) {
	var r Result
	r.Set(scalar(MetricAgeStd, math.NaN()))
	r.Set(Metric{Name: MetricNormality, Kind: FieldsValue, Fields: []Field{{FieldStatistic, 0.9}, {FieldPValue, math.NaN()}}})
	r.Set(Metric{Name: MetricCorrelation, Kind: MatrixValue, Matrix: &CorrMatrix{
		Columns: []string{"a", "b"},
		Values:  [][]float64{{1, math.NaN()}, {math.NaN(), 1}},
	}})
	r.Set(Metric{Name: MetricClusters, Kind: CentersValue, Centers: [][]float64{{5}, {60.5}}})
	r.Set(Metric{Name: MetricGenderDistribution, Kind: DistributionValue, Counts: []Count{{"F", 2}}})

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `"scalar":null`), string(b))

	var back Result
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, r.Names(), back.Names())

	m, _ := back.Lookup(MetricAgeStd)
	assert.True(t, math.IsNaN(m.Scalar))
	m, _ = back.Lookup(MetricNormality)
	s, _ := m.Field(FieldStatistic)
	assert.Equal(t, 0.9, s)
	p, _ := m.Field(FieldPValue)
	assert.True(t, math.IsNaN(p))
	m, _ = back.Lookup(MetricCorrelation)
	v, ok := m.Matrix.Get("a", "b")
	assert.True(t, ok)
	assert.True(t, math.IsNaN(v))
	m, _ = back.Lookup(MetricClusters)
	assert.Equal(t, [][]float64{{5}, {60.5}}, m.Centers)
	m, _ = back.Lookup(MetricGenderDistribution)
	assert.Equal(t, []Count{{"F", 2}}, m.Counts)
}

func TestMetricString(t *testing.T) {
	assert.Equal(t, "30", scalar("x", 30).String())
	assert.Equal(t, "NaN", scalar("x", math.NaN()).String())
	d := Metric{Kind: DistributionValue, Counts: []Count{{"F", 2}, {"", 1}}}
	assert.Equal(t, "F: 2; (unnamed): 1", d.String())
	c := Metric{Kind: CentersValue, Centers: [][]float64{{5}, {60.5}}}
	assert.Equal(t, "[5]; [60.5]", c.String())
}
