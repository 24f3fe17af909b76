package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/columns"
)

func TestMarkdownSections(t *testing.T) {
	ds := surveyDataset(t)
	basic := NewBasicEngine(columns.Markers{}, nil).Compute(ds)
	adv, ds := NewAdvancedEngine(columns.Markers{}, DefaultClusterConfig(), 3, nil).Compute(ds)

	opt := DefaultReportOptions()
	opt.Name = "survey.html"
	md := Markdown(ds, basic, adv, opt)

	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: survey.html",
		"Responses: 4",
		"[SCHEMA]",
		"[BASIC STATISTICS]",
		"- Age Mean: 30",
		"  • Femme: 2",
		"[ADVANCED STATISTICS]",
		"[HEAD AND SAMPLE ROWS]",
	} {
		assert.True(t, strings.Contains(md, want), "missing %q in:\n%s", want, md)
	}
}

func TestMarkdownEscapesCells(t *testing.T) {
	ds := textDataset(t, textCol{"Note", []string{"a|b\nc"}})
	md := Markdown(ds, Result{}, Result{}, DefaultReportOptions())
	assert.Contains(t, md, "| a/b c |")
	assert.NotContains(t, md, "[BASIC STATISTICS]")
}

func TestSummarizeKinds(t *testing.T) {
	ds := surveyDataset(t)
	NewBasicEngine(columns.Markers{}, nil).Compute(ds)
	sums := Summarize(ds, DefaultReportOptions())
	byName := map[string]ColumnSummary{}
	for _, s := range sums {
		byName[s.Name] = s
	}
	age := byName["Informations - Quel est votre âge ?"]
	assert.Equal(t, "numeric", age.Kind)
	assert.Equal(t, 2, age.NonNull)
	assert.Equal(t, 2, age.Missing)
	assert.Equal(t, "datetime", byName["Informations - Date de lancement"].Kind)
	assert.Equal(t, "categorical", byName["Profil - Votre académie"].Kind)
}

func TestMedianMAD(t *testing.T) {
	m, mad := medianMAD([]float64{1, 2, 3, 4, 100})
	assert.Equal(t, 3.0, m)
	assert.Equal(t, 1.0, mad)
	n, c := robustOutliers([]float64{1, 2, 3, 4, 100, 2, 3, 3}, 3.5)
	assert.Equal(t, 1, n)
	assert.Greater(t, c, 3.5)
}
