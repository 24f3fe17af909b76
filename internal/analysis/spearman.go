package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/dataset"
)

// SpearmanMatrix computes pairwise Spearman correlations across the named
// numeric columns using rows where both values are present. Pairs with
// fewer than two shared rows, or a constant side, are NaN. The diagonal is
// always 1.
func SpearmanMatrix(ds *dataset.Dataset, names []string) *CorrMatrix {
	n := len(names)
	cols := make([]*dataset.Column, n)
	for i, name := range names {
		cols[i], _ = ds.Column(name)
	}
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
		mat[i][i] = 1
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			r := math.NaN()
			if cols[a] != nil && cols[b] != nil {
				var xs, ys []float64
				for i := 0; i < ds.Len(); i++ {
					ca, cb := cols[a].Cells[i], cols[b].Cells[i]
					if ca.Valid && cb.Valid {
						xs = append(xs, ca.Num)
						ys = append(ys, cb.Num)
					}
				}
				r = Spearman(xs, ys)
			}
			mat[a][b] = r
			mat[b][a] = r
		}
	}
	cp := make([]string, n)
	copy(cp, names)
	return &CorrMatrix{Columns: cp, Values: mat}
}

// Spearman returns the rank correlation of paired samples x and y.
func Spearman(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(Rank(x), Rank(y), nil)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// Rank assigns 1-based ranks, giving tied values their average rank.
func Rank(x []float64) []float64 {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })
	ranks := make([]float64, len(x))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && x[idx[j+1]] == x[idx[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

func roundTo(x float64, digits int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	p := math.Pow(10, float64(digits))
	return math.Round(x*p) / p
}
