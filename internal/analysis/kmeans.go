package analysis

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ClusterConfig fixes every source of variation in k-means so identical
// inputs always produce identical centers and labels.
type ClusterConfig struct {
	K       int     `mapstructure:"k" yaml:"k" json:"k"`
	Seed    uint64  `mapstructure:"seed" yaml:"seed" json:"seed"`
	NInit   int     `mapstructure:"n_init" yaml:"n_init" json:"n_init"`
	MaxIter int     `mapstructure:"max_iter" yaml:"max_iter" json:"max_iter"`
	Tol     float64 `mapstructure:"tol" yaml:"tol" json:"tol"`
}

// DefaultClusterConfig returns k=3, seed 42 and 10 initializations.
func DefaultClusterConfig() ClusterConfig {
	return ClusterConfig{K: 3, Seed: 42, NInit: 10, MaxIter: 300, Tol: 1e-4}
}

// withDefaults maps the zero ClusterConfig to DefaultClusterConfig. On a
// partially set config only the non-positive counts are filled, so an
// explicit seed of 0 or a tolerance of 0 is kept.
func (c ClusterConfig) withDefaults() ClusterConfig {
	d := DefaultClusterConfig()
	if c == (ClusterConfig{}) {
		return d
	}
	if c.K <= 0 {
		c.K = d.K
	}
	if c.NInit <= 0 {
		c.NInit = d.NInit
	}
	if c.MaxIter <= 0 {
		c.MaxIter = d.MaxIter
	}
	if c.Tol < 0 {
		c.Tol = d.Tol
	}
	return c
}

// Clustering is the outcome of a k-means fit on one feature.
type Clustering struct {
	Centers []float64
	Labels  []int
	Inertia float64
}

// KMeans partitions x into at most cfg.K clusters with k-means++ seeding and
// Lloyd iterations, keeping the lowest-inertia of cfg.NInit runs. K is
// lowered to the number of distinct values when x has fewer.
func KMeans(x []float64, cfg ClusterConfig) Clustering {
	cfg = cfg.withDefaults()
	if len(x) == 0 {
		return Clustering{}
	}
	k := min(cfg.K, distinct(x))
	_, variance := stat.PopMeanVariance(x, nil)
	tol := cfg.Tol * variance

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	var best Clustering
	for run := 0; run < cfg.NInit; run++ {
		centers := seedCenters(x, k, rng)
		c := lloyd(x, centers, cfg.MaxIter, tol)
		if run == 0 || c.Inertia < best.Inertia {
			best = c
		}
	}
	return best
}

func distinct(x []float64) int {
	s := make([]float64, len(x))
	copy(s, x)
	sort.Float64s(s)
	n := 0
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			n++
		}
	}
	return n
}

// seedCenters is greedy k-means++: each new center is the best of a few
// candidates sampled proportionally to squared distance.
func seedCenters(x []float64, k int, rng *rand.Rand) []float64 {
	n := len(x)
	trials := 2 + int(math.Log(float64(k)))
	centers := make([]float64, 0, k)
	centers = append(centers, x[rng.IntN(n)])

	closest := make([]float64, n)
	for i, v := range x {
		closest[i] = sq(v - centers[0])
	}
	pot := floats.Sum(closest)
	cum := make([]float64, n)
	cand := make([]float64, n)
	bestDist := make([]float64, n)

	for len(centers) < k {
		floats.CumSum(cum, closest)
		bestIdx, bestPot := -1, math.Inf(1)
		for t := 0; t < trials; t++ {
			r := rng.Float64() * pot
			idx := sort.SearchFloat64s(cum, r)
			if idx >= n {
				idx = n - 1
			}
			for i, v := range x {
				cand[i] = math.Min(closest[i], sq(v-x[idx]))
			}
			if p := floats.Sum(cand); p < bestPot {
				bestIdx, bestPot = idx, p
				copy(bestDist, cand)
			}
		}
		centers = append(centers, x[bestIdx])
		copy(closest, bestDist)
		pot = bestPot
	}
	return centers
}

func lloyd(x, centers []float64, maxIter int, tol float64) Clustering {
	k := len(centers)
	labels := make([]int, len(x))
	sums := make([]float64, k)
	counts := make([]int, k)
	for iter := 0; iter < maxIter; iter++ {
		assign(x, centers, labels)
		for j := range sums {
			sums[j], counts[j] = 0, 0
		}
		for i, v := range x {
			sums[labels[i]] += v
			counts[labels[i]]++
		}
		next := make([]float64, k)
		for j := range next {
			if counts[j] > 0 {
				next[j] = sums[j] / float64(counts[j])
				continue
			}
			next[j] = farthest(x, centers, labels)
		}
		shift := 0.0
		for j := range next {
			shift += sq(next[j] - centers[j])
		}
		copy(centers, next)
		if shift <= tol {
			break
		}
	}
	inertia := assign(x, centers, labels)
	return Clustering{Centers: centers, Labels: labels, Inertia: inertia}
}

// assign labels each point with its nearest center (lowest index on ties)
// and returns the total squared distance.
func assign(x, centers []float64, labels []int) float64 {
	total := 0.0
	for i, v := range x {
		best, bestD := 0, math.Inf(1)
		for j, c := range centers {
			if d := sq(v - c); d < bestD {
				best, bestD = j, d
			}
		}
		labels[i] = best
		total += bestD
	}
	return total
}

func farthest(x, centers []float64, labels []int) float64 {
	idx, far := 0, -1.0
	for i, v := range x {
		if d := sq(v - centers[labels[i]]); d > far {
			idx, far = i, d
		}
	}
	return x[idx]
}

func sq(v float64) float64 { return v * v }
