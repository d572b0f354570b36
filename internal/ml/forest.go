// Package ml trains and applies the regression model that estimates each
// team's win propensity from its season statistics. The estimator is an
// in-process random forest: bootstrapped CART regression trees averaged at
// prediction time.
package ml

import (
	"math"
	"math/rand"
	"sort"
)

// Params are the tunable hyperparameters of a forest fit.
type Params struct {
	NumTrees        int    `json:"n_estimators"`
	MaxFeatures     string `json:"max_features"` // "sqrt", "log2" or "" for all
	MaxDepth        int    `json:"max_depth"`    // 0 means unlimited
	MinSamplesSplit int    `json:"min_samples_split"`
	MinSamplesLeaf  int    `json:"min_samples_leaf"`
	Bootstrap       bool   `json:"bootstrap"`
}

// DefaultParams returns the baseline configuration used when no search space
// is supplied.
func DefaultParams() Params {
	return Params{
		NumTrees:        100,
		MaxFeatures:     "sqrt",
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Bootstrap:       true,
	}
}

type node struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *node
	right     *node
}

// Forest is a fitted random forest regressor.
type Forest struct {
	trees  []*node
	params Params
}

// FitForest trains a forest on the row-major feature matrix X and target y.
// The random source drives bootstrap sampling and feature subsetting; a fixed
// seed gives a reproducible fit.
func FitForest(X [][]float64, y []float64, params Params, rng *rand.Rand) *Forest {
	f := &Forest{params: params, trees: make([]*node, params.NumTrees)}
	n := len(X)

	for t := 0; t < params.NumTrees; t++ {
		// Each tree gets its own derived source so tree construction order
		// does not couple trees together.
		treeRNG := rand.New(rand.NewSource(rng.Int63()))

		idx := make([]int, n)
		if params.Bootstrap {
			for i := range idx {
				idx[i] = treeRNG.Intn(n)
			}
		} else {
			for i := range idx {
				idx[i] = i
			}
		}
		f.trees[t] = growTree(X, y, idx, 0, params, treeRNG)
	}
	return f
}

// Predict returns the forest's estimate for a single feature vector.
func (f *Forest) Predict(x []float64) float64 {
	if len(f.trees) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range f.trees {
		sum += predictTree(t, x)
	}
	return sum / float64(len(f.trees))
}

func predictTree(n *node, x []float64) float64 {
	for !n.leaf {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

func growTree(X [][]float64, y []float64, idx []int, depth int, params Params, rng *rand.Rand) *node {
	if len(idx) < params.MinSamplesSplit || (params.MaxDepth > 0 && depth >= params.MaxDepth) {
		return leafNode(y, idx)
	}

	feature, threshold, ok := bestSplit(X, y, idx, params, rng)
	if !ok {
		return leafNode(y, idx)
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      growTree(X, y, left, depth+1, params, rng),
		right:     growTree(X, y, right, depth+1, params, rng),
	}
}

func leafNode(y []float64, idx []int) *node {
	sum := 0.0
	for _, i := range idx {
		sum += y[i]
	}
	value := 0.0
	if len(idx) > 0 {
		value = sum / float64(len(idx))
	}
	return &node{leaf: true, value: value}
}

// bestSplit scans a random feature subset for the threshold minimizing the
// summed squared error of the two children.
func bestSplit(X [][]float64, y []float64, idx []int, params Params, rng *rand.Rand) (feature int, threshold float64, ok bool) {
	nFeatures := len(X[idx[0]])
	m := featureSubsetSize(params.MaxFeatures, nFeatures)
	candidates := rng.Perm(nFeatures)[:m]

	bestScore := math.Inf(1)
	for _, f := range candidates {
		sorted := make([]int, len(idx))
		copy(sorted, idx)
		sort.Slice(sorted, func(a, b int) bool { return X[sorted[a]][f] < X[sorted[b]][f] })

		// Running sums allow scoring every cut point in one pass.
		var leftSum, leftSq float64
		totalSum, totalSq := 0.0, 0.0
		for _, i := range sorted {
			totalSum += y[i]
			totalSq += y[i] * y[i]
		}

		for pos := 0; pos < len(sorted)-1; pos++ {
			i := sorted[pos]
			leftSum += y[i]
			leftSq += y[i] * y[i]

			if X[sorted[pos]][f] == X[sorted[pos+1]][f] {
				continue
			}
			nLeft := pos + 1
			nRight := len(sorted) - nLeft
			if nLeft < params.MinSamplesLeaf || nRight < params.MinSamplesLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			score := sse(leftSq, leftSum, nLeft) + sse(rightSq, rightSum, nRight)
			if score < bestScore {
				bestScore = score
				feature = f
				threshold = (X[sorted[pos]][f] + X[sorted[pos+1]][f]) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

// sse computes sum((y-mean)^2) from the sum of squares and the sum.
func sse(sumSq, sum float64, n int) float64 {
	return sumSq - sum*sum/float64(n)
}

func featureSubsetSize(maxFeatures string, nFeatures int) int {
	var m int
	switch maxFeatures {
	case "sqrt":
		m = int(math.Sqrt(float64(nFeatures)))
	case "log2":
		m = int(math.Log2(float64(nFeatures)))
	default:
		m = nFeatures
	}
	if m < 1 {
		m = 1
	}
	if m > nFeatures {
		m = nFeatures
	}
	return m
}
