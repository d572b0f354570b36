package ml

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForestLearnsConstantTarget(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}, {5}}
	y := []float64{0.5, 0.5, 0.5, 0.5, 0.5}

	forest := FitForest(X, y, DefaultParams(), rand.New(rand.NewSource(1)))
	for _, x := range X {
		assert.InDelta(t, 0.5, forest.Predict([]float64{x[0]}), 1e-12)
	}
}

func TestForestLearnsStepFunction(t *testing.T) {
	var X [][]float64
	var y []float64
	for i := 0; i < 20; i++ {
		v := float64(i) / 20
		X = append(X, []float64{v})
		if v < 0.5 {
			y = append(y, 0)
		} else {
			y = append(y, 1)
		}
	}

	forest := FitForest(X, y, DefaultParams(), rand.New(rand.NewSource(3)))
	assert.Less(t, forest.Predict([]float64{0.1}), 0.3)
	assert.Greater(t, forest.Predict([]float64{0.9}), 0.7)
}

func TestSingleTreeMemorizesDistinctRows(t *testing.T) {
	X := [][]float64{{0.1}, {0.4}, {0.7}, {0.9}}
	y := []float64{0.2, 0.5, 0.6, 0.8}

	params := Params{NumTrees: 1, MinSamplesSplit: 2, MinSamplesLeaf: 1}
	forest := FitForest(X, y, params, rand.New(rand.NewSource(1)))
	for i, x := range X {
		assert.InDelta(t, y[i], forest.Predict(x), 1e-12)
	}
}

func TestForestReproducibleUnderFixedSeed(t *testing.T) {
	var X [][]float64
	var y []float64
	gen := rand.New(rand.NewSource(9))
	for i := 0; i < 15; i++ {
		a, b := gen.Float64(), gen.Float64()
		X = append(X, []float64{a, b})
		y = append(y, 0.6*a+0.4*b)
	}

	f1 := FitForest(X, y, DefaultParams(), rand.New(rand.NewSource(42)))
	f2 := FitForest(X, y, DefaultParams(), rand.New(rand.NewSource(42)))

	probe := []float64{0.3, 0.7}
	assert.Equal(t, f1.Predict(probe), f2.Predict(probe))
}

func TestForestRespectsMaxDepth(t *testing.T) {
	X := [][]float64{{0.1}, {0.4}, {0.7}, {0.9}}
	y := []float64{0.2, 0.5, 0.6, 0.8}

	stump := Params{NumTrees: 1, MaxDepth: 1, MinSamplesSplit: 2, MinSamplesLeaf: 1}
	forest := FitForest(X, y, stump, rand.New(rand.NewSource(1)))

	// A depth-1 tree has at most two leaves, so at most two distinct outputs.
	distinct := map[float64]struct{}{}
	for _, x := range X {
		distinct[forest.Predict(x)] = struct{}{}
	}
	require.LessOrEqual(t, len(distinct), 2)
}

func TestFeatureSubsetSize(t *testing.T) {
	tests := []struct {
		mode     string
		features int
		want     int
	}{
		{"sqrt", 56, 7},
		{"sqrt", 1, 1},
		{"log2", 56, 5},
		{"log2", 1, 1},
		{"", 56, 56},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, featureSubsetSize(tt.mode, tt.features), "%s/%d", tt.mode, tt.features)
	}
}
