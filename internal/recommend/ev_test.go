package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedValue(t *testing.T) {
	tests := []struct {
		name      string
		price     int
		predicted float64
		want      float64
	}{
		{"underdog price", 150, 0.6, 0.5},
		{"favorite price cancels out", -150, 0.6, 0.0},
		{"even underdog", 100, 0.5, 0.0},
		{"certain win", 120, 1.0, 1.2},
		{"certain loss", 120, 0.0, -1.0},
		{"heavy favorite low probability", -300, 0.2, -0.7333333333},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ExpectedValue(tt.price, tt.predicted), 1e-9)
		})
	}
}

// Regression outputs are not clamped, so an out-of-range prediction flows
// straight through the formula.
func TestExpectedValueUnclamped(t *testing.T) {
	got := ExpectedValue(100, 1.1)
	assert.InDelta(t, 1.2, got, 1e-9)
}
