// Package recommend converts model predictions and market prices into betting
// recommendations and orchestrates the per-game pipeline.
package recommend

// ExpectedValue computes the expected profit per unit stake for a bet at the
// given American-odds price, treating the predicted value as a win
// probability. The prediction is used as-is: a regression output outside
// [0,1] is not clamped, so the EV simply reflects what the model produced.
func ExpectedValue(price int, predicted float64) float64 {
	if price > 0 {
		return (float64(price)/100)*predicted - (1 - predicted)
	}
	return (100/absF(price))*predicted - (1 - predicted)
}

func absF(price int) float64 {
	if price < 0 {
		return float64(-price)
	}
	return float64(price)
}
