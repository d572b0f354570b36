package models

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is the finalized pick for a single game: the side the model
// favors, the best available price for that side, and the expected value of
// taking it. Immutable once returned by the ranker.
type Recommendation struct {
	ID             uuid.UUID `json:"id"`
	TeamName       string    `json:"team" validate:"required"`
	PredictedValue float64   `json:"predicted_win_pct"`
	BestPrice      int       `json:"price" validate:"required"`
	Bookmaker      string    `json:"bookmaker" validate:"required"`
	ExpectedValue  float64   `json:"expected_value"`
	ExpectedProfit float64   `json:"expected_profit"`
}

// FinalizedGame pairs a slate game with its recommendation. The orchestrator
// emits one per game that produced a pick; games without a pick are dropped.
type FinalizedGame struct {
	HomeTeam       string          `json:"home_team"`
	AwayTeam       string          `json:"away_team"`
	CommenceTime   time.Time       `json:"commence_time"`
	Recommendation *Recommendation `json:"recommendation"`
}

// EvalMetrics are held-out evaluation figures for the trained model. They are
// reporting artifacts only and never gate whether predictions are produced.
type EvalMetrics struct {
	MAE float64 `json:"mae"`
	MSE float64 `json:"mse"`
	R2  float64 `json:"r2"`
}

// FinalizedRun is one complete pipeline run: the slate date, the model's
// evaluation figures, and every finalized game, in slate order.
type FinalizedRun struct {
	ID      uuid.UUID        `json:"id"`
	RunDate time.Time        `json:"run_date"`
	Metrics EvalMetrics      `json:"metrics"`
	Games   []*FinalizedGame `json:"games"`
}
