package report

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/ml"
	"github.com/yourusername/diamond-edge/internal/models"
)

func sampleGame() *models.FinalizedGame {
	return &models.FinalizedGame{
		HomeTeam:     "New York Yankees",
		AwayTeam:     "Boston Red Sox",
		CommenceTime: time.Date(2023, 7, 15, 23, 10, 0, 0, time.UTC),
		Recommendation: &models.Recommendation{
			ID:             uuid.New(),
			TeamName:       "New York Yankees",
			PredictedValue: 0.6173,
			BestPrice:      -145,
			Bookmaker:      "DraftKings",
			ExpectedValue:  0.0429,
			ExpectedProfit: -89.5085,
		},
	}
}

func TestFormatRecommendation(t *testing.T) {
	out := FormatRecommendation(sampleGame().Recommendation)

	assert.Contains(t, out, "Team: New York Yankees")
	assert.Contains(t, out, "Bookmaker: DraftKings")
	assert.Contains(t, out, "Price: -145")
	assert.Contains(t, out, "Predicted Win Percentage: 61.73%")
	assert.Contains(t, out, "Expected Profit: $-89.51 for every $100 bet")
}

func TestFormatRecommendationPositivePriceSign(t *testing.T) {
	rec := sampleGame().Recommendation
	rec.BestPrice = 130
	out := FormatRecommendation(rec)
	assert.Contains(t, out, "Price: +130")
}

func TestBuildEmail(t *testing.T) {
	metrics := models.EvalMetrics{MAE: 0.0512, MSE: 0.0041, R2: 0.7321}
	importance := []ml.FeatureImportance{
		{Name: "bat_OBP", MSEDelta: 0.01},
		{Name: "pit_ERA", MSEDelta: 0.008},
		{Name: "field_E", MSEDelta: 0.002},
		{Name: "bat_HR", MSEDelta: 0.001},
	}
	date := time.Date(2023, 7, 15, 12, 0, 0, 0, time.UTC)

	body, err := BuildEmail([]*models.FinalizedGame{sampleGame()}, metrics, importance, date)
	require.NoError(t, err)

	assert.Contains(t, body, "Saturday, July 15, 2023")
	assert.Contains(t, body, "Boston Red Sox @ New York Yankees")
	assert.Contains(t, body, "<strong>New York Yankees</strong>")
	assert.Contains(t, body, "-145")
	assert.Contains(t, body, "61.73%")
	assert.Contains(t, body, "MAE: 0.0512")
	assert.Contains(t, body, "bat_OBP, pit_ERA, field_E")
	assert.False(t, strings.Contains(body, "bat_HR"), "only the top three features appear")
}

func TestBuildEmailSkipsGamesWithoutRecommendations(t *testing.T) {
	game := sampleGame()
	game.Recommendation = nil

	body, err := BuildEmail([]*models.FinalizedGame{game}, models.EvalMetrics{}, nil, time.Now())
	require.NoError(t, err)
	assert.NotContains(t, body, "Boston Red Sox @")
	assert.NotContains(t, body, "Most influential features")
}

func TestBuildEmailEmptySlate(t *testing.T) {
	body, err := BuildEmail(nil, models.EvalMetrics{MAE: 0.1}, nil, time.Now())
	require.NoError(t, err)
	assert.Contains(t, body, "Today's Picks")
}
