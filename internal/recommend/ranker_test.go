package recommend

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/dataset"
	"github.com/yourusername/diamond-edge/internal/ml"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/teams"
)

const testFeature = "stand_W-L%"

// memorizingModel fits a single unbootstrapped tree on distinct feature
// values so the model reproduces each training target exactly. That makes
// per-team predictions controllable from the table alone.
func memorizingModel(t *testing.T, ratings map[int]float64) (*ml.Model, *dataset.Table) {
	t.Helper()

	table := dataset.NewTable()
	var X [][]float64
	var y []float64
	for id, rating := range ratings {
		require.NoError(t, table.Append(&dataset.Record{
			TeamID: id,
			Values: map[string]float64{testFeature: rating},
		}))
		X = append(X, []float64{rating})
		y = append(y, rating)
	}

	params := ml.Params{NumTrees: 1, MinSamplesSplit: 2, MinSamplesLeaf: 1}
	forest := ml.FitForest(X, y, params, rand.New(rand.NewSource(1)))
	return ml.NewModel(forest, []string{testFeature}, testFeature, params), table
}

func gameWithQuote(home, away, pricedTeam string, price int) *models.GameEvent {
	return &models.GameEvent{
		ID:       "game-1",
		HomeTeam: home,
		AwayTeam: away,
		Bookmakers: []models.Bookmaker{{
			Key:   "booka",
			Title: "BookA",
			Markets: []models.Market{{
				Key:      models.MarketHeadToHead,
				Outcomes: []models.Outcome{{Name: pricedTeam, Price: price}},
			}},
		}},
	}
}

func TestRecommendPicksHigherPredictedSide(t *testing.T) {
	lookup := teams.NewLookup()
	ranker := NewRanker(lookup, models.MarketHeadToHead, nil)

	// Yankees (19) rated above Red Sox (4).
	model, table := memorizingModel(t, map[int]float64{19: 0.55, 4: 0.45})

	rec, ok := ranker.Recommend(gameWithQuote("New York Yankees", "Boston Red Sox", "New York Yankees", -120), model, table)
	require.True(t, ok)
	assert.Equal(t, "New York Yankees", rec.TeamName)
	assert.InDelta(t, 0.55, rec.PredictedValue, 1e-9)

	// Same teams with the favorite as the away side: selection follows the
	// prediction, not the home/away slot.
	rec, ok = ranker.Recommend(gameWithQuote("Boston Red Sox", "New York Yankees", "New York Yankees", -120), model, table)
	require.True(t, ok)
	assert.Equal(t, "New York Yankees", rec.TeamName)
}

func TestRecommendHomeKeepsTies(t *testing.T) {
	ranker := NewRanker(teams.NewLookup(), models.MarketHeadToHead, nil)
	model, table := memorizingModel(t, map[int]float64{19: 0.5, 4: 0.5})

	rec, ok := ranker.Recommend(gameWithQuote("Boston Red Sox", "New York Yankees", "Boston Red Sox", 110), model, table)
	require.True(t, ok)
	assert.Equal(t, "Boston Red Sox", rec.TeamName)
}

func TestRecommendAttachesBestQuoteAndEV(t *testing.T) {
	ranker := NewRanker(teams.NewLookup(), models.MarketHeadToHead, nil)
	model, table := memorizingModel(t, map[int]float64{19: 0.7, 4: 0.4})

	game := gameWithQuote("New York Yankees", "Boston Red Sox", "New York Yankees", -120)
	game.Bookmakers = append(game.Bookmakers, models.Bookmaker{
		Key:   "bookb",
		Title: "BookB",
		Markets: []models.Market{{
			Key:      models.MarketHeadToHead,
			Outcomes: []models.Outcome{{Name: "Boston Red Sox", Price: 110}},
		}},
	})

	rec, ok := ranker.Recommend(game, model, table)
	require.True(t, ok)
	assert.Equal(t, -120, rec.BestPrice)
	assert.Equal(t, "BookA", rec.Bookmaker)
	assert.InDelta(t, (100.0/120.0)*0.7-0.3, rec.ExpectedValue, 1e-9)
	assert.InDelta(t, 0.7*-120, rec.ExpectedProfit, 1e-9)
	assert.NotEqual(t, "", rec.ID.String())
}

func TestRecommendSinglePredictableSide(t *testing.T) {
	ranker := NewRanker(teams.NewLookup(), models.MarketHeadToHead, nil)
	// Only the away side has a feature row.
	model, table := memorizingModel(t, map[int]float64{4: 0.6})

	rec, ok := ranker.Recommend(gameWithQuote("New York Yankees", "Boston Red Sox", "Boston Red Sox", 130), model, table)
	require.True(t, ok)
	assert.Equal(t, "Boston Red Sox", rec.TeamName)
}

func TestRecommendSkipsWhenNoSideIsPredictable(t *testing.T) {
	ranker := NewRanker(teams.NewLookup(), models.MarketHeadToHead, nil)
	model, table := memorizingModel(t, map[int]float64{12: 0.5})

	rec, ok := ranker.Recommend(gameWithQuote("New York Yankees", "Boston Red Sox", "New York Yankees", -120), model, table)
	assert.False(t, ok)
	assert.Nil(t, rec)
}

func TestRecommendSkipsWhenChosenSideHasNoQuote(t *testing.T) {
	ranker := NewRanker(teams.NewLookup(), models.MarketHeadToHead, nil)
	model, table := memorizingModel(t, map[int]float64{19: 0.7, 4: 0.4})

	// The only priced outcome is the side the model rejects.
	rec, ok := ranker.Recommend(gameWithQuote("New York Yankees", "Boston Red Sox", "Boston Red Sox", 140), model, table)
	assert.False(t, ok)
	assert.Nil(t, rec)
}

func TestRecommendUnknownSlateNames(t *testing.T) {
	ranker := NewRanker(teams.NewLookup(), models.MarketHeadToHead, nil)
	model, table := memorizingModel(t, map[int]float64{19: 0.7})

	rec, ok := ranker.Recommend(gameWithQuote("Montreal Expos", "Brooklyn Dodgers", "Montreal Expos", 120), model, table)
	assert.False(t, ok)
	assert.Nil(t, rec)
}
