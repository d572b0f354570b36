package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/teams"
)

var fixedNow = func() time.Time {
	return time.Date(2023, 7, 15, 18, 30, 0, 0, time.UTC)
}

func slateGame(id, home, away string, commence time.Time, price int) *models.GameEvent {
	g := gameWithQuote(home, away, home, price)
	g.ID = id
	g.CommenceTime = commence
	return g
}

func TestTeamsPlayingToday(t *testing.T) {
	lookup := teams.NewLookup()
	today := fixedNow()

	games := []*models.GameEvent{
		slateGame("g1", "New York Yankees", "Boston Red Sox", today.Add(2*time.Hour), -120),
		slateGame("g2", "Chicago Cubs", "St. Louis Cardinals", today.AddDate(0, 0, 1), 110),
		slateGame("g3", "Montreal Expos", "Miami Marlins", today, 105),
	}

	ids := TeamsPlayingToday(games, lookup, today)
	assert.Equal(t, map[int]struct{}{
		19: {}, // Yankees
		4:  {}, // Red Sox
		15: {}, // Marlins, despite the unknown opponent
	}, ids)
}

// A commence time late on the UTC date still counts as today, and one just
// past midnight does not, regardless of any local offset.
func TestTeamsPlayingTodayUsesUTCCalendarDate(t *testing.T) {
	lookup := teams.NewLookup()
	today := fixedNow()

	lateTonight := time.Date(2023, 7, 15, 23, 59, 0, 0, time.UTC)
	pastMidnight := time.Date(2023, 7, 16, 0, 1, 0, 0, time.UTC)

	games := []*models.GameEvent{
		slateGame("g1", "New York Yankees", "Boston Red Sox", lateTonight, -120),
		slateGame("g2", "Chicago Cubs", "St. Louis Cardinals", pastMidnight, 110),
	}

	ids := TeamsPlayingToday(games, lookup, today)
	assert.Contains(t, ids, 19)
	assert.NotContains(t, ids, 5)
}

func TestPipelineRunFiltersAndPreservesOrder(t *testing.T) {
	ranker := NewRanker(teams.NewLookup(), models.MarketHeadToHead, nil)
	pipeline := NewPipeline(ranker, nil, fixedNow)

	model, table := memorizingModel(t, map[int]float64{
		19: 0.7, 4: 0.4, // Yankees over Red Sox
		5: 0.6, 26: 0.5, // Cubs over Cardinals
		15: 0.55, 27: 0.45, // Marlins over Rays
	})

	today := fixedNow()
	games := []*models.GameEvent{
		slateGame("g1", "Chicago Cubs", "St. Louis Cardinals", today.Add(time.Hour), 115),
		slateGame("g2", "Los Angeles Dodgers", "San Diego Padres", today.AddDate(0, 0, 1), -150),
		slateGame("g3", "New York Yankees", "Boston Red Sox", today.Add(3*time.Hour), -120),
		slateGame("g4", "Miami Marlins", "Tampa Bay Rays", today.Add(4*time.Hour), 105),
	}

	finalized, err := pipeline.Run(games, model, table)
	require.NoError(t, err)
	require.Len(t, finalized, 3, "tomorrow's game is excluded")

	// Slate order survives into the output.
	assert.Equal(t, "Chicago Cubs", finalized[0].HomeTeam)
	assert.Equal(t, "New York Yankees", finalized[1].HomeTeam)
	assert.Equal(t, "Miami Marlins", finalized[2].HomeTeam)
	for _, game := range finalized {
		require.NotNil(t, game.Recommendation)
	}
}

func TestPipelineRunDropsSkippedGames(t *testing.T) {
	ranker := NewRanker(teams.NewLookup(), models.MarketHeadToHead, nil)
	pipeline := NewPipeline(ranker, nil, fixedNow)

	// Only the Yankees game is predictable; the Dodgers game has no rows.
	model, table := memorizingModel(t, map[int]float64{19: 0.7, 4: 0.4})

	today := fixedNow()
	games := []*models.GameEvent{
		slateGame("g1", "Los Angeles Dodgers", "San Diego Padres", today.Add(time.Hour), -150),
		slateGame("g2", "New York Yankees", "Boston Red Sox", today.Add(2*time.Hour), -120),
	}

	finalized, err := pipeline.Run(games, model, table)
	require.NoError(t, err)
	require.Len(t, finalized, 1)
	assert.Equal(t, "New York Yankees", finalized[0].Recommendation.TeamName)
}

func TestPipelineRunEmptySlateIsFatal(t *testing.T) {
	ranker := NewRanker(teams.NewLookup(), models.MarketHeadToHead, nil)
	pipeline := NewPipeline(ranker, nil, fixedNow)

	model, table := memorizingModel(t, map[int]float64{19: 0.7})

	tomorrow := fixedNow().AddDate(0, 0, 1)
	games := []*models.GameEvent{
		slateGame("g1", "New York Yankees", "Boston Red Sox", tomorrow, -120),
	}

	_, err := pipeline.Run(games, model, table)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNoGamesToday)

	_, err = pipeline.Run(nil, model, table)
	assert.ErrorIs(t, err, models.ErrNoGamesToday)
}
