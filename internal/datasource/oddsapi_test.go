package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/models"
)

const slateFixture = `[
  {
    "id": "abc123",
    "sport_key": "baseball_mlb",
    "commence_time": "2023-07-15T23:10:00Z",
    "home_team": "New York Yankees",
    "away_team": "Boston Red Sox",
    "bookmakers": [
      {
        "key": "draftkings",
        "title": "DraftKings",
        "markets": [
          {
            "key": "h2h",
            "outcomes": [
              {"name": "New York Yankees", "price": -145},
              {"name": "Boston Red Sox", "price": 125}
            ]
          }
        ]
      }
    ]
  }
]`

func oddsConfig(baseURL string) *config.OddsAPIConfig {
	return &config.OddsAPIConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		SportKey:       "baseball_mlb",
		Regions:        "us",
		Markets:        []string{"h2h"},
		TimeoutSeconds: 5,
		RateLimit:      100,
	}
}

func TestFetchSlate(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(slateFixture))
	}))
	defer server.Close()

	client := NewOddsClient(oddsConfig(server.URL), logrus.New())
	defer client.Close()

	games, err := client.FetchSlate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/v4/sports/baseball_mlb/odds", gotPath)
	assert.Equal(t, []string{"test-key"}, gotQuery["apiKey"])
	assert.Equal(t, []string{"american"}, gotQuery["oddsFormat"])

	require.Len(t, games, 1)
	game := games[0]
	assert.Equal(t, "New York Yankees", game.HomeTeam)
	assert.Equal(t, "Boston Red Sox", game.AwayTeam)
	require.Len(t, game.Bookmakers, 1)
	require.Len(t, game.Bookmakers[0].Markets, 1)
	assert.Equal(t, models.MarketHeadToHead, game.Bookmakers[0].Markets[0].Key)
	assert.Equal(t, -145, game.Bookmakers[0].Markets[0].Outcomes[0].Price)
}

func TestFetchSlateErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewOddsClient(oddsConfig(server.URL), logrus.New())
	defer client.Close()

	_, err := client.FetchSlate(context.Background())
	require.Error(t, err)
}
