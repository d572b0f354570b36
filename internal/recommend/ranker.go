package recommend

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/dataset"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/ml"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/odds"
	"github.com/yourusername/diamond-edge/internal/teams"
)

// Ranker produces at most one recommendation per game: the side with the
// higher predicted value, priced at the best quote found for that side.
// Selection deliberately compares the two model outputs only; the market
// price enters through the best-quote scan and the attached EV figure, not
// through the side selection itself.
type Ranker struct {
	lookup *teams.Lookup
	market models.MarketKind
	logger *logrus.Logger
}

// NewRanker creates a ranker pricing recommendations from the given market.
func NewRanker(lookup *teams.Lookup, market models.MarketKind, logger *logrus.Logger) *Ranker {
	if logger == nil {
		logger = logrus.New()
	}
	return &Ranker{lookup: lookup, market: market, logger: logger}
}

type side struct {
	name      string
	predicted float64
}

// Recommend evaluates one game. Any failure - unresolvable names, missing
// feature rows on both sides, or no quote for the chosen side - is a soft
// per-game skip: it is logged and counted, and the second return is false.
func (r *Ranker) Recommend(game *models.GameEvent, model *ml.Model, table *dataset.Table) (*models.Recommendation, bool) {
	candidates := make([]side, 0, 2)
	for _, name := range []string{game.HomeTeam, game.AwayTeam} {
		predicted, ok := r.predictSide(name, model, table)
		if !ok {
			continue
		}
		candidates = append(candidates, side{name: name, predicted: predicted})
	}
	if len(candidates) == 0 {
		r.skip(game, "no_predictable_side")
		return nil, false
	}

	// Higher predicted value wins; the home side keeps ties by being first.
	chosen := candidates[0]
	for _, c := range candidates[1:] {
		if c.predicted > chosen.predicted {
			chosen = c
		}
	}

	if chosen.predicted < 0 || chosen.predicted > 1 {
		r.logger.WithFields(logrus.Fields{
			"team":      chosen.name,
			"predicted": chosen.predicted,
		}).Debug("Prediction outside [0,1], using unclamped value")
	}

	quote, ok := odds.BestPrice(chosen.name, game.Bookmakers, r.market)
	if !ok {
		r.skip(game, "no_quote")
		return nil, false
	}

	return &models.Recommendation{
		ID:             uuid.New(),
		TeamName:       chosen.name,
		PredictedValue: chosen.predicted,
		BestPrice:      quote.Price,
		Bookmaker:      quote.Bookmaker,
		ExpectedValue:  ExpectedValue(quote.Price, chosen.predicted),
		ExpectedProfit: chosen.predicted * float64(quote.Price),
	}, true
}

func (r *Ranker) predictSide(name string, model *ml.Model, table *dataset.Table) (float64, bool) {
	teamID, ok := r.lookup.IDForName(name)
	if !ok {
		r.logger.WithField("team", name).Warn("Unresolvable team name in slate")
		return 0, false
	}
	predicted, ok := ml.PredictTeam(model, teamID, table)
	if !ok {
		r.logger.WithFields(logrus.Fields{"team": name, "team_id": teamID}).Warn("Team has no feature row")
		return 0, false
	}
	return predicted, true
}

func (r *Ranker) skip(game *models.GameEvent, reason string) {
	metrics.GamesSkippedTotal.WithLabelValues(reason).Inc()
	r.logger.WithFields(logrus.Fields{
		"home":   game.HomeTeam,
		"away":   game.AwayTeam,
		"reason": reason,
	}).Warn("Game skipped")
}
