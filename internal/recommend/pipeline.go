package recommend

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/dataset"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/ml"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/teams"
)

// Pipeline runs the ranker across today's slate and assembles the finalized
// recommendation set. The clock is injected so date filtering is testable.
type Pipeline struct {
	ranker *Ranker
	logger *logrus.Logger
	now    func() time.Time
}

// NewPipeline creates the per-slate orchestrator. A nil now uses time.Now.
func NewPipeline(ranker *Ranker, logger *logrus.Logger, now func() time.Time) *Pipeline {
	if logger == nil {
		logger = logrus.New()
	}
	if now == nil {
		now = time.Now
	}
	return &Pipeline{ranker: ranker, logger: logger, now: now}
}

// TeamsPlayingToday resolves the canonical team ids of every game commencing
// today in UTC. The splitter uses this set to restrict training data to the
// current slate.
func TeamsPlayingToday(games []*models.GameEvent, lookup *teams.Lookup, now time.Time) map[int]struct{} {
	ids := make(map[int]struct{})
	for _, game := range games {
		if !game.CommencesOn(now) {
			continue
		}
		if id, ok := lookup.IDForName(game.HomeTeam); ok {
			ids[id] = struct{}{}
		}
		if id, ok := lookup.IDForName(game.AwayTeam); ok {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// Run filters the slate to games commencing today (UTC calendar date), ranks
// each one, and returns the finalized games in slate order. Games that yield
// no recommendation are dropped from the output; an empty slate for today is
// a fatal precondition.
func (p *Pipeline) Run(games []*models.GameEvent, model *ml.Model, table *dataset.Table) ([]*models.FinalizedGame, error) {
	today := p.now().UTC()

	var slate []*models.GameEvent
	for _, game := range games {
		if game.CommencesOn(today) {
			slate = append(slate, game)
		}
	}
	if len(slate) == 0 {
		return nil, fmt.Errorf("slate of %d games: %w", len(games), models.ErrNoGamesToday)
	}

	p.logger.WithFields(logrus.Fields{
		"slate": len(slate),
		"date":  today.Format("2006-01-02"),
	}).Info("Evaluating today's games")

	var finalized []*models.FinalizedGame
	for _, game := range slate {
		metrics.GamesEvaluatedTotal.Inc()

		rec, ok := p.ranker.Recommend(game, model, table)
		if !ok {
			continue
		}
		metrics.RecommendationsTotal.Inc()
		finalized = append(finalized, &models.FinalizedGame{
			HomeTeam:       game.HomeTeam,
			AwayTeam:       game.AwayTeam,
			CommenceTime:   game.CommenceTime,
			Recommendation: rec,
		})
	}

	p.logger.WithFields(logrus.Fields{
		"recommendations": len(finalized),
		"skipped":         len(slate) - len(finalized),
	}).Info("Slate evaluation complete")
	return finalized, nil
}
