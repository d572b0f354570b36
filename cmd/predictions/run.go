package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/diamond-edge/internal/database"
	"github.com/yourusername/diamond-edge/internal/dataset"
	"github.com/yourusername/diamond-edge/internal/datasource"
	"github.com/yourusername/diamond-edge/internal/health"
	"github.com/yourusername/diamond-edge/internal/logger"
	"github.com/yourusername/diamond-edge/internal/metrics"
	"github.com/yourusername/diamond-edge/internal/ml"
	"github.com/yourusername/diamond-edge/internal/models"
	"github.com/yourusername/diamond-edge/internal/recommend"
	"github.com/yourusername/diamond-edge/internal/report"
	"github.com/yourusername/diamond-edge/internal/repository"
	"github.com/yourusername/diamond-edge/internal/scheduler"
	"github.com/yourusername/diamond-edge/internal/teams"
)

var (
	daily      bool
	outputPath string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the prediction pipeline",
	Long:  `Runs the full pipeline once, or on the configured cron schedule with --daily.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics.InitRegistry()
		if cfg.Metrics.Enabled {
			startMetricsServer()
		}
		if daily {
			return runDaily()
		}
		return runOnce(cmd.Context())
	},
}

func startMetricsServer() {
	addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	go func() {
		appLogger.WithField("addr", addr).Info("Metrics endpoint listening")
		if err := http.ListenAndServe(addr, mux); err != nil {
			appLogger.WithError(err).Error("Metrics endpoint stopped")
		}
	}()
}

func runDaily() error {
	sched := scheduler.NewScheduler(appLogger)
	healthSrv := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Schedule:    sched,
		Logger:      appLogger,
	})

	tracked := func(ctx context.Context) error {
		err := runOnce(ctx)
		healthSrv.RecordRun(time.Now().UTC(), err)
		return err
	}
	if err := sched.ScheduleDailyRun(cfg.Schedule.Cron, tracked); err != nil {
		return fmt.Errorf("failed to schedule daily run: %w", err)
	}
	if err := sched.Start(); err != nil {
		return err
	}
	appLogger.WithField("next_run", sched.NextRun().Format(time.RFC3339)).Info("Daily schedule active")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := healthSrv.Start(ctx); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	appLogger.WithField("signal", sig.String()).Info("Shutting down")
	return sched.Stop()
}

func runOnce(ctx context.Context) error {
	log := logger.WithComponent(appLogger, "pipeline")
	start := time.Now()
	run, err := executeRun(ctx)
	if err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.PipelineRunsTotal.WithLabelValues("success").Inc()
	log.WithFields(logrus.Fields{
		"games":    len(run.Games),
		"duration": time.Since(start).String(),
	}).Info("Pipeline run complete")
	return nil
}

func executeRun(ctx context.Context) (*models.FinalizedRun, error) {
	lookup := teams.NewLookup()
	now := time.Now().UTC()

	oddsClient := datasource.NewOddsClient(&cfg.OddsAPI, appLogger)
	defer oddsClient.Close()
	slate, err := oddsClient.FetchSlate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slate: %w", err)
	}

	relevant := recommend.TeamsPlayingToday(slate, lookup, now)
	if len(relevant) == 0 {
		return nil, fmt.Errorf("no recognized teams on the %s slate: %w", now.Format("2006-01-02"), models.ErrNoGamesToday)
	}

	statsClient := datasource.NewStatsClient(&cfg.Stats, appLogger)
	defer statsClient.Close()
	tables, err := statsClient.FetchSeasonTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch season statistics: %w", err)
	}

	builder := dataset.NewBuilder(lookup, appLogger)
	table, err := builder.Build(tables.Batting, tables.Pitching, tables.Fielding, tables.Standings)
	if err != nil {
		return nil, fmt.Errorf("failed to build feature table: %w", err)
	}

	seed := cfg.Model.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	trainSet, testSet, err := dataset.Split(table, relevant, cfg.Model.TestFraction, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to split dataset: %w", err)
	}

	trainer := ml.NewTrainer(appLogger, cfg.Model.Workers)
	result, err := trainer.Train(trainSet, testSet, ml.DefaultFeatureNames, ml.DefaultTarget, searchSpace(), cfg.Model.CVFolds, seed)
	if err != nil {
		return nil, fmt.Errorf("training failed: %w", err)
	}

	ranker := recommend.NewRanker(lookup, primaryMarket(), appLogger)
	pipeline := recommend.NewPipeline(ranker, appLogger, time.Now)
	games, err := pipeline.Run(slate, result.Model, table)
	if err != nil {
		return nil, err
	}

	for _, game := range games {
		fmt.Println(report.FormatRecommendation(game.Recommendation))
	}

	run := &models.FinalizedRun{
		ID:      uuid.New(),
		RunDate: now,
		Metrics: result.Metrics,
		Games:   games,
	}

	if err := deliverReport(run, result.Importance); err != nil {
		appLogger.WithError(err).Error("Failed to deliver email report")
	}
	if err := persistRun(ctx, run); err != nil {
		appLogger.WithError(err).Error("Failed to persist run")
	}
	if outputPath != "" {
		if err := writeArtifact(run, outputPath); err != nil {
			appLogger.WithError(err).Error("Failed to write run artifact")
		}
	}
	return run, nil
}

// primaryMarket picks the market recommendations are ranked on. The first
// configured market wins; the rest are fetched for the artifact only.
func primaryMarket() models.MarketKind {
	if len(cfg.OddsAPI.Markets) > 0 {
		return models.MarketKind(cfg.OddsAPI.Markets[0])
	}
	return models.MarketHeadToHead
}

func searchSpace() *ml.SearchSpace {
	grid := cfg.Model.Grid
	if len(grid.NumTrees) == 0 && len(grid.MaxFeatures) == 0 && len(grid.MaxDepth) == 0 &&
		len(grid.MinSamplesSplit) == 0 && len(grid.MinSamplesLeaf) == 0 && len(grid.Bootstrap) == 0 {
		return ml.DefaultSearchSpace()
	}
	return &ml.SearchSpace{
		NumTrees:        grid.NumTrees,
		MaxFeatures:     grid.MaxFeatures,
		MaxDepth:        grid.MaxDepth,
		MinSamplesSplit: grid.MinSamplesSplit,
		MinSamplesLeaf:  grid.MinSamplesLeaf,
		Bootstrap:       grid.Bootstrap,
	}
}

func deliverReport(run *models.FinalizedRun, importance []ml.FeatureImportance) error {
	if !cfg.Email.Enabled {
		return nil
	}
	body, err := report.BuildEmail(run.Games, run.Metrics, importance, run.RunDate)
	if err != nil {
		return err
	}
	sender := report.NewSender(&cfg.Email, appLogger)
	subject := fmt.Sprintf("MLB picks for %s", run.RunDate.Format("January 2, 2006"))
	return sender.Send(subject, body)
}

func persistRun(ctx context.Context, run *models.FinalizedRun) error {
	if !cfg.Database.Enabled {
		return nil
	}
	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	return repository.NewPostgresRunRepository(db).Save(ctx, run)
}

func writeArtifact(run *models.FinalizedRun, path string) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
