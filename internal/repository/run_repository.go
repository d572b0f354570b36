// Package repository persists finalized pipeline runs to Postgres. This is
// the external persistence collaborator; the core returns in-memory results
// and never touches storage.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/diamond-edge/internal/database"
	"github.com/yourusername/diamond-edge/internal/models"
)

// RunRepository stores and retrieves finalized pipeline runs.
type RunRepository interface {
	Save(ctx context.Context, run *models.FinalizedRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FinalizedRun, error)
}

// PostgresRunRepository implements RunRepository for PostgreSQL
type PostgresRunRepository struct {
	db *database.DB
}

// NewPostgresRunRepository creates a new run repository
func NewPostgresRunRepository(db *database.DB) RunRepository {
	return &PostgresRunRepository{db: db}
}

// Save inserts the run header and its recommendations in one transaction.
func (r *PostgresRunRepository) Save(ctx context.Context, run *models.FinalizedRun) error {
	tx, err := r.db.GetPool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO runs (id, run_date, mae, mse, r2)
		VALUES ($1, $2, $3, $4, $5)
	`, run.ID, run.RunDate, run.Metrics.MAE, run.Metrics.MSE, run.Metrics.R2)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, game := range run.Games {
		rec := game.Recommendation
		if rec == nil {
			continue
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO recommendations (id, run_id, home_team, away_team, commence_time,
			                             team, price, bookmaker, predicted_value, expected_value)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, rec.ID, run.ID, game.HomeTeam, game.AwayTeam, game.CommenceTime,
			rec.TeamName, rec.BestPrice, rec.Bookmaker, rec.PredictedValue, rec.ExpectedValue)
		if err != nil {
			return fmt.Errorf("failed to insert recommendation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetByID retrieves a run with its recommendations.
func (r *PostgresRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FinalizedRun, error) {
	run := &models.FinalizedRun{}
	err := r.db.GetPool().QueryRow(ctx, `
		SELECT id, run_date, mae, mse, r2 FROM runs WHERE id = $1
	`, id).Scan(&run.ID, &run.RunDate, &run.Metrics.MAE, &run.Metrics.MSE, &run.Metrics.R2)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	rows, err := r.db.GetPool().Query(ctx, `
		SELECT id, home_team, away_team, commence_time, team, price, bookmaker,
		       predicted_value, expected_value
		FROM recommendations
		WHERE run_id = $1
		ORDER BY commence_time
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		game := &models.FinalizedGame{Recommendation: &models.Recommendation{}}
		rec := game.Recommendation
		err := rows.Scan(&rec.ID, &game.HomeTeam, &game.AwayTeam, &game.CommenceTime,
			&rec.TeamName, &rec.BestPrice, &rec.Bookmaker, &rec.PredictedValue, &rec.ExpectedValue)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		run.Games = append(run.Games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendations: %w", err)
	}
	return run, nil
}
