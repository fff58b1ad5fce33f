package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-portal/internal/types"
)

// -----------------------------------------------------------------------------
// Recommendation Methods
// -----------------------------------------------------------------------------

// ReplaceRecommendations swaps a user's stored recommendations for results
// in a single transaction, so readers never observe a partial set.
func (db *DB) ReplaceRecommendations(ctx context.Context, userID uuid.UUID, results []types.MatchResult) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM job_recommendations WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear recommendations: %w", err)
	}

	if len(results) > 0 {
		batch := &pgx.Batch{}
		for _, r := range results {
			batch.Queue(
				`INSERT INTO job_recommendations (user_id, job_id, score, reason) VALUES ($1, $2, $3, $4)`,
				userID, r.JobID, r.Score, r.Reason,
			)
		}
		br := tx.SendBatch(ctx, batch)
		for range results {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("failed to insert recommendation: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close recommendation batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recommendations: %w", err)
	}
	return nil
}

// ListRecommendations returns a user's stored recommendations joined with
// their postings, best score first.
func (db *DB) ListRecommendations(ctx context.Context, userID uuid.UUID) ([]types.StoredRecommendation, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT r.id, r.user_id, r.job_id, j.title, j.required_skills, j.application_link,
		        r.score, r.reason, r.created_at
		 FROM job_recommendations r
		 JOIN job_postings j ON j.id = r.job_id
		 WHERE r.user_id = $1
		 ORDER BY r.score DESC, r.created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	recs := make([]types.StoredRecommendation, 0)
	for rows.Next() {
		var r types.StoredRecommendation
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.JobID, &r.JobTitle, &r.RequiredSkills, &r.ApplicationLink,
			&r.Score, &r.Reason, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
