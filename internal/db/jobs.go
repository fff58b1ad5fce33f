package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-portal/internal/types"
)

// -----------------------------------------------------------------------------
// Job Posting Methods
// -----------------------------------------------------------------------------

const jobColumns = `id, title, description, required_skills, min_experience,
	posted_by, application_link, created_at, updated_at`

// CreateJobPosting inserts a job posting
func (db *DB) CreateJobPosting(ctx context.Context, req *types.JobRequest) (*types.JobPosting, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`INSERT INTO job_postings (title, description, required_skills, min_experience, posted_by, application_link)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+jobColumns,
		req.Title, req.Description, req.RequiredSkills, req.MinExperience, req.PostedBy, req.ApplicationLink,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create job posting: %w", err)
	}
	return job, nil
}

// UpdateJobPosting replaces the editable fields of a job posting
func (db *DB) UpdateJobPosting(ctx context.Context, id uuid.UUID, req *types.JobRequest) (*types.JobPosting, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`UPDATE job_postings SET
			title = $2, description = $3, required_skills = $4, min_experience = $5,
			posted_by = $6, application_link = $7, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+jobColumns,
		id, req.Title, req.Description, req.RequiredSkills, req.MinExperience, req.PostedBy, req.ApplicationLink,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("job posting", id)
		}
		return nil, fmt.Errorf("failed to update job posting: %w", err)
	}
	return job, nil
}

// GetJobPosting retrieves a job posting by ID; a missing posting returns (nil, nil)
func (db *DB) GetJobPosting(ctx context.Context, id uuid.UUID) (*types.JobPosting, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM job_postings WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return job, nil
}

// ListJobPostings returns all postings in insertion order, which is the
// order the ranker sees them in.
func (db *DB) ListJobPostings(ctx context.Context) ([]types.JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM job_postings ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	jobs := make([]types.JobPosting, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// ListJobTitles returns the distinct posting titles, used as the label set for career prediction
func (db *DB) ListJobTitles(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT title FROM job_postings WHERE title <> '' ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan job title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// DeleteJobPosting removes a posting; its stored recommendations cascade
func (db *DB) DeleteJobPosting(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job posting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notFound("job posting", id)
	}
	return nil
}

func scanJob(row scanner) (*types.JobPosting, error) {
	var j types.JobPosting
	err := row.Scan(
		&j.ID, &j.Title, &j.Description, &j.RequiredSkills, &j.MinExperience,
		&j.PostedBy, &j.ApplicationLink, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}
