package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-portal/internal/types"
)

// -----------------------------------------------------------------------------
// Student Profile Methods
// -----------------------------------------------------------------------------

const profileColumns = `id, user_id, full_name, register_number, college, batch_year, semester,
	skills, skill_ratings, experience, interests, tech_stack, location, resume_text,
	created_at, updated_at`

// UpsertProfile creates or replaces the profile for p.UserID. The stored
// resume text is left untouched; use SetResumeText to change it.
func (db *DB) UpsertProfile(ctx context.Context, p *types.StudentProfile) (*types.StudentProfile, error) {
	out, err := scanProfile(db.pool.QueryRow(ctx,
		`INSERT INTO student_profiles (
			user_id, full_name, register_number, college, batch_year, semester,
			skills, skill_ratings, experience, interests, tech_stack, location
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			register_number = EXCLUDED.register_number,
			college = EXCLUDED.college,
			batch_year = EXCLUDED.batch_year,
			semester = EXCLUDED.semester,
			skills = EXCLUDED.skills,
			skill_ratings = EXCLUDED.skill_ratings,
			experience = EXCLUDED.experience,
			interests = EXCLUDED.interests,
			tech_stack = EXCLUDED.tech_stack,
			location = EXCLUDED.location,
			updated_at = NOW()
		RETURNING `+profileColumns,
		p.UserID, p.FullName, p.RegisterNumber, p.College, p.BatchYear, p.Semester,
		p.Skills, p.SkillRatings, p.Experience, p.Interests, p.TechStack, p.Location,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return out, nil
}

// GetProfileByUserID retrieves a student's profile; a missing profile returns (nil, nil)
func (db *DB) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*types.StudentProfile, error) {
	p, err := scanProfile(db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM student_profiles WHERE user_id = $1`, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// ListProfiles returns every stored profile ordered by user ID
func (db *DB) ListProfiles(ctx context.Context) ([]types.StudentProfile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM student_profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]types.StudentProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// SetResumeText stores text extracted from an uploaded resume
func (db *DB) SetResumeText(ctx context.Context, userID uuid.UUID, text string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE student_profiles SET resume_text = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, text)
	if err != nil {
		return fmt.Errorf("failed to set resume text: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notFound("profile for user", userID)
	}
	return nil
}

// DeleteProfile removes a student's profile
func (db *DB) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM student_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notFound("profile for user", userID)
	}
	return nil
}

func scanProfile(row scanner) (*types.StudentProfile, error) {
	var p types.StudentProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.RegisterNumber, &p.College, &p.BatchYear, &p.Semester,
		&p.Skills, &p.SkillRatings, &p.Experience, &p.Interests, &p.TechStack, &p.Location, &p.ResumeText,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
