package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-portal/internal/types"
)

// -----------------------------------------------------------------------------
// Course Methods
// -----------------------------------------------------------------------------

const courseColumns = `id, title, description, category, link, added_by, created_at`

// CreateCourse inserts a course
func (db *DB) CreateCourse(ctx context.Context, req *types.CourseRequest) (*types.Course, error) {
	var c types.Course
	err := db.pool.QueryRow(ctx,
		`INSERT INTO courses (title, description, category, link, added_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+courseColumns,
		req.Title, req.Description, req.Category, req.Link, req.AddedBy,
	).Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.Link, &c.AddedBy, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return &c, nil
}

// ListCourses returns all courses, newest first
func (db *DB) ListCourses(ctx context.Context) ([]types.Course, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]types.Course, 0)
	for rows.Next() {
		var c types.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.Link, &c.AddedBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// UpdateCourse replaces the editable fields of a course
func (db *DB) UpdateCourse(ctx context.Context, id uuid.UUID, req *types.CourseRequest) (*types.Course, error) {
	var c types.Course
	err := db.pool.QueryRow(ctx,
		`UPDATE courses SET title = $2, description = $3, category = $4, link = $5, added_by = $6
		 WHERE id = $1
		 RETURNING `+courseColumns,
		id, req.Title, req.Description, req.Category, req.Link, req.AddedBy,
	).Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.Link, &c.AddedBy, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("course", id)
		}
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return &c, nil
}

// DeleteCourse removes a course; attached videos are detached, not deleted
func (db *DB) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notFound("course", id)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Video Methods
// -----------------------------------------------------------------------------

// CreateVideo inserts a course video
func (db *DB) CreateVideo(ctx context.Context, req *types.VideoRequest) (*types.Video, error) {
	v := types.Video{CourseID: req.CourseID, Title: req.Title, URL: req.URL, Category: req.Category}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO course_videos (course_id, title, url, category)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		req.CourseID, req.Title, req.URL, req.Category,
	).Scan(&v.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}
	return &v, nil
}

// ListVideos returns all videos with the title of their course, if any
func (db *DB) ListVideos(ctx context.Context) ([]types.Video, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT v.id, v.course_id, COALESCE(c.title, ''), v.title, v.url, v.category
		 FROM course_videos v
		 LEFT JOIN courses c ON c.id = v.course_id
		 ORDER BY v.title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	videos := make([]types.Video, 0)
	for rows.Next() {
		var v types.Video
		if err := rows.Scan(&v.ID, &v.CourseID, &v.CourseTitle, &v.Title, &v.URL, &v.Category); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// DeleteVideo removes a video
func (db *DB) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM course_videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notFound("video", id)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Job Trend Methods
// -----------------------------------------------------------------------------

const trendColumns = `id, job_role, industry, trending_skills, year, added_by, created_at`

// CreateTrend inserts a job market trend
func (db *DB) CreateTrend(ctx context.Context, req *types.TrendRequest) (*types.Trend, error) {
	var t types.Trend
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_trends (job_role, industry, trending_skills, year, added_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+trendColumns,
		req.JobRole, req.Industry, req.TrendingSkills, req.Year, req.AddedBy,
	).Scan(&t.ID, &t.JobRole, &t.Industry, &t.TrendingSkills, &t.Year, &t.AddedBy, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create trend: %w", err)
	}
	return &t, nil
}

// ListTrends returns all trends, most recent year first
func (db *DB) ListTrends(ctx context.Context) ([]types.Trend, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+trendColumns+` FROM job_trends ORDER BY year DESC, job_role`)
	if err != nil {
		return nil, fmt.Errorf("failed to list trends: %w", err)
	}
	defer rows.Close()

	trends := make([]types.Trend, 0)
	for rows.Next() {
		var t types.Trend
		if err := rows.Scan(&t.ID, &t.JobRole, &t.Industry, &t.TrendingSkills, &t.Year, &t.AddedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trend: %w", err)
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

// DeleteTrend removes a trend
func (db *DB) DeleteTrend(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM job_trends WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trend: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notFound("trend", id)
	}
	return nil
}
