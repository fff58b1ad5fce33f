package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/career-portal/internal/types"
)

// Store is the persistence the API needs; *db.DB implements it.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, name, email, role string) (*types.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*types.User, error)
	ListUsers(ctx context.Context) ([]types.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	UpsertProfile(ctx context.Context, p *types.StudentProfile) (*types.StudentProfile, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*types.StudentProfile, error)
	DeleteProfile(ctx context.Context, userID uuid.UUID) error
	SetResumeText(ctx context.Context, userID uuid.UUID, text string) error

	CreateJobPosting(ctx context.Context, req *types.JobRequest) (*types.JobPosting, error)
	UpdateJobPosting(ctx context.Context, id uuid.UUID, req *types.JobRequest) (*types.JobPosting, error)
	GetJobPosting(ctx context.Context, id uuid.UUID) (*types.JobPosting, error)
	ListJobPostings(ctx context.Context) ([]types.JobPosting, error)
	DeleteJobPosting(ctx context.Context, id uuid.UUID) error

	ListRecommendations(ctx context.Context, userID uuid.UUID) ([]types.StoredRecommendation, error)

	CreateCourse(ctx context.Context, req *types.CourseRequest) (*types.Course, error)
	UpdateCourse(ctx context.Context, id uuid.UUID, req *types.CourseRequest) (*types.Course, error)
	ListCourses(ctx context.Context) ([]types.Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error

	CreateVideo(ctx context.Context, req *types.VideoRequest) (*types.Video, error)
	ListVideos(ctx context.Context) ([]types.Video, error)
	DeleteVideo(ctx context.Context, id uuid.UUID) error

	CreateTrend(ctx context.Context, req *types.TrendRequest) (*types.Trend, error)
	ListTrends(ctx context.Context) ([]types.Trend, error)
	DeleteTrend(ctx context.Context, id uuid.UUID) error
}
