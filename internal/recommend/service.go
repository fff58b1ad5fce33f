// Package recommend keeps each student's stored job recommendations in step
// with their profile and the current job postings.
package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-portal/internal/ranking"
	"github.com/jonathan/career-portal/internal/types"
)

// DefaultConcurrency bounds RefreshAll when no limit is configured
const DefaultConcurrency = 4

// Store is the persistence the service needs
type Store interface {
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*types.StudentProfile, error)
	ListProfiles(ctx context.Context) ([]types.StudentProfile, error)
	ListJobPostings(ctx context.Context) ([]types.JobPosting, error)
	ReplaceRecommendations(ctx context.Context, userID uuid.UUID, results []types.MatchResult) error
}

// Config holds Service settings
type Config struct {
	TopK        int
	Concurrency int
	Logger      logrus.FieldLogger
}

// Service ranks jobs for students and persists the result. Refreshes of the
// same student never overlap, so the last one to start stores its result last.
type Service struct {
	store       Store
	ranker      *ranking.Ranker
	topK        int
	concurrency int
	log         logrus.FieldLogger
	locks       userLocks
	allMu       sync.Mutex
}

// Summary reports the outcome of RefreshAll
type Summary struct {
	Profiles  int `json:"profiles"`
	Refreshed int `json:"refreshed"`
	Failed    int `json:"failed"`
}

// NewService creates a Service
func NewService(store Store, ranker *ranking.Ranker, cfg Config) *Service {
	s := &Service{
		store:       store,
		ranker:      ranker,
		topK:        cfg.TopK,
		concurrency: cfg.Concurrency,
		log:         cfg.Logger,
	}
	if s.topK <= 0 {
		s.topK = ranking.DefaultTopK
	}
	if s.concurrency <= 0 {
		s.concurrency = DefaultConcurrency
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	return s
}

// Refresh recomputes and stores recommendations for one student. A student
// without a profile gets an empty set.
func (s *Service) Refresh(ctx context.Context, userID uuid.UUID) (*types.Recommendations, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	jobs, err := s.store.ListJobPostings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load job postings: %w", err)
	}
	return s.refreshLocked(ctx, userID, jobs)
}

// RefreshAll recomputes recommendations for every stored profile, at most
// Concurrency at a time. Per-student failures are logged and counted. A failure
// to load the inputs, or ctx ending, aborts the run and is returned.
func (s *Service) RefreshAll(ctx context.Context) (Summary, error) {
	s.allMu.Lock()
	defer s.allMu.Unlock()

	profiles, err := s.store.ListProfiles(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load profiles: %w", err)
	}
	jobs, err := s.store.ListJobPostings(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load job postings: %w", err)
	}

	var refreshed, failed atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range profiles {
		userID := profiles[i].UserID
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			unlock := s.locks.lock(userID)
			defer unlock()

			if _, err := s.refreshLocked(gCtx, userID, jobs); err != nil {
				if ctxErr := gCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				failed.Add(1)
				s.log.WithError(err).WithField("user_id", userID).Warn("recommendation refresh failed")
				return nil
			}
			refreshed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Profiles:  len(profiles),
		Refreshed: int(refreshed.Load()),
		Failed:    int(failed.Load()),
	}
	s.log.WithFields(logrus.Fields{
		"profiles":  summary.Profiles,
		"refreshed": summary.Refreshed,
		"failed":    summary.Failed,
		"jobs":      len(jobs),
	}).Info("refreshed all recommendations")
	return summary, nil
}

// refreshLocked loads the current profile and replaces the stored set. The
// caller holds the student's lock.
func (s *Service) refreshLocked(ctx context.Context, userID uuid.UUID, jobs []types.JobPosting) (*types.Recommendations, error) {
	profile, err := s.store.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	recs := &types.Recommendations{Results: []types.MatchResult{}}
	if profile != nil {
		ranked, err := s.ranker.RankJobs(ctx, profile, jobs, s.topK)
		if err != nil {
			return nil, fmt.Errorf("failed to rank jobs: %w", err)
		}
		recs = ranked
	}

	if err := s.store.ReplaceRecommendations(ctx, userID, recs.Results); err != nil {
		return nil, fmt.Errorf("failed to store recommendations: %w", err)
	}
	return recs, nil
}

// userLocks hands out one mutex per student, dropping it once nobody holds or
// waits on it.
type userLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func (l *userLocks) lock(userID uuid.UUID) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[uuid.UUID]*userLock)
	}
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()
	return func() {
		ul.mu.Unlock()
		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}
