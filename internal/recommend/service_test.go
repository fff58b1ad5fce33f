package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-portal/internal/logger"
	"github.com/jonathan/career-portal/internal/ranking"
	"github.com/jonathan/career-portal/internal/types"
)

// fakeStore is an in-memory Store for testing
type fakeStore struct {
	mu         sync.Mutex
	profiles   map[uuid.UUID]*types.StudentProfile
	jobs       []types.JobPosting
	stored     map[uuid.UUID][]types.MatchResult
	replaceErr map[uuid.UUID]error
	listErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles:   make(map[uuid.UUID]*types.StudentProfile),
		stored:     make(map[uuid.UUID][]types.MatchResult),
		replaceErr: make(map[uuid.UUID]error),
	}
}

func (f *fakeStore) GetProfileByUserID(_ context.Context, userID uuid.UUID) (*types.StudentProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profiles[userID], nil
}

func (f *fakeStore) ListProfiles(context.Context) ([]types.StudentProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]types.StudentProfile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) ListJobPostings(context.Context) ([]types.JobPosting, error) {
	return f.jobs, nil
}

func (f *fakeStore) ReplaceRecommendations(_ context.Context, userID uuid.UUID, results []types.MatchResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.replaceErr[userID]; err != nil {
		return err
	}
	f.stored[userID] = results
	return nil
}

func (f *fakeStore) addProfile(skills, ratings string) uuid.UUID {
	id := uuid.New()
	f.profiles[id] = &types.StudentProfile{UserID: id, Skills: skills, SkillRatings: ratings}
	return id
}

func newTestService(store Store) *Service {
	ranker := ranking.NewRanker(ranking.RankerConfig{Logger: logger.Discard()})
	return NewService(store, ranker, Config{Concurrency: 2, Logger: logger.Discard()})
}

func TestRefresh_StoresRankedResults(t *testing.T) {
	store := newFakeStore()
	match := types.JobPosting{ID: uuid.New(), Title: "Data Analyst", RequiredSkills: "python; sql"}
	miss := types.JobPosting{ID: uuid.New(), Title: "Java Developer", RequiredSkills: "java; spring"}
	store.jobs = []types.JobPosting{miss, match}
	userID := store.addProfile("python, sql", "5,5")

	recs, err := newTestService(store).Refresh(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, recs.Results, 1)
	assert.Equal(t, match.ID, recs.Results[0].JobID)
	assert.Equal(t, recs.Results, store.stored[userID])
}

func TestRefresh_NoProfileClearsRecommendations(t *testing.T) {
	store := newFakeStore()
	store.jobs = []types.JobPosting{{ID: uuid.New(), Title: "Data Analyst", RequiredSkills: "python"}}
	userID := uuid.New()
	store.stored[userID] = []types.MatchResult{{JobID: uuid.New(), Score: 0.5}}

	recs, err := newTestService(store).Refresh(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, recs.Results)
	stored, ok := store.stored[userID]
	assert.True(t, ok)
	assert.Empty(t, stored)
}

func TestRefresh_StoreErrorPropagates(t *testing.T) {
	store := newFakeStore()
	userID := store.addProfile("python", "4")
	store.replaceErr[userID] = errors.New("db down")

	_, err := newTestService(store).Refresh(context.Background(), userID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestRefreshAll_CountsFailures(t *testing.T) {
	store := newFakeStore()
	store.jobs = []types.JobPosting{{ID: uuid.New(), Title: "Data Analyst", RequiredSkills: "python"}}
	ok1 := store.addProfile("python", "5")
	ok2 := store.addProfile("sql", "3")
	bad := store.addProfile("python", "4")
	store.replaceErr[bad] = errors.New("write failed")

	summary, err := newTestService(store).RefreshAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Profiles: 3, Refreshed: 2, Failed: 1}, summary)
	assert.Contains(t, store.stored, ok1)
	assert.Contains(t, store.stored, ok2)
	assert.NotContains(t, store.stored, bad)
}

func TestRefreshAll_LoadErrorAborts(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("connection refused")

	_, err := newTestService(store).RefreshAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load profiles")
}

func TestHandle_NilUserRefreshesAll(t *testing.T) {
	store := newFakeStore()
	a := store.addProfile("python", "5")
	b := store.addProfile("go", "5")

	require.NoError(t, newTestService(store).Handle(context.Background(), uuid.Nil))
	assert.Contains(t, store.stored, a)
	assert.Contains(t, store.stored, b)
}

func TestNewService_Defaults(t *testing.T) {
	s := NewService(newFakeStore(), ranking.NewRanker(ranking.RankerConfig{}), Config{})
	assert.Equal(t, ranking.DefaultTopK, s.topK)
	assert.Equal(t, DefaultConcurrency, s.concurrency)
	assert.NotNil(t, s.log)
}

// gatedStore holds the first profile load until release is closed, after
// capturing the profile as it was when the load started.
type gatedStore struct {
	*fakeStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*types.StudentProfile, error) {
	p, err := g.fakeStore.GetProfileByUserID(ctx, userID)
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return p, err
}

func TestInProcessTrigger_LatestProfileWins(t *testing.T) {
	fake := newFakeStore()
	javaJob := types.JobPosting{ID: uuid.New(), Title: "Java Developer", RequiredSkills: "java"}
	pythonJob := types.JobPosting{ID: uuid.New(), Title: "Data Analyst", RequiredSkills: "python"}
	fake.jobs = []types.JobPosting{javaJob, pythonJob}
	userID := fake.addProfile("java", "5")

	store := &gatedStore{fakeStore: fake, entered: make(chan struct{}), release: make(chan struct{})}
	trigger := NewInProcessTrigger(newTestService(store), time.Minute, logger.Discard())

	require.NoError(t, trigger.RequestRefresh(context.Background(), userID, "profile_updated"))
	<-store.entered

	fake.mu.Lock()
	fake.profiles[userID] = &types.StudentProfile{UserID: userID, Skills: "python", SkillRatings: "5"}
	fake.mu.Unlock()
	require.NoError(t, trigger.RequestRefresh(context.Background(), userID, "profile_updated"))

	time.Sleep(20 * time.Millisecond)
	close(store.release)
	trigger.Wait()

	stored := fake.stored[userID]
	require.Len(t, stored, 1)
	assert.Equal(t, pythonJob.ID, stored[0].JobID)
}

func TestRefreshAll_ReloadsProfileUnderLock(t *testing.T) {
	fake := newFakeStore()
	javaJob := types.JobPosting{ID: uuid.New(), Title: "Java Developer", RequiredSkills: "java"}
	pythonJob := types.JobPosting{ID: uuid.New(), Title: "Data Analyst", RequiredSkills: "python"}
	fake.jobs = []types.JobPosting{javaJob, pythonJob}
	userID := fake.addProfile("java", "5")

	store := &gatedStore{fakeStore: fake, entered: make(chan struct{}), release: make(chan struct{})}
	service := newTestService(store)

	done := make(chan error, 1)
	go func() {
		_, err := service.Refresh(context.Background(), userID)
		done <- err
	}()
	<-store.entered

	fake.mu.Lock()
	fake.profiles[userID] = &types.StudentProfile{UserID: userID, Skills: "python", SkillRatings: "5"}
	fake.mu.Unlock()

	all := make(chan error, 1)
	go func() {
		_, err := service.RefreshAll(context.Background())
		all <- err
	}()

	time.Sleep(20 * time.Millisecond)
	close(store.release)
	require.NoError(t, <-done)
	require.NoError(t, <-all)

	stored := fake.stored[userID]
	require.Len(t, stored, 1)
	assert.Equal(t, pythonJob.ID, stored[0].JobID)
}

func TestRefreshAll_CancelledContext(t *testing.T) {
	store := newFakeStore()
	store.addProfile("python", "5")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService(store).RefreshAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.stored)
}

func TestUserLocks_ReleasesEntries(t *testing.T) {
	var locks userLocks
	id := uuid.New()

	unlock := locks.lock(id)
	acquired := make(chan struct{})
	go func() {
		defer locks.lock(id)()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first was held")
	case <-time.After(20 * time.Millisecond):
	}
	unlock()
	<-acquired

	require.Eventually(t, func() bool {
		locks.mu.Lock()
		defer locks.mu.Unlock()
		return len(locks.locks) == 0
	}, time.Second, 5*time.Millisecond)
}
