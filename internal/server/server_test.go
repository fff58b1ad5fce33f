package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-portal/internal/db"
	"github.com/jonathan/career-portal/internal/fetch"
	"github.com/jonathan/career-portal/internal/logger"
	"github.com/jonathan/career-portal/internal/server/ratelimit"
	"github.com/jonathan/career-portal/internal/types"
)

// fakeStore is an in-memory Store
type fakeStore struct {
	mu       sync.Mutex
	pingErr  error
	users    map[uuid.UUID]*types.User
	profiles map[uuid.UUID]*types.StudentProfile
	jobs     map[uuid.UUID]*types.JobPosting
	recs     map[uuid.UUID][]types.StoredRecommendation
	courses  []types.Course
	videos   []types.Video
	trends   []types.Trend
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[uuid.UUID]*types.User{},
		profiles: map[uuid.UUID]*types.StudentProfile{},
		jobs:     map[uuid.UUID]*types.JobPosting{},
		recs:     map[uuid.UUID][]types.StoredRecommendation{},
	}
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) CreateUser(_ context.Context, name, email, role string) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return nil, fmt.Errorf("email %s: %w", email, db.ErrConflict)
		}
	}
	if role == "" {
		role = types.RoleStudent
	}
	u := &types.User{ID: uuid.New(), Name: name, Email: email, Role: role, CreatedAt: time.Now()}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeStore) ListUsers(context.Context) ([]types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, db.ErrNotFound)
	}
	delete(f.users, id)
	delete(f.profiles, id)
	delete(f.recs, id)
	return nil
}

func (f *fakeStore) UpsertProfile(_ context.Context, p *types.StudentProfile) (*types.StudentProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	saved := *p
	saved.ID = uuid.New()
	if existing, ok := f.profiles[p.UserID]; ok {
		saved.ID = existing.ID
		saved.ResumeText = existing.ResumeText
	}
	f.profiles[p.UserID] = &saved
	return &saved, nil
}

func (f *fakeStore) GetProfileByUserID(_ context.Context, userID uuid.UUID) (*types.StudentProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profiles[userID], nil
}

func (f *fakeStore) DeleteProfile(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[userID]; !ok {
		return fmt.Errorf("profile %s: %w", userID, db.ErrNotFound)
	}
	delete(f.profiles, userID)
	return nil
}

func (f *fakeStore) SetResumeText(_ context.Context, userID uuid.UUID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return fmt.Errorf("profile %s: %w", userID, db.ErrNotFound)
	}
	p.ResumeText = text
	return nil
}

func (f *fakeStore) CreateJobPosting(_ context.Context, req *types.JobRequest) (*types.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job := jobFromRequest(uuid.New(), req)
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeStore) UpdateJobPosting(_ context.Context, id uuid.UUID, req *types.JobRequest) (*types.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jobs[id]; !ok {
		return nil, fmt.Errorf("job posting %s: %w", id, db.ErrNotFound)
	}
	job := jobFromRequest(id, req)
	f.jobs[id] = job
	return job, nil
}

func (f *fakeStore) GetJobPosting(_ context.Context, id uuid.UUID) (*types.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id], nil
}

func (f *fakeStore) ListJobPostings(context.Context) ([]types.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.JobPosting
	for _, j := range f.jobs {
		out = append(out, *j)
	}
	return out, nil
}

func (f *fakeStore) DeleteJobPosting(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jobs[id]; !ok {
		return fmt.Errorf("job posting %s: %w", id, db.ErrNotFound)
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeStore) ListRecommendations(_ context.Context, userID uuid.UUID) ([]types.StoredRecommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recs[userID], nil
}

func (f *fakeStore) CreateCourse(_ context.Context, req *types.CourseRequest) (*types.Course, error) {
	c := types.Course{ID: uuid.New(), Title: req.Title, Description: req.Description, Category: req.Category, Link: req.Link}
	f.courses = append(f.courses, c)
	return &c, nil
}

func (f *fakeStore) UpdateCourse(_ context.Context, id uuid.UUID, req *types.CourseRequest) (*types.Course, error) {
	for i := range f.courses {
		if f.courses[i].ID == id {
			f.courses[i].Title = req.Title
			f.courses[i].Category = req.Category
			return &f.courses[i], nil
		}
	}
	return nil, fmt.Errorf("course %s: %w", id, db.ErrNotFound)
}

func (f *fakeStore) ListCourses(context.Context) ([]types.Course, error) { return f.courses, nil }

func (f *fakeStore) DeleteCourse(_ context.Context, id uuid.UUID) error {
	for i := range f.courses {
		if f.courses[i].ID == id {
			f.courses = append(f.courses[:i], f.courses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("course %s: %w", id, db.ErrNotFound)
}

func (f *fakeStore) CreateVideo(_ context.Context, req *types.VideoRequest) (*types.Video, error) {
	v := types.Video{ID: uuid.New(), CourseID: req.CourseID, Title: req.Title, URL: req.URL, Category: req.Category}
	f.videos = append(f.videos, v)
	return &v, nil
}

func (f *fakeStore) ListVideos(context.Context) ([]types.Video, error) { return f.videos, nil }

func (f *fakeStore) DeleteVideo(_ context.Context, id uuid.UUID) error {
	return fmt.Errorf("video %s: %w", id, db.ErrNotFound)
}

func (f *fakeStore) CreateTrend(_ context.Context, req *types.TrendRequest) (*types.Trend, error) {
	t := types.Trend{ID: uuid.New(), JobRole: req.JobRole, Industry: req.Industry, TrendingSkills: req.TrendingSkills, Year: req.Year}
	f.trends = append(f.trends, t)
	return &t, nil
}

func (f *fakeStore) ListTrends(context.Context) ([]types.Trend, error) { return f.trends, nil }

func (f *fakeStore) DeleteTrend(_ context.Context, id uuid.UUID) error {
	return fmt.Errorf("trend %s: %w", id, db.ErrNotFound)
}

func jobFromRequest(id uuid.UUID, req *types.JobRequest) *types.JobPosting {
	return &types.JobPosting{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		RequiredSkills:  req.RequiredSkills,
		MinExperience:   req.MinExperience,
		PostedBy:        req.PostedBy,
		ApplicationLink: req.ApplicationLink,
	}
}

// fakeRecommender records refreshed users
type fakeRecommender struct {
	result *types.Recommendations
	err    error
	calls  []uuid.UUID
}

func (f *fakeRecommender) Refresh(_ context.Context, userID uuid.UUID) (*types.Recommendations, error) {
	f.calls = append(f.calls, userID)
	return f.result, f.err
}

type refreshRequest struct {
	userID uuid.UUID
	reason string
}

// fakeTrigger records refresh requests
type fakeTrigger struct {
	mu       sync.Mutex
	requests []refreshRequest
	err      error
}

func (f *fakeTrigger) RequestRefresh(_ context.Context, userID uuid.UUID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, refreshRequest{userID: userID, reason: reason})
	return f.err
}

type testEnv struct {
	server      *Server
	store       *fakeStore
	recommender *fakeRecommender
	trigger     *fakeTrigger
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		store:       newFakeStore(),
		recommender: &fakeRecommender{result: &types.Recommendations{Results: []types.MatchResult{}}},
		trigger:     &fakeTrigger{},
	}
	srv, err := New(Config{
		Store:       env.store,
		Recommender: env.recommender,
		Trigger:     env.trigger,
		Logger:      logger.Discard(),
		RateLimit:   &ratelimit.Config{Enabled: false},
		FetchJob: func(_ context.Context, url string) (*fetch.JobPage, error) {
			return &fetch.JobPage{URL: url, Platform: fetch.PlatformGreenhouse, Title: "Intern", Description: "Build data pipelines"}, nil
		},
	})
	require.NoError(t, err)
	t.Cleanup(srv.rateLimiter.Stop)
	env.server = srv
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func (e *testEnv) addUser(t *testing.T) uuid.UUID {
	t.Helper()
	u, err := e.store.CreateUser(context.Background(), "Asha", uuid.NewString()+"@example.com", "")
	require.NoError(t, err)
	return u.ID
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Config{Recommender: &fakeRecommender{}})
	assert.Error(t, err)

	_, err = New(Config{Store: newFakeStore()})
	assert.Error(t, err)
}

func TestHandleHealth(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])

	env.store.pingErr = errors.New("connection refused")
	w = env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodOptions, "/jobs", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestHandleCreateUser(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodPost, "/users", map[string]string{"name": "Asha", "email": "asha@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "student", body["role"])

	w = env.do(t, http.MethodPost, "/users", map[string]string{"name": "Asha", "email": "asha@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/users", map[string]string{"name": "Asha", "email": "nope"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email", decodeBody(t, w)["field"])

	w = env.do(t, http.MethodPost, "/users", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetUser(t *testing.T) {
	env := newTestServer(t)
	userID := env.addUser(t)

	w := env.do(t, http.MethodGet, "/users/"+userID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/users/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid user ID", decodeBody(t, w)["error"])

	w = env.do(t, http.MethodGet, "/users/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDeleteUser(t *testing.T) {
	env := newTestServer(t)
	userID := env.addUser(t)

	w := env.do(t, http.MethodDelete, "/users/"+userID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodDelete, "/users/"+userID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlePutProfile(t *testing.T) {
	env := newTestServer(t)
	userID := env.addUser(t)

	req := map[string]any{
		"full_name": "Asha Raman",
		"ratings": []map[string]any{
			{"name": "  Python ", "rating": 5},
			{"name": "SQL", "rating": 3},
		},
		"skills": "ignored",
	}
	w := env.do(t, http.MethodPut, "/users/"+userID.String()+"/profile", req)
	require.Equal(t, http.StatusOK, w.Code)

	stored := env.store.profiles[userID]
	require.NotNil(t, stored)
	assert.Equal(t, "python, sql", stored.Skills)
	assert.Equal(t, "5,3", stored.SkillRatings)

	require.Len(t, env.trigger.requests, 1)
	assert.Equal(t, userID, env.trigger.requests[0].userID)
	assert.Equal(t, "profile_updated", env.trigger.requests[0].reason)
}

func TestHandlePutProfile_RawStringsKept(t *testing.T) {
	env := newTestServer(t)
	userID := env.addUser(t)

	w := env.do(t, http.MethodPut, "/users/"+userID.String()+"/profile", map[string]string{
		"full_name":     "Asha",
		"skills":        "Python, Machine Learning",
		"skill_ratings": "4,x",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Python, Machine Learning", env.store.profiles[userID].Skills)
	assert.Equal(t, "4,x", env.store.profiles[userID].SkillRatings)
}

func TestHandlePutProfile_Errors(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodPut, "/users/"+uuid.NewString()+"/profile", map[string]string{"full_name": "Asha"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	userID := env.addUser(t)
	w = env.do(t, http.MethodPut, "/users/"+userID.String()+"/profile", map[string]any{
		"full_name": "Asha",
		"ratings":   []map[string]any{{"name": "go", "rating": 7}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ratings[0].rating", decodeBody(t, w)["field"])
	assert.Empty(t, env.trigger.requests)
}

func TestHandleProfile_GetAndDelete(t *testing.T) {
	env := newTestServer(t)
	userID := env.addUser(t)
	path := "/users/" + userID.String() + "/profile"

	w := env.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	env.do(t, http.MethodPut, path, map[string]string{"full_name": "Asha", "skills": "go"})
	w = env.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "profile_deleted", env.trigger.requests[len(env.trigger.requests)-1].reason)
}

func multipartResume(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="resume"; filename="%s"`, filename)}
	header["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleUploadResume(t *testing.T) {
	env := newTestServer(t)
	userID := env.addUser(t)
	env.do(t, http.MethodPut, "/users/"+userID.String()+"/profile", map[string]string{"full_name": "Asha"})

	body, contentType := multipartResume(t, "resume.txt", "text/plain", []byte("Built REST APIs in Go!\n\nLed   a team."))
	req := httptest.NewRequest(http.MethodPost, "/users/"+userID.String()+"/resume", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "built rest apis in go led a team", env.store.profiles[userID].ResumeText)
	assert.Equal(t, "resume_uploaded", env.trigger.requests[len(env.trigger.requests)-1].reason)
}

func TestHandleUploadResume_Rejections(t *testing.T) {
	env := newTestServer(t)
	userID := env.addUser(t)
	path := "/users/" + userID.String() + "/resume"

	t.Run("unsupported type", func(t *testing.T) {
		png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
		body, contentType := multipartResume(t, "photo.png", "image/png", png)
		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		env.server.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		w := env.do(t, http.MethodPost, path, "{}")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("too large", func(t *testing.T) {
		env.server.maxUploadBytes = 64
		defer func() { env.server.maxUploadBytes = DefaultMaxUploadBytes }()

		body, contentType := multipartResume(t, "resume.txt", "text/plain", bytes.Repeat([]byte("a"), 1024))
		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		env.server.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("no profile yet", func(t *testing.T) {
		body, contentType := multipartResume(t, "resume.txt", "text/plain", []byte("go developer"))
		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		env.server.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleRecommendations(t *testing.T) {
	env := newTestServer(t)
	userID := env.addUser(t)

	w := env.do(t, http.MethodGet, "/users/"+userID.String()+"/recommendations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, []any{}, body["recommendations"])

	env.recommender.result = &types.Recommendations{
		PredictedLabel: "data analyst",
		Results:        []types.MatchResult{{JobID: uuid.New(), Score: 0.71, Reason: "Matched 2 of 3 skills"}},
	}
	w = env.do(t, http.MethodPost, "/users/"+userID.String()+"/recommendations/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "data analyst", decodeBody(t, w)["predicted_label"])
	assert.Equal(t, []uuid.UUID{userID}, env.recommender.calls)

	w = env.do(t, http.MethodPost, "/users/"+uuid.NewString()+"/recommendations/refresh", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	env.recommender.err = errors.New("boom")
	w = env.do(t, http.MethodPost, "/users/"+userID.String()+"/recommendations/refresh", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, w)["error"])
}

func TestHandleDashboard(t *testing.T) {
	env := newTestServer(t)
	userID := env.addUser(t)

	w := env.do(t, http.MethodGet, "/users/"+userID.String()+"/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["needs_profile"])

	env.store.profiles[userID] = &types.StudentProfile{UserID: userID, FullName: "Asha", Skills: "python, sql", SkillRatings: "4,3"}
	env.store.recs[userID] = []types.StoredRecommendation{{JobTitle: "Data Analyst", RequiredSkills: "python;excel", Score: 0.62}}
	env.store.courses = []types.Course{{Title: "Excel for Analysts", Category: "Data"}, {Title: "Watercolor", Category: "Art"}}

	w = env.do(t, http.MethodGet, "/users/"+userID.String()+"/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["needs_profile"])
	assert.Equal(t, float64(62), body["match_confidence"])
	assert.Equal(t, []any{"excel"}, body["skill_gaps"])
	courses := body["courses"].([]any)
	require.Len(t, courses, 1)
	assert.Equal(t, "Excel for Analysts", courses[0].(map[string]any)["title"])
}

func TestHandleJobs(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodPost, "/jobs", map[string]any{"title": "Data Analyst", "required_skills": "sql;excel", "min_experience": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	jobID := decodeBody(t, w)["id"].(string)
	require.Len(t, env.trigger.requests, 1)
	assert.Equal(t, uuid.Nil, env.trigger.requests[0].userID)

	w = env.do(t, http.MethodGet, "/jobs/"+jobID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPut, "/jobs/"+jobID, map[string]any{"title": "Senior Data Analyst", "required_skills": "sql"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Senior Data Analyst", decodeBody(t, w)["title"])

	w = env.do(t, http.MethodGet, "/jobs", nil)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	w = env.do(t, http.MethodDelete, "/jobs/"+jobID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, env.trigger.requests, 3)

	w = env.do(t, http.MethodDelete, "/jobs/"+jobID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPut, "/jobs/"+uuid.NewString(), map[string]any{"title": "x", "required_skills": "go"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/jobs", map[string]any{"title": "No skills"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, env.trigger.requests, 3)
}

func TestHandleImportJob(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodPost, "/jobs/import", map[string]string{
		"url":             "https://boards.greenhouse.io/acme/jobs/1",
		"title":           "Data Intern",
		"required_skills": "python;sql",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "greenhouse", body["platform"])
	job := body["job"].(map[string]any)
	assert.Equal(t, "Build data pipelines", job["description"])
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/1", job["application_link"])
	assert.Equal(t, "job_imported", env.trigger.requests[0].reason)

	env.server.fetchJob = func(context.Context, string) (*fetch.JobPage, error) {
		return nil, &fetch.Error{URL: "https://example.com", Message: "unexpected status 404"}
	}
	w = env.do(t, http.MethodPost, "/jobs/import", map[string]string{
		"url": "https://example.com", "title": "Gone", "required_skills": "go",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandleContent(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodPost, "/courses", map[string]string{"title": "SQL Basics", "category": "Data"})
	require.Equal(t, http.StatusCreated, w.Code)
	courseID := decodeBody(t, w)["id"].(string)

	w = env.do(t, http.MethodPut, "/courses/"+courseID, map[string]string{"title": "SQL Fundamentals", "category": "Data"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SQL Fundamentals", decodeBody(t, w)["title"])

	w = env.do(t, http.MethodGet, "/courses", nil)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	w = env.do(t, http.MethodDelete, "/courses/"+courseID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodPost, "/videos", map[string]string{"title": "Mock interview", "url": "https://video.example.com/1", "category": "Placement Preparation"})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = env.do(t, http.MethodPost, "/videos", map[string]string{"title": "No url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(t, http.MethodGet, "/videos", nil)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])
	w = env.do(t, http.MethodDelete, "/videos/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/trends", map[string]string{"job_role": "Data Engineer", "year": "2025"})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = env.do(t, http.MethodPost, "/trends", map[string]string{"job_role": "Data Engineer", "year": "last year"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(t, http.MethodGet, "/trends", nil)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])
	w = env.do(t, http.MethodDelete, "/trends/bad", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleScore(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodPost, "/score", map[string]string{
		"skills":          "python, sql",
		"skill_ratings":   "5,4",
		"required_skills": "python;sql",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["match_ratio"])
	assert.Greater(t, body["score"].(float64), 0.5)
	assert.LessOrEqual(t, body["score"].(float64), 0.85)

	w = env.do(t, http.MethodPost, "/score", map[string]string{"required_skills": "python"})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, float64(0), body["score"])
	assert.Equal(t, "Insufficient profile data", body["reason"])
}

func TestHandleChat(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodPost, "/chat", map[string]string{"message": "Any jobs for me?"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(decodeBody(t, w)["reply"].(string), "Job Recommendations"))

	w = env.do(t, http.MethodPost, "/chat", map[string]string{"message": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshTriggerFailureDoesNotFailRequest(t *testing.T) {
	env := newTestServer(t)
	env.trigger.err = errors.New("queue unavailable")

	w := env.do(t, http.MethodPost, "/jobs", map[string]any{"title": "QA Intern", "required_skills": "testing"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	env := newTestServer(t)
	cfg := ratelimit.DefaultConfig()
	cfg.CleanupInterval = 0
	cfg.Tiers[ratelimit.TierScore] = ratelimit.Tier{Name: ratelimit.TierScore, Limit: 2, Window: time.Minute}
	env.server.rateLimiter = ratelimit.NewLimiter(cfg)
	handler := env.server.withRateLimit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/score", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send().Code)
	w := send()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = send()
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "rate_limit_exceeded", body["error"])
	assert.Equal(t, "score", body["tier"])
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// health is never limited
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	hw := httptest.NewRecorder()
	handler.ServeHTTP(hw, req)
	assert.Equal(t, http.StatusOK, hw.Code)
}

func TestClientID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:5555"
	assert.Equal(t, "10.0.0.7", clientID(req))

	req.RemoteAddr = "unix-socket"
	assert.Equal(t, "unix-socket", clientID(req))
}
