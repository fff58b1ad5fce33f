package llm

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-portal/internal/cache"
)

// MockLLMClient is a mock implementation of Client for testing
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, req Request) (string, error)
	calls            int
	lastPrompt       string
	lastRequest      Request
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, req Request) (string, error) {
	m.calls++
	m.lastPrompt = req.Prompt
	m.lastRequest = req
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, req)
	}
	return "{}", nil
}

func (m *MockLLMClient) Close() error {
	return nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestCareerPredictor_Predict(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, req Request) (string, error) {
			assert.Equal(t, TierLite, req.Tier)
			return "```json\n{\"label\": \"Data Analyst\", \"confidence\": 0.8}\n```", nil
		},
	}
	p := NewCareerPredictor(client, PredictorConfig{
		Labels: []string{"Web Developer", "Data Analyst"},
		Logger: quietLogger(),
	})

	label, err := p.Predict(context.Background(), "python sql tableau")
	require.NoError(t, err)
	assert.Equal(t, "data analyst", label)
	assert.Contains(t, client.lastPrompt, "- data analyst\n- web developer")
	assert.Contains(t, client.lastPrompt, "python sql tableau")

	require.NotNil(t, client.lastRequest.Schema)
	assert.Equal(t, []string{"data analyst", "web developer"}, client.lastRequest.Schema.Properties["label"].Enum)
}

func TestCareerPredictor_EmptyProfile(t *testing.T) {
	client := &MockLLMClient{}
	p := NewCareerPredictor(client, PredictorConfig{Logger: quietLogger()})

	label, err := p.Predict(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, label)
	assert.Equal(t, 0, client.calls)
}

func TestCareerPredictor_UnknownLabel(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, req Request) (string, error) {
			return `{"label": "astronaut"}`, nil
		},
	}
	p := NewCareerPredictor(client, PredictorConfig{Labels: []string{"data analyst"}, Logger: quietLogger()})

	_, err := p.Predict(context.Background(), "python")
	assert.Error(t, err)
}

func TestCareerPredictor_FreeFormWithoutLabels(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, req Request) (string, error) {
			assert.Contains(t, req.Prompt, "(none)")
			return `{"label": "Backend Developer"}`, nil
		},
	}
	p := NewCareerPredictor(client, PredictorConfig{Logger: quietLogger()})

	label, err := p.Predict(context.Background(), "go postgres")
	require.NoError(t, err)
	assert.Equal(t, "backend developer", label)
}

func TestCareerPredictor_ClientError(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, req Request) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	p := NewCareerPredictor(client, PredictorConfig{Logger: quietLogger()})

	_, err := p.Predict(context.Background(), "python")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestCareerPredictor_BadJSON(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, req Request) (string, error) {
			return "not json", nil
		},
	}
	p := NewCareerPredictor(client, PredictorConfig{Logger: quietLogger()})

	_, err := p.Predict(context.Background(), "python")
	assert.Error(t, err)
}

func TestCareerPredictor_UsesCache(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, req Request) (string, error) {
			return `{"label": "data analyst"}`, nil
		},
	}
	p := NewCareerPredictor(client, PredictorConfig{
		Labels: []string{"data analyst"},
		Cache:  cache.NewMemoryCache(),
		Logger: quietLogger(),
	})

	for i := 0; i < 3; i++ {
		label, err := p.Predict(context.Background(), "python sql")
		require.NoError(t, err)
		assert.Equal(t, "data analyst", label)
	}
	assert.Equal(t, 1, client.calls)
}

func TestCareerPredictor_LabelSource(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, req Request) (string, error) {
			return `{"label": "ml engineer"}`, nil
		},
	}
	p := NewCareerPredictor(client, PredictorConfig{
		Labels: []string{"Data Analyst"},
		LabelSource: func(ctx context.Context) ([]string, error) {
			return []string{"ML Engineer", "data analyst"}, nil
		},
		Logger: quietLogger(),
	})

	label, err := p.Predict(context.Background(), "pytorch")
	require.NoError(t, err)
	assert.Equal(t, "ml engineer", label)
	assert.Contains(t, client.lastPrompt, "- data analyst\n- ml engineer")
}

func TestCareerPredictor_LabelSourceFailureFallsBack(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, req Request) (string, error) {
			return `{"label": "data analyst"}`, nil
		},
	}
	p := NewCareerPredictor(client, PredictorConfig{
		Labels: []string{"data analyst"},
		LabelSource: func(ctx context.Context) ([]string, error) {
			return nil, errors.New("db down")
		},
		Logger: quietLogger(),
	})

	label, err := p.Predict(context.Background(), "sql")
	require.NoError(t, err)
	assert.Equal(t, "data analyst", label)
}

func TestNormalizeLabels(t *testing.T) {
	assert.Equal(t, []string{"data analyst", "web developer"}, normalizeLabels([]string{" Web Developer", "data analyst", "", "DATA ANALYST"}))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
	assert.Equal(t, "héllo", truncateRunes("héllo", 5))
	assert.Equal(t, "héllo", truncateRunes("héllo", 10))
	assert.Equal(t, "", truncateRunes("héllo", 0))
}

func TestBuildLabelPrompt_TruncatesOnRuneBoundary(t *testing.T) {
	profile := strings.Repeat("a", maxProfileChars-1) + "数据分析师"
	prompt, err := buildLabelPrompt(profile, nil)
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(prompt))
	assert.Contains(t, prompt, strings.Repeat("a", maxProfileChars-1)+"数")
	assert.NotContains(t, prompt, "数据")
}

func TestLabelSchema(t *testing.T) {
	free := labelSchema(nil)
	assert.Empty(t, free.Properties["label"].Enum)
	assert.Equal(t, []string{"label"}, free.Required)

	fixed := labelSchema([]string{"data analyst"})
	assert.Equal(t, []string{"data analyst"}, fixed.Properties["label"].Enum)
}
