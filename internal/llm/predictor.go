package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/career-portal/internal/cache"
	"github.com/jonathan/career-portal/internal/prompts"
)

const (
	predictorPromptFile = "career.json"
	defaultLabelTTL     = 24 * time.Hour
	labelCachePrefix    = "career_label:"
	maxProfileChars     = 4000
)

// LabelSource returns the candidate career labels, usually the titles of open jobs.
type LabelSource func(ctx context.Context) ([]string, error)

// PredictorConfig configures a CareerPredictor.
type PredictorConfig struct {
	// Labels is a fixed candidate list; LabelSource, when set, is consulted first
	Labels      []string
	LabelSource LabelSource
	Cache       cache.Cache
	CacheTTL    time.Duration
	Logger      logrus.FieldLogger
}

// CareerPredictor asks the LLM which career label fits a student profile best.
type CareerPredictor struct {
	client      Client
	labels      []string
	labelSource LabelSource
	cache       cache.Cache
	ttl         time.Duration
	log         logrus.FieldLogger
}

type labelResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// NewCareerPredictor creates a predictor backed by client.
func NewCareerPredictor(client Client, cfg PredictorConfig) *CareerPredictor {
	p := &CareerPredictor{
		client:      client,
		labels:      normalizeLabels(cfg.Labels),
		labelSource: cfg.LabelSource,
		cache:       cfg.Cache,
		ttl:         cfg.CacheTTL,
		log:         cfg.Logger,
	}
	if p.ttl <= 0 {
		p.ttl = defaultLabelTTL
	}
	if p.log == nil {
		p.log = logrus.StandardLogger()
	}
	return p
}

// Predict returns a lower-cased career label for the profile text. When candidate labels
// are known the answer must be one of them.
func (p *CareerPredictor) Predict(ctx context.Context, profileText string) (string, error) {
	profileText = strings.TrimSpace(profileText)
	if profileText == "" {
		return "", nil
	}

	labels := p.candidateLabels(ctx)
	key := cacheKey(profileText, labels)

	if p.cache != nil {
		var cached labelResponse
		hit, err := p.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			p.log.WithError(err).Debug("career label cache read failed")
		} else if hit {
			return cached.Label, nil
		}
	}

	prompt, err := buildLabelPrompt(profileText, labels)
	if err != nil {
		return "", err
	}

	raw, err := p.client.GenerateJSON(ctx, Request{
		Prompt: prompt,
		Tier:   TierLite,
		Schema: labelSchema(labels),
	})
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}

	var resp labelResponse
	if err := json.Unmarshal([]byte(CleanJSONBlock(raw)), &resp); err != nil {
		return "", fmt.Errorf("failed to parse LLM response: %w (content: %s)", err, raw)
	}

	label := strings.ToLower(strings.TrimSpace(resp.Label))
	if label == "" {
		return "", fmt.Errorf("LLM returned an empty label")
	}
	if len(labels) > 0 && !containsLabel(labels, label) {
		return "", fmt.Errorf("LLM returned unknown label %q", label)
	}
	resp.Label = label

	if p.cache != nil {
		if err := p.cache.SetJSON(ctx, key, resp, p.ttl); err != nil {
			p.log.WithError(err).Debug("career label cache write failed")
		}
	}
	return label, nil
}

func (p *CareerPredictor) candidateLabels(ctx context.Context) []string {
	if p.labelSource == nil {
		return p.labels
	}
	labels, err := p.labelSource(ctx)
	if err != nil {
		p.log.WithError(err).Warn("failed to load career labels, using configured list")
		return p.labels
	}
	merged := normalizeLabels(append(append([]string{}, p.labels...), labels...))
	return merged
}

func buildLabelPrompt(profileText string, labels []string) (string, error) {
	system, err := prompts.Get(predictorPromptFile, "career-label-system")
	if err != nil {
		return "", err
	}

	listed := "(none)"
	if len(labels) > 0 {
		listed = "- " + strings.Join(labels, "\n- ")
	}
	profileText = truncateRunes(profileText, maxProfileChars)

	return prompts.Render(predictorPromptFile, "career-label", map[string]string{
		"System":  system,
		"Labels":  listed,
		"Profile": profileText,
	})
}

// labelSchema describes the expected answer. Known labels become an enum.
func labelSchema(labels []string) *genai.Schema {
	label := &genai.Schema{Type: genai.TypeString}
	if len(labels) > 0 {
		label.Enum = labels
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"label":      label,
			"confidence": {Type: genai.TypeNumber},
		},
		Required: []string{"label"},
	}
}

// truncateRunes keeps at most n runes of s.
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// normalizeLabels lower-cases, trims, dedupes and sorts labels.
func normalizeLabels(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func containsLabel(labels []string, label string) bool {
	i := sort.SearchStrings(labels, label)
	return i < len(labels) && labels[i] == label
}

func cacheKey(profileText string, labels []string) string {
	h := sha256.New()
	h.Write([]byte(profileText))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(labels, "\n")))
	return labelCachePrefix + hex.EncodeToString(h.Sum(nil))
}
