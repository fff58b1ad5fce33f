package ranking

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/career-portal/internal/types"
)

// DefaultTopK is used when a caller asks for zero or fewer results.
const DefaultTopK = 10

// Blending constants for the final recommendation score
const (
	careerAlignmentBoost = 0.08
	textSimilarityWeight = 0.15
	maxRecommendScore    = 0.95
	minRecommendScore    = 0.25
)

// Predictor suggests a career label for a student's profile text.
type Predictor interface {
	Predict(ctx context.Context, profileText string) (string, error)
}

// Similarity measures how close two texts are, in [0, 1].
type Similarity interface {
	Similarity(a, b string) (float64, error)
}

// NoPredictor is used when no career predictor is configured.
type NoPredictor struct{}

// Predict always returns an empty label.
func (NoPredictor) Predict(context.Context, string) (string, error) { return "", nil }

// NoSimilarity is used when no text similarity is configured.
type NoSimilarity struct{}

// Similarity always returns zero.
func (NoSimilarity) Similarity(string, string) (float64, error) { return 0, nil }

// RankerConfig holds the optional collaborators of a Ranker.
type RankerConfig struct {
	Predictor  Predictor
	Similarity Similarity
	Logger     logrus.FieldLogger
}

// Ranker turns one student profile and the open job postings into an ordered, filtered
// list of recommendations. It holds no mutable state and is safe for concurrent use
// when its collaborators are.
type Ranker struct {
	predictor  Predictor
	similarity Similarity
	log        logrus.FieldLogger
}

// NewRanker creates a Ranker, filling missing collaborators with no-op defaults.
func NewRanker(cfg RankerConfig) *Ranker {
	r := &Ranker{
		predictor:  cfg.Predictor,
		similarity: cfg.Similarity,
		log:        cfg.Logger,
	}
	if r.predictor == nil {
		r.predictor = NoPredictor{}
	}
	if r.similarity == nil {
		r.similarity = NoSimilarity{}
	}
	if r.log == nil {
		r.log = logrus.StandardLogger()
	}
	return r
}

// RankJobs scores every job for the profile and returns at most topK results with score
// >= 0.25, ordered by score descending with ties kept in input order. Predictor and
// similarity failures only drop that signal. The only error is a nil profile.
func (r *Ranker) RankJobs(ctx context.Context, profile *types.StudentProfile, jobs []types.JobPosting, topK int) (*types.Recommendations, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	profileText := BuildProfileText(profile)
	label := r.predictLabel(ctx, profileText)

	results := make([]types.MatchResult, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]

		match := ScoreProfile(profile, job)
		score := match.Score
		reason := match.Reason

		if titleAligned(label, job.Title) {
			score += careerAlignmentBoost
			reason += careerAlignmentNote
		}

		score += r.textSimilarity(profileText, BuildJobText(job)) * textSimilarityWeight

		if score < minRecommendScore {
			continue
		}
		results = append(results, types.MatchResult{
			JobID:  job.ID,
			Score:  roundScore(math.Min(score, maxRecommendScore)),
			Reason: reason,
		})
	}
	results = selectTop(results, topK)

	r.log.WithFields(logrus.Fields{
		"user_id":         profile.UserID,
		"jobs":            len(jobs),
		"recommendations": len(results),
		"predicted_label": label,
	}).Debug("ranked jobs")

	return &types.Recommendations{PredictedLabel: label, Results: results}, nil
}

func (r *Ranker) predictLabel(ctx context.Context, profileText string) string {
	if profileText == "" {
		return ""
	}
	label, err := r.predictor.Predict(ctx, profileText)
	if err != nil {
		r.log.WithError(err).Warn("career prediction unavailable")
		return ""
	}
	return strings.ToLower(strings.TrimSpace(label))
}

func (r *Ranker) textSimilarity(profileText, jobText string) float64 {
	if profileText == "" || jobText == "" {
		return 0
	}
	sim, err := r.similarity.Similarity(profileText, jobText)
	if err != nil {
		r.log.WithError(err).Debug("text similarity unavailable")
		return 0
	}
	if math.IsNaN(sim) || sim < 0 {
		return 0
	}
	return math.Min(sim, 1)
}

// selectTop orders results by score descending and keeps the first topK. Equal scores
// keep their input order.
func selectTop(kept []types.MatchResult, topK int) []types.MatchResult {
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})
	if len(kept) > topK {
		kept = kept[:topK]
	}
	return kept
}

// titleAligned reports whether the predicted label and the job title contain one another.
func titleAligned(label, title string) bool {
	title = strings.ToLower(strings.TrimSpace(title))
	if label == "" || title == "" {
		return false
	}
	return strings.Contains(title, label) || strings.Contains(label, title)
}

// roundScore keeps three decimals, the precision recommendations are stored with.
func roundScore(score float64) float64 {
	return math.Round(score*1000) / 1000
}
