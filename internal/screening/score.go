package screening

import (
	"math"
	"sort"
	"strings"
)

// Skill priority weights: operator-flagged skills dominate the overlap ratio.
const (
	weightHigh    = 3.0
	weightMedium  = 2.0
	weightDefault = 1.0
)

// CosineSimilarity computes the cosine of two embedding vectors, clamped to
// [0,1]. Zero vectors and dimension mismatches yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return clamp(dot/(math.Sqrt(normA)*math.Sqrt(normB)), 0, 1)
}

// WeightedOverlap computes the priority-weighted fraction of job skills
// present in the resume, on a 0-100 scale, plus the matched and missing
// sets. High-priority skills count 3x, medium 2x.
func WeightedOverlap(jobSkills, resumeSkills []string, req JobRequirement) (overlap float64, matched, missing []string) {
	resumeSet := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		resumeSet[strings.ToLower(s)] = true
	}

	weightOf := func(skill string) float64 {
		lower := strings.ToLower(skill)
		for _, h := range req.HighPriority {
			if strings.ToLower(h) == lower {
				return weightHigh
			}
		}
		for _, m := range req.MediumPriority {
			if strings.ToLower(m) == lower {
				return weightMedium
			}
		}
		return weightDefault
	}

	var total, hit float64
	for _, skill := range jobSkills {
		w := weightOf(skill)
		total += w
		if resumeSet[strings.ToLower(skill)] {
			hit += w
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	sort.Strings(matched)
	sort.Strings(missing)
	if total == 0 {
		return 0, matched, missing
	}
	return hit / total * 100, matched, missing
}

// ScoreInput carries everything a scoring strategy needs for one candidate.
// Tasks hand strategies plain values, never shared state.
type ScoreInput struct {
	JobEmbedding    []float32
	ResumeEmbedding []float32
	YearsExperience float64
	CGPA            *float64
	WeightedOverlap float64 // 0-100
}

// Strategy turns a ScoreInput into a final score and semantic similarity.
// Two implementations exist: model-backed and heuristic. Which one runs is
// startup configuration, not an error path.
type Strategy interface {
	Score(in ScoreInput) (score, similarity float64)
	Name() string
}

// CGPA adjustments shared by both strategies.
func cgpaAdjustment(cgpa *float64) float64 {
	if cgpa == nil {
		return 0
	}
	switch {
	case *cgpa >= 3.5:
		return 5
	case *cgpa >= 3.0:
		return 2
	case *cgpa < 2.5:
		return -5
	}
	return 0
}

// HeuristicStrategy is the degraded-but-valid mode used when no trained
// model artifact is available. It still ranks candidates consistently with
// their weighted overlap and experience.
type HeuristicStrategy struct{}

func (HeuristicStrategy) Name() string { return "heuristic" }

func (HeuristicStrategy) Score(in ScoreInput) (float64, float64) {
	sim := CosineSimilarity(in.JobEmbedding, in.ResumeEmbedding)

	score := 0.7*in.WeightedOverlap + math.Min(5*in.YearsExperience, 30)
	score += cgpaAdjustment(in.CGPA)

	return clamp(score, 0, 100), sim
}

// ModelStrategy blends a trained regression prediction with the overlap and
// similarity signals. Falls back to the heuristic formula for an input whose
// feature vector does not fit the model.
type ModelStrategy struct {
	Model *LinearModel
}

func (ModelStrategy) Name() string { return "model" }

func (s ModelStrategy) Score(in ScoreInput) (float64, float64) {
	sim := CosineSimilarity(in.JobEmbedding, in.ResumeEmbedding)

	features := make([]float64, 0, len(in.JobEmbedding)+len(in.ResumeEmbedding)+2)
	for _, v := range in.JobEmbedding {
		features = append(features, float64(v))
	}
	for _, v := range in.ResumeEmbedding {
		features = append(features, float64(v))
	}
	features = append(features, in.YearsExperience, in.WeightedOverlap)

	predicted, err := s.Model.Predict(features)
	if err != nil {
		return HeuristicStrategy{}.Score(in)
	}

	score := 0.6*predicted + 0.1*in.WeightedOverlap + 0.3*(sim*100)

	// Strong semantic match backed by real experience earns a small bonus.
	switch {
	case sim >= 0.85 && in.YearsExperience >= 3:
		score += 5
	case sim >= 0.7 && in.YearsExperience >= 1:
		score += 2
	}
	score += cgpaAdjustment(in.CGPA)

	return clamp(score, 0, 100), sim
}

const (
	TierExceptional = "Exceptional"
	TierStrong      = "Strong"
	TierPromising   = "Promising"
	TierNeedsReview = "Needs Review"
	TierLimited     = "Limited"
)

// Tier assigns the qualitative bucket from score plus guardrail conditions.
// maxExperience is the configured ceiling for the experience guardrail.
func Tier(score, yearsExp, maxExperience, similarity float64, cgpa *float64) string {
	cgpaAtLeast := func(min float64) bool {
		return cgpa == nil || *cgpa >= min
	}
	expWithin := func(min float64) bool {
		return yearsExp >= min && yearsExp <= maxExperience
	}

	switch {
	case score >= 90 && expWithin(5) && similarity >= 0.85 && cgpaAtLeast(3.5):
		return TierExceptional
	case score >= 80 && expWithin(3) && similarity >= 0.7 && cgpaAtLeast(3.0):
		return TierStrong
	case score >= 60 && expWithin(1) && cgpaAtLeast(2.5):
		return TierPromising
	case score >= 40:
		return TierNeedsReview
	default:
		return TierLimited
	}
}

// CertificateRank is the coarse score-only eligibility label, independent of
// the tier guardrails.
func CertificateRank(score float64) string {
	switch {
	case score >= 90:
		return "Elite"
	case score >= 80:
		return "Strong"
	case score >= 65:
		return "Good Fit"
	default:
		return "None"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
