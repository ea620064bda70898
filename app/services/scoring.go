package services

import (
	"math/rand"
	"sort"

	"banrai-schools/app/models"
)

// ScoreWeights holds the additive scoring factors. Penalty weights are stored
// as positive magnitudes and subtracted during scoring.
type ScoreWeights struct {
	SubjectBonus      float64 `yaml:"subject_bonus"`
	LevelBonus        float64 `yaml:"level_bonus"`
	LevelPenalty      float64 `yaml:"level_penalty"`
	DailyLoadWeight   float64 `yaml:"daily_load"`
	HistoryWeight     float64 `yaml:"history"`
	TermLoadWeight    float64 `yaml:"term_load"`
	LastResortPenalty float64 `yaml:"last_resort"`
}

// DefaultScoreWeights returns the production scoring weights.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		SubjectBonus:      2,
		LevelBonus:        5,
		LevelPenalty:      2,
		DailyLoadWeight:   2,
		HistoryWeight:     1,
		TermLoadWeight:    0.5,
		LastResortPenalty: 50,
	}
}

// Scorer computes suitability scores for eligible candidates and selects the
// best one. The randomness source is injectable so tests stay deterministic
// while production tie-breaking remains fair.
type Scorer struct {
	weights ScoreWeights
	window  FairnessWindow
	rng     *rand.Rand
}

// NewScorer creates a Scorer. A nil rng is not allowed; callers seed it from
// the clock in production and from a fixed seed in tests.
func NewScorer(weights ScoreWeights, window FairnessWindow, rng *rand.Rand) *Scorer {
	return &Scorer{weights: weights, window: window, rng: rng}
}

// Score computes the additive suitability score for one eligible candidate.
// Subject qualification is a bonus, not a requirement: unqualified candidates
// stay eligible, they just rank lower.
func (s *Scorer) Score(
	t *models.Teacher,
	period models.AbsencePeriod,
	dayLoad int,
	fairness *FairnessSnapshot,
) float64 {
	score := 0.0

	if t.IsLastResort {
		score -= s.weights.LastResortPenalty
	}

	if t.CanTeach(period.SubjectID) {
		score += s.weights.SubjectBonus
	}

	if t.Level == models.ClassLevel(period.ClassID) {
		score += s.weights.LevelBonus
	} else {
		score -= s.weights.LevelPenalty
	}

	score -= float64(dayLoad) * s.weights.DailyLoadWeight
	score -= float64(fairness.Count(t.ID, s.window)) * s.weights.HistoryWeight
	score -= float64(fairness.TermCount(t.ID)) * s.weights.TermLoadWeight

	return score
}

type scoredCandidate struct {
	teacherID string
	score     float64
}

// SelectBest returns the highest-scoring candidate id. Ties are broken by a
// uniform random choice among the maximal-score set; picking lowest-id or
// first-seen would systematically bias selection. Returns "" for an empty set.
func (s *Scorer) SelectBest(candidates []scoredCandidate) string {
	if len(candidates) == 0 {
		return ""
	}
	best := candidates[0].score
	for _, c := range candidates[1:] {
		if c.score > best {
			best = c.score
		}
	}
	var top []string
	for _, c := range candidates {
		if c.score == best {
			top = append(top, c.teacherID)
		}
	}
	// Stable order before drawing so equal inputs give equal distributions
	// regardless of map iteration upstream.
	sort.Strings(top)
	return top[s.rng.Intn(len(top))]
}
