package services

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"

	"banrai-schools/app/models"
)

// AIMatcher is the external name-matching service used as the last resolution
// tier. Implementations must bound the call with a timeout; any error is
// treated by the resolver as a tier miss, never propagated.
type AIMatcher interface {
	MatchName(ctx context.Context, raw string, candidates []string) (name string, confidence float64, err error)
}

// ResolverConfig carries the resolver thresholds and normalization rules.
type ResolverConfig struct {
	// FuzzyThreshold is the minimum similarity ratio Tier 3 accepts.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
	// MinConfidence is the floor below which any match is discarded.
	MinConfidence float64 `yaml:"min_confidence"`
	// Honorifics are prefixes stripped during Tier-2 normalization.
	Honorifics []string `yaml:"honorifics"`
}

// DefaultResolverConfig returns the production resolver thresholds.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		FuzzyThreshold: 0.85,
		MinConfidence:  0.60,
		Honorifics:     []string{"Kru", "Teacher", "Mr.", "Ms.", "Mrs."},
	}
}

// Resolver maps raw name text to canonical teacher ids using four strategies
// tried strictly in order, first success wins:
//
//	Tier 1: exact display-name match            confidence 1.00
//	Tier 2: honorific-stripped normalized match confidence 0.95
//	Tier 3: edit-distance similarity >= 0.85    confidence = ratio
//	Tier 4: external AI matcher (optional)      confidence as returned
//
// If no tier succeeds, or the best confidence is below the floor, the result
// is an explicit unresolved match, never a best-guess id.
type Resolver struct {
	cfg      ResolverConfig
	nameToID map[string]string
	ai       AIMatcher

	// similarity is the Tier-3 ratio function, replaceable in tests.
	similarity func(a, b string) float64
}

// NewResolver creates a Resolver over the display-name map. A nil ai disables
// Tier 4.
func NewResolver(cfg ResolverConfig, nameToID map[string]string, ai AIMatcher) *Resolver {
	return &Resolver{
		cfg:        cfg,
		nameToID:   nameToID,
		ai:         ai,
		similarity: similarityRatio,
	}
}

// Resolve performs a single resolution attempt for one raw name.
func (r *Resolver) Resolve(ctx context.Context, raw string) models.ConfidenceMatch {
	miss := models.ConfidenceMatch{RawText: raw, Tier: models.TierNone}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return miss
	}
	miss.RawText = raw

	// Tier 1: exact.
	if id, ok := r.nameToID[raw]; ok {
		return models.ConfidenceMatch{RawText: raw, TeacherID: id, Confidence: 1.0, Tier: models.TierExact}
	}

	// Tier 2: normalized.
	normalizedRaw := r.normalize(raw)
	for name, id := range r.nameToID {
		if r.normalize(name) == normalizedRaw {
			return models.ConfidenceMatch{RawText: raw, TeacherID: id, Confidence: 0.95, Tier: models.TierNormalized}
		}
	}

	// Tier 3: fuzzy.
	bestID := ""
	bestRatio := 0.0
	for name, id := range r.nameToID {
		if ratio := r.similarity(raw, name); ratio > bestRatio {
			bestRatio = ratio
			bestID = id
		}
	}
	if bestRatio >= r.cfg.FuzzyThreshold {
		return models.ConfidenceMatch{RawText: raw, TeacherID: bestID, Confidence: bestRatio, Tier: models.TierFuzzy}
	}

	// Tier 4: external AI fallback. Failures of any kind fall through to
	// unresolved, identical to a normal tier miss.
	if r.ai != nil {
		candidates := make([]string, 0, len(r.nameToID))
		for name := range r.nameToID {
			candidates = append(candidates, name)
		}
		name, confidence, err := r.ai.MatchName(ctx, raw, candidates)
		if err == nil && confidence >= r.cfg.MinConfidence {
			if id, ok := r.nameToID[name]; ok {
				return models.ConfidenceMatch{RawText: raw, TeacherID: id, Confidence: confidence, Tier: models.TierAI}
			}
		}
	}

	return miss
}

// normalize strips a known honorific prefix and surrounding whitespace, then
// lowercases for comparison.
func (r *Resolver) normalize(name string) string {
	name = strings.TrimSpace(name)
	for _, h := range r.cfg.Honorifics {
		if strings.HasPrefix(name, h) {
			name = strings.TrimSpace(name[len(h):])
			break
		}
	}
	return strings.ToLower(name)
}

// similarityRatio converts Levenshtein distance into a [0,1] similarity over
// the longer of the two strings, case-insensitively.
func similarityRatio(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1.0
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}
